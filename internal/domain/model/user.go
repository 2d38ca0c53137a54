package model

import "time"

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

// 認可判定用のユーザー。パスワードは外部の認証サービスが管理する。
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(80);not null"`
	Email     string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	Role      Role      `gorm:"type:varchar(50);not null;default:'staff'"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}
