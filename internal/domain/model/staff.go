package model

type Staff struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(80);not null" json:"name"`
	Role        string `gorm:"type:varchar(50);not null" json:"role"`
	Hours       int    `gorm:"not null" json:"hours"`
	Performance int    `gorm:"not null" json:"performance"`
}

// gormのデフォルト（staffs）ではなくstaffにする
func (Staff) TableName() string {
	return "staff"
}
