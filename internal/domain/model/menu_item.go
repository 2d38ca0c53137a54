package model

import "time"

type MenuItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(80);not null" json:"name"`
	Category   string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Price      float64   `gorm:"not null" json:"price"`
	Popularity int       `gorm:"not null;default:0" json:"popularity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
