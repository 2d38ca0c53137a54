package model

type InventoryItem struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(80);not null" json:"name"`
	Category string `gorm:"type:varchar(50);not null" json:"category"`
	Quantity int    `gorm:"not null" json:"quantity"`
	// この数以下になったら在庫不足
	LowStock int `gorm:"not null" json:"low_stock"`
}
