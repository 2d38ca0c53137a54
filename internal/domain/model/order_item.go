package model

type OrderItem struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64  `gorm:"not null;index" json:"order_id"`
	MenuItemID *int64 `gorm:"index" json:"menu_item_id"`
	// 注文時点のスナップショット（メニュー側の変更に追従しない）
	Name     string  `gorm:"type:varchar(80);not null" json:"name"`
	Quantity int     `gorm:"not null;default:1" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:SET NULL" json:"-"`
}
