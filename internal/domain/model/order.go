package model

import "time"

type OrderStatus string

// 既知のステータス。更新時は任意の文字列を受け付ける（遷移グラフなし）。
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusPaid      OrderStatus = "paid"
)

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	WaiterName  string      `gorm:"type:varchar(80);not null" json:"waiter_name"`
	TableNumber *int        `json:"table_number"`
	Status      OrderStatus `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	TotalAmount float64     `gorm:"not null;default:0" json:"total_amount"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`

	// FK制約の生成用。保存・取得では使わない。
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
