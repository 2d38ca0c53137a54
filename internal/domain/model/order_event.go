package model

import "time"

type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventUpdated OrderEventType = "order.updated"
	OrderEventDeleted OrderEventType = "order.deleted"
)

// キッチン表示などに流す注文イベント
type OrderEvent struct {
	ID          string         `json:"event_id"`
	Type        OrderEventType `json:"type"`
	OrderID     int64          `json:"order_id"`
	Status      string         `json:"status,omitempty"`
	TableNumber *int           `json:"table_number,omitempty"`
	TotalAmount float64        `json:"total_amount,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
