package model

import "time"

// マネージャー操作の種類
type AuditAction string

const (
	AuditActionDeleteOrder         AuditAction = "DELETE_ORDER"
	AuditActionCreateMenuItem      AuditAction = "CREATE_MENU_ITEM"
	AuditActionCreateStaff         AuditAction = "CREATE_STAFF"
	AuditActionCreateInventoryItem AuditAction = "CREATE_INVENTORY_ITEM"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder     AuditResourceType = "order"
	AuditResourceMenuItem  AuditResourceType = "menu_item"
	AuditResourceStaff     AuditResourceType = "staff"
	AuditResourceInventory AuditResourceType = "inventory_item"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//JWTのsub（メールアドレス）
	Actor string `gorm:"type:varchar(120);not null;index" json:"actor"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
