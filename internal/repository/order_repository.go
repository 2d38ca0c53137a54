package repository

import (
	"context"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
)

// 一覧の絞り込み条件（Statusが空なら全件）
type OrderListFilter struct {
	Status string
}

// 部分更新。nilのフィールドは変更しない。
type OrderPatch struct {
	WaiterName *string
	Status     *string

	// table_numberはnullへの更新もあるのでSetで「指定あり」を表す
	TableNumberSet bool
	TableNumber    *int
}

func (p OrderPatch) IsEmpty() bool {
	return p.WaiterName == nil && p.Status == nil && !p.TableNumberSet
}

type OrderRepository interface {
	// order.IDに採番した値が入る
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// created_at の新しい順
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	Update(ctx context.Context, orderID int64, patch OrderPatch, now time.Time) error
	Delete(ctx context.Context, orderID int64) error
}
