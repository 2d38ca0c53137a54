package repository

import (
	"context"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
)

type InventoryListQuery struct {
	// trueならquantity <= low_stockのものだけ
	LowStockOnly bool
}

type InventoryRepository interface {
	List(ctx context.Context, q InventoryListQuery) ([]model.InventoryItem, error)
	Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error)
}
