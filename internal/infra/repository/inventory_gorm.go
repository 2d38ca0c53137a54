package repository

import (
	"context"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	repo "github.com/Ryavnn/Restaurant-Management-System/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) List(ctx context.Context, q repo.InventoryListQuery) ([]model.InventoryItem, error) {
	tx := r.db.WithContext(ctx).Model(&model.InventoryItem{})

	// 在庫不足のみ
	if q.LowStockOnly {
		tx = tx.Where("quantity <= low_stock")
	}

	var items []model.InventoryItem
	if err := tx.Order("id asc").Find(&items).Error; err != nil {
		return []model.InventoryItem{}, err
	}
	return items, nil
}

func (r *InventoryGormRepository) Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.InventoryItem{}, err
	}
	return item, nil
}
