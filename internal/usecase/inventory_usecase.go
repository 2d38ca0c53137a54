package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	repo "github.com/Ryavnn/Restaurant-Management-System/internal/repository"
)

type InventoryUsecase struct {
	inventoryRepo repo.InventoryRepository
	tx            repo.TransactionManager
	clock         Clock
}

func NewInventoryUsecase(inventoryRepo repo.InventoryRepository, tx repo.TransactionManager, clock Clock) *InventoryUsecase {
	return &InventoryUsecase{inventoryRepo: inventoryRepo, tx: tx, clock: clock}
}

type CreateInventoryItemInput struct {
	Name     *string
	Category *string
	Quantity *int
	LowStock *int
}

func (u *InventoryUsecase) List(ctx context.Context, lowStockOnly bool) ([]model.InventoryItem, error) {
	items, err := u.inventoryRepo.List(ctx, repo.InventoryListQuery{LowStockOnly: lowStockOnly})
	if err != nil {
		return []model.InventoryItem{}, StorageError(err)
	}
	return items, nil
}

func (u *InventoryUsecase) Create(ctx context.Context, who Identity, in CreateInventoryItemInput) (model.InventoryItem, error) {
	if in.Name == nil || in.Category == nil || in.Quantity == nil || in.LowStock == nil {
		return model.InventoryItem{}, ValidationError("Missing required inventory item information")
	}
	if strings.TrimSpace(*in.Name) == "" {
		return model.InventoryItem{}, ValidationError("name required")
	}
	if *in.Quantity < 0 {
		return model.InventoryItem{}, ValidationError("quantity must be >= 0")
	}
	if *in.LowStock < 0 {
		return model.InventoryItem{}, ValidationError("low_stock must be >= 0")
	}

	var created model.InventoryItem
	//本体と監査ログは同じトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Inventory().Create(ctx, model.InventoryItem{
			Name:     strings.TrimSpace(*in.Name),
			Category: strings.TrimSpace(*in.Category),
			Quantity: *in.Quantity,
			LowStock: *in.LowStock,
		})
		if err != nil {
			return StorageError(err)
		}
		created = c

		after, _ := json.Marshal(created)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        who.Subject,
			Action:       model.AuditActionCreateInventoryItem,
			ResourceType: model.AuditResourceInventory,
			ResourceID:   created.ID,
			AfterJSON:    string(after),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return StorageError(err)
		}
		return nil
	})
	if err != nil {
		return model.InventoryItem{}, err
	}
	return created, nil
}
