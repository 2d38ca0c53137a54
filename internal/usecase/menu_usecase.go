package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	repo "github.com/Ryavnn/Restaurant-Management-System/internal/repository"
)

type MenuUsecase struct {
	menuRepo  repo.MenuItemRepository
	tx        repo.TransactionManager
	clock     Clock
}

// DI
func NewMenuUsecase(menuRepo repo.MenuItemRepository, tx repo.TransactionManager, clock Clock) *MenuUsecase {
	return &MenuUsecase{menuRepo: menuRepo, tx: tx, clock: clock}
}

type CreateMenuItemInput struct {
	Name       *string
	Category   *string
	Price      *float64
	Popularity *int
}

// POSから使うので認証なし
func (u *MenuUsecase) List(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menuRepo.List(ctx)
	if err != nil {
		return []model.MenuItem{}, StorageError(err)
	}
	return items, nil
}

func (u *MenuUsecase) Create(ctx context.Context, who Identity, in CreateMenuItemInput) (model.MenuItem, error) {
	if in.Name == nil || in.Category == nil || in.Price == nil || in.Popularity == nil {
		return model.MenuItem{}, ValidationError("Missing required menu item information")
	}
	name := strings.TrimSpace(*in.Name)
	if name == "" {
		return model.MenuItem{}, ValidationError("name required")
	}
	if *in.Price < 0 {
		return model.MenuItem{}, ValidationError("price must be >= 0")
	}

	var created model.MenuItem
	//本体と監査ログは同じトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.MenuItems().Create(ctx, model.MenuItem{
			Name:       name,
			Category:   strings.TrimSpace(*in.Category),
			Price:      *in.Price,
			Popularity: *in.Popularity,
		})
		if err != nil {
			return StorageError(err)
		}
		created = c

		after, _ := json.Marshal(created)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        who.Subject,
			Action:       model.AuditActionCreateMenuItem,
			ResourceType: model.AuditResourceMenuItem,
			ResourceID:   created.ID,
			AfterJSON:    string(after),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return StorageError(err)
		}
		return nil
	})
	if err != nil {
		return model.MenuItem{}, err
	}
	return created, nil
}
