package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	repo "github.com/Ryavnn/Restaurant-Management-System/internal/repository"
)

type StaffUsecase struct {
	staffRepo repo.StaffRepository
	tx        repo.TransactionManager
	clock     Clock
}

func NewStaffUsecase(staffRepo repo.StaffRepository, tx repo.TransactionManager, clock Clock) *StaffUsecase {
	return &StaffUsecase{staffRepo: staffRepo, tx: tx, clock: clock}
}

type CreateStaffInput struct {
	Name        *string
	Role        *string
	Hours       *int
	Performance *int
}

func (u *StaffUsecase) List(ctx context.Context) ([]model.Staff, error) {
	staff, err := u.staffRepo.List(ctx)
	if err != nil {
		return []model.Staff{}, StorageError(err)
	}
	return staff, nil
}

func (u *StaffUsecase) Create(ctx context.Context, who Identity, in CreateStaffInput) (model.Staff, error) {
	if in.Name == nil || in.Role == nil || in.Hours == nil || in.Performance == nil {
		return model.Staff{}, ValidationError("Missing required staff information")
	}
	if strings.TrimSpace(*in.Name) == "" {
		return model.Staff{}, ValidationError("name required")
	}
	if *in.Hours < 0 {
		return model.Staff{}, ValidationError("hours must be >= 0")
	}

	var created model.Staff
	//本体と監査ログは同じトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Staff().Create(ctx, model.Staff{
			Name:        strings.TrimSpace(*in.Name),
			Role:        strings.TrimSpace(*in.Role),
			Hours:       *in.Hours,
			Performance: *in.Performance,
		})
		if err != nil {
			return StorageError(err)
		}
		created = c

		after, _ := json.Marshal(created)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        who.Subject,
			Action:       model.AuditActionCreateStaff,
			ResourceType: model.AuditResourceStaff,
			ResourceID:   created.ID,
			AfterJSON:    string(after),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return StorageError(err)
		}
		return nil
	})
	if err != nil {
		return model.Staff{}, err
	}
	return created, nil
}
