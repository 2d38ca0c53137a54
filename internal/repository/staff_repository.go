package repository

import (
	"context"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
)

type StaffRepository interface {
	List(ctx context.Context) ([]model.Staff, error)
	Create(ctx context.Context, s model.Staff) (model.Staff, error)
}
