package repository

import (
	"context"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	// 既に同じroleのユーザーがいるか（マネージャー初期作成用）
	ExistsByRole(ctx context.Context, role model.Role) (bool, error)
	Create(ctx context.Context, user model.User) (model.User, error)
}
