package authz

import (
	"context"
	"errors"
	"strings"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	log "github.com/sirupsen/logrus"
)

// UserRoleGate はusersテーブルのroleでマネージャーかを判定する。
// JWTのroleクレームは信用しない（DB側の変更をすぐ反映するため）。
type UserRoleGate struct {
	users repository.UserRepository
}

func NewUserRoleGate(users repository.UserRepository) *UserRoleGate {
	return &UserRoleGate{users: users}
}

func (g *UserRoleGate) IsManager(ctx context.Context, who usecase.Identity) (bool, error) {
	email := strings.TrimSpace(who.Subject)
	if email == "" {
		return false, nil
	}

	u, err := g.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.Role == model.RoleManager, nil
}

// EnsureManager はマネージャーが一人もいなければ作る（起動時）。
func EnsureManager(ctx context.Context, users repository.UserRepository, email string, name string, logger *log.Entry) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}

	exists, err := users.ExistsByRole(ctx, model.RoleManager)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("manager already exists")
		return nil
	}

	_, err = users.Create(ctx, model.User{
		Name:  name,
		Email: email,
		Role:  model.RoleManager,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// 同じメールのユーザーが先にいる（別インスタンスが作った等）
		logger.WithField("email", email).Warn("manager email already registered")
		return nil
	}
	if err != nil {
		return err
	}

	logger.WithField("email", email).Info("default manager created")
	return nil
}
