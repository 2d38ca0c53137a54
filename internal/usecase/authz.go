package usecase

import (
	"context"
	"strings"
)

// RequireManager はマネージャー限定の操作の前に呼ぶ共通チェック。
// middleware.ManagerGuard と OrderUsecase.DeleteOrder の両方で使う。
func RequireManager(ctx context.Context, gate AuthorizationGate, who Identity) error {
	if strings.TrimSpace(who.Subject) == "" {
		return UnauthorizedError("Unauthorized access")
	}
	ok, err := gate.IsManager(ctx, who)
	if err != nil {
		return StorageError(err)
	}
	if !ok {
		return UnauthorizedError("Unauthorized access")
	}
	return nil
}
