package usecase

import (
	"context"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

// MenuCatalog は注文時にメニューIDを解決する。
// 見つからないときは repository.ErrNotFound を返す。
type MenuCatalog interface {
	Lookup(ctx context.Context, id int64) (model.MenuItem, error)
}

// 呼び出し元（JWTのsubとrole）
type Identity struct {
	Subject string
	Role    string
}

// AuthorizationGate はマネージャー権限を持つかを判定する。
type AuthorizationGate interface {
	IsManager(ctx context.Context, who Identity) (bool, error)
}

// OrderEventPublisher はコミット後の注文イベントを外部に流す。
type OrderEventPublisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
}

// 注文のメトリクス（nilなら何もしない実装を使う）
type OrderMetrics interface {
	OrderCreated(itemCount int, total float64)
	OrderUpdated(status string)
	OrderDeleted()
	OrderFailed(op string)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.OrderEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) OrderCreated(int, float64) {}
func (nopMetrics) OrderUpdated(string)       {}
func (nopMetrics) OrderDeleted()             {}
func (nopMetrics) OrderFailed(string)        {}
