package usecase_test

import (
	"context"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	repo "github.com/Ryavnn/Restaurant-Management-System/internal/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
	menuItems  repo.MenuItemRepository
	staff      repo.StaffRepository
	inventory  repo.InventoryRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }
func (r *TxReposMock) MenuItems() repo.MenuItemRepository   { return r.menuItems }
func (r *TxReposMock) Staff() repo.StaffRepository          { return r.staff }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, orderID int64, patch repo.OrderPatch, now time.Time) error {
	args := m.Called(ctx, orderID, patch, now)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).(map[int64][]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type MenuRepoMock struct{ mock.Mock }

func (m *MenuRepoMock) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuRepoMock) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(model.MenuItem)
	return item, args.Error(1)
}

func (m *MenuRepoMock) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.MenuItem)
	return created, args.Error(1)
}

type StaffRepoMock struct{ mock.Mock }

func (m *StaffRepoMock) List(ctx context.Context) ([]model.Staff, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Staff)
	return s, args.Error(1)
}

func (m *StaffRepoMock) Create(ctx context.Context, s model.Staff) (model.Staff, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Staff)
	return created, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) List(ctx context.Context, q repo.InventoryListQuery) ([]model.InventoryItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *InventoryRepoMock) Create(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.InventoryItem)
	return created, args.Error(1)
}

// =====================
// collaborator mocks
// =====================

type CatalogMock struct{ mock.Mock }

func (m *CatalogMock) Lookup(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(model.MenuItem)
	return item, args.Error(1)
}

type GateMock struct{ mock.Mock }

func (m *GateMock) IsManager(ctx context.Context, who usecase.Identity) (bool, error) {
	args := m.Called(ctx, who)
	return args.Bool(0), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, ev model.OrderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// 呼ばれた回数だけ数える
type metricsSpy struct {
	created  int
	updated  []string
	deleted  int
	failedOp []string
}

func (s *metricsSpy) OrderCreated(int, float64)  { s.created++ }
func (s *metricsSpy) OrderUpdated(status string) { s.updated = append(s.updated, status) }
func (s *metricsSpy) OrderDeleted()              { s.deleted++ }
func (s *metricsSpy) OrderFailed(op string)      { s.failedOp = append(s.failedOp, op) }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedID struct{}

func (fixedID) NewID() string { return "evt-1" }

var (
	_ repo.TransactionManager   = (*TxManagerMock)(nil)
	_ repo.OrderRepository      = (*OrderRepoMock)(nil)
	_ repo.OrderItemRepository  = (*OrderItemRepoMock)(nil)
	_ repo.AuditLogRepository   = (*AuditRepoMock)(nil)
	_ repo.MenuItemRepository   = (*MenuRepoMock)(nil)
	_ repo.StaffRepository      = (*StaffRepoMock)(nil)
	_ repo.InventoryRepository  = (*InventoryRepoMock)(nil)
	_ usecase.MenuCatalog       = (*CatalogMock)(nil)
	_ usecase.AuthorizationGate = (*GateMock)(nil)
	_ usecase.OrderMetrics      = (*metricsSpy)(nil)
)
