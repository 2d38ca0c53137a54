package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

// =====================
// service mocks
// =====================

type OrderServiceMock struct{ mock.Mock }

func (m *OrderServiceMock) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (usecase.CreatedOrderOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(usecase.CreatedOrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) GetOrder(ctx context.Context, orderID int64) (usecase.OrderOutput, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).(usecase.OrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) ListOrders(ctx context.Context, status string) ([]usecase.OrderOutput, error) {
	args := m.Called(ctx, status)
	out, _ := args.Get(0).([]usecase.OrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) UpdateOrder(ctx context.Context, orderID int64, patch repository.OrderPatch) (usecase.UpdatedOrderOutput, error) {
	args := m.Called(ctx, orderID, patch)
	out, _ := args.Get(0).(usecase.UpdatedOrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) DeleteOrder(ctx context.Context, who usecase.Identity, orderID int64) (usecase.DeletedOrderOutput, error) {
	args := m.Called(ctx, who, orderID)
	out, _ := args.Get(0).(usecase.DeletedOrderOutput)
	return out, args.Error(1)
}

type MenuServiceMock struct{ mock.Mock }

func (m *MenuServiceMock) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuServiceMock) Create(ctx context.Context, who usecase.Identity, in usecase.CreateMenuItemInput) (model.MenuItem, error) {
	args := m.Called(ctx, who, in)
	item, _ := args.Get(0).(model.MenuItem)
	return item, args.Error(1)
}

type InventoryServiceMock struct{ mock.Mock }

func (m *InventoryServiceMock) List(ctx context.Context, lowStockOnly bool) ([]model.InventoryItem, error) {
	args := m.Called(ctx, lowStockOnly)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *InventoryServiceMock) Create(ctx context.Context, who usecase.Identity, in usecase.CreateInventoryItemInput) (model.InventoryItem, error) {
	args := m.Called(ctx, who, in)
	item, _ := args.Get(0).(model.InventoryItem)
	return item, args.Error(1)
}

type StaffServiceMock struct{ mock.Mock }

func (m *StaffServiceMock) List(ctx context.Context) ([]model.Staff, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Staff)
	return s, args.Error(1)
}

func (m *StaffServiceMock) Create(ctx context.Context, who usecase.Identity, in usecase.CreateStaffInput) (model.Staff, error) {
	args := m.Called(ctx, who, in)
	s, _ := args.Get(0).(model.Staff)
	return s, args.Error(1)
}

type AuditServiceMock struct{ mock.Mock }

func (m *AuditServiceMock) List(ctx context.Context, f repository.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type GateMock struct{ mock.Mock }

func (m *GateMock) IsManager(ctx context.Context, who usecase.Identity) (bool, error) {
	args := m.Called(ctx, who)
	return args.Bool(0), args.Error(1)
}

// =====================
// helper
// =====================

func bearer(t *testing.T, sub string) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(e *echo.Echo, method, path, body, authz string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func message(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()

	var msg string
	require.NoError(t, json.Unmarshal(body["message"], &msg))
	return msg
}
