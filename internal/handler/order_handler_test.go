package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/handler"
	"github.com/Ryavnn/Restaurant-Management-System/internal/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderServer(svc *OrderServiceMock) *echo.Echo {
	e := echo.New()
	handler.NewOrderHandler(svc).RegisterRoutes(e, testSecret)
	return e
}

func TestOrderHandler_Create(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)
	table := 4
	created := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	svc.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in usecase.CreateOrderInput) bool {
		return in.WaiterName == "Ann" && *in.TableNumber == 4 && len(in.Items) == 2 &&
			in.Items[0].Name == "Burger" && *in.Items[0].Price == 9.5 && *in.Items[0].Quantity == 2 && *in.Items[0].MenuItemID == 1 &&
			in.Items[1].Name == "Soda" && in.Items[1].Quantity == nil
	})).Return(usecase.CreatedOrderOutput{
		ID: 42, WaiterName: "Ann", TableNumber: &table, Status: "pending", TotalAmount: 21.0, CreatedAt: created,
	}, nil).Once()

	rec := do(e, http.MethodPost, "/orders", `{
		"waiter_name": "Ann",
		"table_number": 4,
		"items": [
			{"name": "Burger", "price": 9.5, "quantity": 2, "menu_item_id": 1},
			{"name": "Soda", "price": 2.0}
		]
	}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "true", string(body["success"]))
	assert.Equal(t, "Order created successfully", message(t, body))

	var order map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["order"], &order))
	assert.Equal(t, "42", string(order["id"]))
	assert.Equal(t, "21", string(order["total_amount"]))
	assert.Equal(t, `"pending"`, string(order["status"]))
	_, hasItems := order["items"]
	assert.False(t, hasItems)

	svc.AssertExpectations(t)
}

func TestOrderHandler_CreateValidationError(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)

	svc.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, usecase.ValidationError("items must contain at least one entry")).Once()

	rec := do(e, http.MethodPost, "/orders", `{"waiter_name":"Ann","items":[]}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "false", string(body["success"]))
	assert.Equal(t, "items must contain at least one entry", message(t, body))
}

func TestOrderHandler_CreateMalformedBody(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)

	rec := do(e, http.MethodPost, "/orders", `{"waiter_name":`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_ListPassesStatus(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)

	svc.On("ListOrders", mock.Anything, "ready").Return([]usecase.OrderOutput{
		{ID: 1, Status: "ready", Items: []usecase.OrderItemOutput{{ID: 1, Name: "Tea", Quantity: 3, Price: 1.5, Total: 4.5}}},
	}, nil).Once()

	rec := do(e, http.MethodGet, "/orders?status=ready", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var data []usecase.OrderOutput
	require.NoError(t, json.Unmarshal(decode(t, rec)["data"], &data))
	require.Len(t, data, 1)
	assert.Equal(t, 4.5, data[0].Items[0].Total)
}

func TestOrderHandler_Detail(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)

	svc.On("GetOrder", mock.Anything, int64(9)).Return(nil, usecase.NotFoundError("Order not found")).Once()

	rec := do(e, http.MethodGet, "/orders/9", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", message(t, decode(t, rec)))

	rec = do(e, http.MethodGet, "/orders/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "GetOrder", 1)
}

func TestOrderHandler_UpdatePatch(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)

	svc.On("UpdateOrder", mock.Anything, int64(42), mock.MatchedBy(func(p repository.OrderPatch) bool {
		return p.Status != nil && *p.Status == "ready" &&
			p.TableNumberSet && p.TableNumber == nil &&
			p.WaiterName == nil
	})).Return(usecase.UpdatedOrderOutput{ID: 42, WaiterName: "Ann", Status: "ready", TotalAmount: 21.0}, nil).Once()

	rec := do(e, http.MethodPut, "/orders/42", `{"status":"ready","table_number":null}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Order updated successfully", message(t, body))

	var order map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["order"], &order))
	assert.Equal(t, "null", string(order["table_number"]))
	assert.Equal(t, `"ready"`, string(order["status"]))

	svc.AssertExpectations(t)
}

func TestOrderHandler_UpdateRejectsBadTypes(t *testing.T) {
	svc := new(OrderServiceMock)
	e := newOrderServer(svc)

	rec := do(e, http.MethodPut, "/orders/42", `{"status":5}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status must be a string", message(t, decode(t, rec)))

	rec = do(e, http.MethodPut, "/orders/42", `{"table_number":"four"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_Delete(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		svc := new(OrderServiceMock)
		e := newOrderServer(svc)

		rec := do(e, http.MethodDelete, "/orders/42", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden for non manager", func(t *testing.T) {
		svc := new(OrderServiceMock)
		e := newOrderServer(svc)
		svc.On("DeleteOrder", mock.Anything, usecase.Identity{Subject: "waiter@example.com"}, int64(42)).
			Return(nil, usecase.UnauthorizedError("Unauthorized access")).Once()

		rec := do(e, http.MethodDelete, "/orders/42", "", bearer(t, "waiter@example.com"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Unauthorized access", message(t, decode(t, rec)))
	})

	t.Run("manager deletes", func(t *testing.T) {
		svc := new(OrderServiceMock)
		e := newOrderServer(svc)
		svc.On("DeleteOrder", mock.Anything, usecase.Identity{Subject: "boss@example.com"}, int64(42)).
			Return(usecase.DeletedOrderOutput{ID: 42, ItemsDeleted: 2}, nil).Once()

		rec := do(e, http.MethodDelete, "/orders/42", "", bearer(t, "boss@example.com"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "true", string(body["success"]))
		assert.Equal(t, "Order 42 deleted successfully", message(t, body))
	})
}
