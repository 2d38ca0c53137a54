package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ryavnn/Restaurant-Management-System/internal/middleware"
	"github.com/Ryavnn/Restaurant-Management-System/internal/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (usecase.CreatedOrderOutput, error)
	GetOrder(ctx context.Context, orderID int64) (usecase.OrderOutput, error)
	ListOrders(ctx context.Context, status string) ([]usecase.OrderOutput, error)
	UpdateOrder(ctx context.Context, orderID int64, patch repository.OrderPatch) (usecase.UpdatedOrderOutput, error)
	DeleteOrder(ctx context.Context, who usecase.Identity, orderID int64) (usecase.DeletedOrderOutput, error)
}

type OrderHandler struct {
	uc OrderService
}

func NewOrderHandler(uc OrderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price"`
	Quantity   *int     `json:"quantity"`
	MenuItemID *int64   `json:"menu_item_id"`
}

type OrderCreateRequest struct {
	WaiterName  string             `json:"waiter_name"`
	TableNumber *int               `json:"table_number"`
	Items       []OrderItemRequest `json:"items"`
}

// 作成・参照・更新はPOS端末から使うので認証なし。削除だけマネージャー。
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/orders")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete, middleware.AuthJWT(jwtSecret))
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Orders retrieved successfully", Data: out})
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Order retrieved successfully", Data: out})
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Missing required order information")
	}

	in := usecase.CreateOrderInput{
		WaiterName:  req.WaiterName,
		TableNumber: req.TableNumber,
		Items:       make([]usecase.CreateOrderItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		name := ""
		if it.Name != nil {
			name = *it.Name
		}
		in.Items = append(in.Items, usecase.CreateOrderItemInput{
			Name:       name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			MenuItemID: it.MenuItemID,
		})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: "Order created successfully", Order: out})
}

func (h *OrderHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	//送られてきたキーだけ更新するのでmapで受ける
	var raw map[string]json.RawMessage
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return badRequest(c, "invalid body")
	}

	patch, err := parseOrderPatch(raw)
	if err != nil {
		return badRequest(c, err.Error())
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Order updated successfully", Order: out})
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	who, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "Missing authorization token"})
	}

	out, err := h.uc.DeleteOrder(c.Request().Context(), who, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: fmt.Sprintf("Order %d deleted successfully", out.ID),
	})
}

func parseOrderPatch(raw map[string]json.RawMessage) (repository.OrderPatch, error) {
	var p repository.OrderPatch

	if v, ok := raw["status"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil || string(v) == "null" {
			return p, fmt.Errorf("status must be a string")
		}
		p.Status = &s
	}

	if v, ok := raw["waiter_name"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil || string(v) == "null" {
			return p, fmt.Errorf("waiter_name must be a string")
		}
		p.WaiterName = &s
	}

	if v, ok := raw["table_number"]; ok {
		p.TableNumberSet = true
		if string(v) != "null" {
			var n int
			if err := json.Unmarshal(v, &n); err != nil {
				return p, fmt.Errorf("table_number must be an integer or null")
			}
			p.TableNumber = &n
		}
	}

	return p, nil
}
