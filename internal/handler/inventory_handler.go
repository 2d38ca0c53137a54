package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/middleware"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
)

type InventoryService interface {
	List(ctx context.Context, lowStockOnly bool) ([]model.InventoryItem, error)
	Create(ctx context.Context, who usecase.Identity, in usecase.CreateInventoryItemInput) (model.InventoryItem, error)
}

type InventoryHandler struct {
	uc InventoryService
}

func NewInventoryHandler(uc InventoryService) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

type InventoryCreateRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Quantity *int    `json:"quantity"`
	LowStock *int    `json:"low_stock"`
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo, jwtSecret string, gate usecase.AuthorizationGate) {
	g := e.Group("/inventory", middleware.AuthJWT(jwtSecret), middleware.ManagerGuard(gate))

	g.GET("", h.list)
	g.POST("", h.create)
}

func (h *InventoryHandler) list(c echo.Context) error {
	lowStockOnly := false
	if v := c.QueryParam("low_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "invalid low_stock")
		}
		lowStockOnly = b
	}

	items, err := h.uc.List(c.Request().Context(), lowStockOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Inventory retrieved successfully", Data: items})
}

func (h *InventoryHandler) create(c echo.Context) error {
	var req InventoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Missing required inventory information")
	}
	who, _ := middleware.IdentityFromContext(c)

	item, err := h.uc.Create(c.Request().Context(), who, usecase.CreateInventoryItemInput{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		LowStock: req.LowStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: "Inventory item added successfully", Item: item})
}
