package handler

import (
	"context"
	"net/http"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/middleware"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MenuService interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	Create(ctx context.Context, who usecase.Identity, in usecase.CreateMenuItemInput) (model.MenuItem, error)
}

type MenuHandler struct {
	uc MenuService
}

func NewMenuHandler(uc MenuService) *MenuHandler {
	return &MenuHandler{uc: uc}
}

type MenuItemCreateRequest struct {
	Name       *string  `json:"name"`
	Category   *string  `json:"category"`
	Price      *float64 `json:"price"`
	Popularity *int     `json:"popularity"`
}

// GETはPOS端末用に公開。POSTはマネージャーのみ。
func (h *MenuHandler) RegisterRoutes(e *echo.Echo, jwtSecret string, gate usecase.AuthorizationGate) {
	e.GET("/menu", h.list)
	e.POST("/menu", h.create, middleware.AuthJWT(jwtSecret), middleware.ManagerGuard(gate))
}

func (h *MenuHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Menu retrieved successfully", Data: items})
}

func (h *MenuHandler) create(c echo.Context) error {
	var req MenuItemCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Missing required menu item information")
	}
	who, _ := middleware.IdentityFromContext(c)

	item, err := h.uc.Create(c.Request().Context(), who, usecase.CreateMenuItemInput{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		Popularity: req.Popularity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: "Menu item added successfully", Item: item})
}
