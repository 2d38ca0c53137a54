package handler

import (
	"context"
	"net/http"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/middleware"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StaffService interface {
	List(ctx context.Context) ([]model.Staff, error)
	Create(ctx context.Context, who usecase.Identity, in usecase.CreateStaffInput) (model.Staff, error)
}

type StaffHandler struct {
	uc StaffService
}

func NewStaffHandler(uc StaffService) *StaffHandler {
	return &StaffHandler{uc: uc}
}

type StaffCreateRequest struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Hours       *int    `json:"hours"`
	Performance *int    `json:"performance"`
}

func (h *StaffHandler) RegisterRoutes(e *echo.Echo, jwtSecret string, gate usecase.AuthorizationGate) {
	g := e.Group("/staff", middleware.AuthJWT(jwtSecret), middleware.ManagerGuard(gate))

	g.GET("", h.list)
	g.POST("", h.create)
}

func (h *StaffHandler) list(c echo.Context) error {
	staff, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Staff retrieved successfully", Data: staff})
}

func (h *StaffHandler) create(c echo.Context) error {
	var req StaffCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Missing required staff information")
	}
	who, _ := middleware.IdentityFromContext(c)

	s, err := h.uc.Create(c.Request().Context(), who, usecase.CreateStaffInput{
		Name:        req.Name,
		Role:        req.Role,
		Hours:       req.Hours,
		Performance: req.Performance,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: "Staff added successfully", Staff: s})
}
