package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/middleware"
	"github.com/Ryavnn/Restaurant-Management-System/internal/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditService interface {
	List(ctx context.Context, f repository.AuditLogFilter) ([]model.AuditLog, error)
}

type AuditHandler struct {
	uc AuditService
}

func NewAuditHandler(uc AuditService) *AuditHandler {
	return &AuditHandler{uc: uc}
}

func (h *AuditHandler) RegisterRoutes(e *echo.Echo, jwtSecret string, gate usecase.AuthorizationGate) {
	e.GET("/audit-logs", h.list, middleware.AuthJWT(jwtSecret), middleware.ManagerGuard(gate))
}

func (h *AuditHandler) list(c echo.Context) error {
	f := repository.AuditLogFilter{Actor: c.QueryParam("actor")}

	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid resource_id")
		}
		f.ResourceID = &id
	}
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid from")
		}
		f.CreatedFrom = &tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid to")
		}
		f.CreatedTo = &tm
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		f.Limit = l
	}

	logs, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Audit logs retrieved successfully", Data: logs})
}
