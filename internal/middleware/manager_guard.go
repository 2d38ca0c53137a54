package middleware

import (
	"net/http"

	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthJWTの後に置く。マネージャー以外は403。
func ManagerGuard(gate usecase.AuthorizationGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who, ok := IdentityFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Missing authorization token"))
			}

			if err := usecase.RequireManager(c.Request().Context(), gate, who); err != nil {
				he, _ := usecase.AsHTTPError(err)
				return c.JSON(he.Status, errorJSON(he.Message))
			}
			return next(c)
		}
	}
}
