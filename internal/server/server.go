package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/config"
	"github.com/Ryavnn/Restaurant-Management-System/internal/handler"
	"github.com/Ryavnn/Restaurant-Management-System/internal/middleware"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// HealthCheckはDBなどの疎通確認
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	Orders    *handler.OrderHandler
	Menu      *handler.MenuHandler
	Staff     *handler.StaffHandler
	Inventory *handler.InventoryHandler
	Audit     *handler.AuditHandler
}

// Newはルーティング済みのechoを返す
func New(cfg config.Config, logger *log.Logger, h Handlers, gate usecase.AuthorizationGate, health HealthCheck) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	origins := []string{"*"}
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderRequestID},
	}))

	RegisterRoutes(e, cfg, h, gate, health)
	return e
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, gate usecase.AuthorizationGate, health HealthCheck) {
	e.GET("/healthz", healthz(health))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h.Orders.RegisterRoutes(e, cfg.JWTSecret)
	h.Menu.RegisterRoutes(e, cfg.JWTSecret, gate)
	h.Staff.RegisterRoutes(e, cfg.JWTSecret, gate)
	h.Inventory.RegisterRoutes(e, cfg.JWTSecret, gate)
	h.Audit.RegisterRoutes(e, cfg.JWTSecret, gate)
}

func healthz(check HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{Success: false, Message: "unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, handler.Envelope{Success: true, Message: "ok"})
	}
}

// Startはctxがキャンセルされるまで待ち受け、終わったらgracefulに止める
func Start(ctx context.Context, e *echo.Echo, addr string, logger *log.Entry) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("http server listening on %s", addr)
		errCh <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown failed")
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
