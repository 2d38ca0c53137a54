package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/config"
	"github.com/Ryavnn/Restaurant-Management-System/internal/handler"
	"github.com/Ryavnn/Restaurant-Management-System/internal/infra/authz"
	"github.com/Ryavnn/Restaurant-Management-System/internal/infra/cache"
	"github.com/Ryavnn/Restaurant-Management-System/internal/infra/db"
	"github.com/Ryavnn/Restaurant-Management-System/internal/infra/messaging"
	infraRepo "github.com/Ryavnn/Restaurant-Management-System/internal/infra/repository"
	"github.com/Ryavnn/Restaurant-Management-System/internal/logger"
	"github.com/Ryavnn/Restaurant-Management-System/internal/metrics"
	"github.com/Ryavnn/Restaurant-Management-System/internal/server"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	//deferを走らせてから終了コードを返す
	if err := run(); err != nil {
		log.WithError(err).Error("api exited")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	l := logger.New(cfg.LogLevel, cfg.IsDev())
	appLog := l.WithField("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg, l)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	defer sqlDB.Close()
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	staffRepo := infraRepo.NewStaffGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	if err := authz.EnsureManager(ctx, userRepo, cfg.ManagerEmail, cfg.ManagerName, appLog); err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}
	gate := authz.NewUserRoleGate(userRepo)

	//メニュー参照（REDIS_ADDRがあればキャッシュを挟む）
	var catalog usecase.MenuCatalog = menuRepo
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLog.WithError(err).Warn("redis unavailable, menu lookups will fall back to db")
		}
		catalog = cache.NewRedisMenuCatalog(rdb, menuRepo, cfg.MenuCacheTTL, l.WithField("component", "menu-cache"))
	}

	//注文イベント（KAFKA_BROKERSがあれば）
	var events usecase.OrderEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, err := messaging.NewKafkaOrderPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, l.WithField("component", "order-events"))
		if err != nil {
			appLog.WithError(err).Warn("failed to create kafka producer, continuing without order events")
		} else {
			defer func() {
				if err := p.Close(); err != nil {
					appLog.WithError(err).Warn("failed to close kafka producer")
				}
			}()
			events = p
			appLog.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	orderMetrics := metrics.NewOrderMetrics(nil)

	//Usecase生成
	clock := &realClock{}
	orderUC := usecase.NewOrderUsecase(txm, catalog, gate, events, orderMetrics, clock, &uuidGenerator{}, l.WithField("layer", "usecase"))
	menuUC := usecase.NewMenuUsecase(menuRepo, txm, clock)
	staffUC := usecase.NewStaffUsecase(staffRepo, txm, clock)
	inventoryUC := usecase.NewInventoryUsecase(inventoryRepo, txm, clock)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	handlers := server.Handlers{
		Orders:    handler.NewOrderHandler(orderUC),
		Menu:      handler.NewMenuHandler(menuUC),
		Staff:     handler.NewStaffHandler(staffUC),
		Inventory: handler.NewInventoryHandler(inventoryUC),
		Audit:     handler.NewAuditHandler(auditUC),
	}

	health := func(ctx context.Context) error {
		return sqlDB.PingContext(ctx)
	}

	//Server起動
	e := server.New(cfg, l, handlers, gate, health)
	if err := server.Start(ctx, e, cfg.Addr(), appLog); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
