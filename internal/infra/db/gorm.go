package db

import (
	"fmt"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/config"
	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config, l *log.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		// SQLログもlogrusに流す
		Logger: gormlogger.New(l, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(l.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	switch cfg.DBDriver {
	case config.DriverMySQL:
		return gorm.Open(mysql.Open(cfg.MySQLDSN), gormCfg)
	case config.DriverPostgres:
		return gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", cfg.DBDriver)
	}
}

// Migrate はテーブルを作る（親→子の順）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.Staff{},
		&model.InventoryItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	)
}

func gormLogLevel(lv log.Level) gormlogger.LogLevel {
	switch {
	case lv >= log.DebugLevel:
		return gormlogger.Info
	case lv >= log.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
