package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kanditextile/kandipos/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// getDatabase opens the configured store. The default is a local sqlite
// file under the workdir; correctness under concurrent writers relies on
// sqlite's own file locking, so a busy_timeout is set instead of any
// application-level locking. Postgres remains selectable for shops that
// outgrow the single file.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logLevel),
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	default:
		path := cfg.Path
		if path == "" {
			path = "pos.db"
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(workdir, path)
		}
		dialector = sqlite.Open(path + "?_busy_timeout=5000")
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to get database handle: %v", err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
