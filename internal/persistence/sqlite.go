package persistence

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// OpenSQLite opens (or creates) the embedded SQLite database and applies
// PRAGMAs and pool limits suitable for a single-process service.
func OpenSQLite(cfg config.SQLiteConfig, logger *zap.Logger) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist instead of a
	// cryptic driver error later.
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return db, nil
}
