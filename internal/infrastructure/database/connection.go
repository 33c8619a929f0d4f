// Package database opens the MySQL pool shared by the CLI commands.
package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/shared/config"
	appLogger "github.com/geofoncier/geofoncier/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the pool and registers it as the process connection.
func Init(cfg *config.DatabaseConfig) error {
	log := appLogger.WithComponent("database")

	database, err := Open(cfg, log)
	if err != nil {
		return err
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	log.Infow("database connection established", "database", cfg.Database)
	return nil
}

// Open builds a pool without registering it. Times are stored as epoch
// milliseconds and business dates as strings, so the DSN pins loc=UTC.
func Open(cfg *config.DatabaseConfig, log appLogger.Interface) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.GetDSN(),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      newQueryLogger(log, cfg.SlowQueryThreshold()),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Database, err)
	}

	return database, nil
}

func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes and forgets the process connection. Calling it without a
// connection is a no-op.
func Close() error {
	dbMu.Lock()
	current := db
	db = nil
	dbMu.Unlock()

	if current == nil {
		return nil
	}

	sqlDB, err := current.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
