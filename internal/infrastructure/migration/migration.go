package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/shared/constants"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// DefaultScriptsPath is where `migrate create` writes new scripts.
const DefaultScriptsPath = "./internal/infrastructure/migration/scripts"

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate for development and the versioned goose
// scripts everywhere else.
func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case constants.EnvTest, constants.EnvProduction:
		strategy = NewGooseStrategy(DefaultScriptsPath)
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return NewManagerWithStrategy(strategy)
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
