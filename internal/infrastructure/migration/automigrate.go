package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the gorm models. Used in
// development and by the sqlite-backed tests.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.WithComponent("migration.automigrate"),
	}
}

// Migrate migrates the given models, or every ledger model when none are given.
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, ms ...interface{}) error {
	if len(ms) == 0 {
		ms = models.All()
	}

	s.logger.Infow("starting gorm auto migration", "models_count", len(ms))
	if err := db.AutoMigrate(ms...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
