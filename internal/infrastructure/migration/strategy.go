package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

//go:embed scripts/*.sql
var embeddedScripts embed.FS

const (
	embeddedScriptsDir = "scripts"
	gooseDialect       = "mysql"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy applies the versioned SQL scripts embedded in the binary.
// Create writes new scripts to scriptsPath on disk; they are picked up on
// the next build.
type GooseStrategy struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGooseStrategy(scriptsPath string) *GooseStrategy {
	return &GooseStrategy{
		scriptsPath: scriptsPath,
		logger:      logger.WithComponent("migration.goose"),
	}
}

func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(embeddedScripts)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	s.logger.Infow("starting goose migration")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, embeddedScriptsDir); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, embeddedScriptsDir); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	if err := goose.Status(sqlDB, embeddedScriptsDir); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

// Create writes an empty SQL migration named name under scriptsPath.
func (s *GooseStrategy) Create(name string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Create(nil, s.scriptsPath, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name, "path", s.scriptsPath)
	return nil
}
