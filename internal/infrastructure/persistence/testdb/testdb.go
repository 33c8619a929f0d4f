// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
)

// New returns a fresh database with every ledger table. The pool holds a
// single connection: each sqlite :memory: connection is its own database,
// and one connection also serializes concurrent transactions the way the
// MySQL row locks do.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}
