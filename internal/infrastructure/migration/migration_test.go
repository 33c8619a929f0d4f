package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/shared/constants"
)

func TestNewManager_PicksStrategyByEnvironment(t *testing.T) {
	assert.Equal(t, "gorm_auto_migrate", NewManager(constants.EnvDevelopment).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvProduction).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvTest).GetStrategy().GetName())
	assert.Equal(t, "gorm_auto_migrate", NewManager("staging").GetStrategy().GetName())
}

func TestGormAutoMigrateStrategy_CreatesLedgerTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, NewManagerWithStrategy(NewGormAutoMigrateStrategy()).Migrate(db))

	for _, table := range []string{"dossiers", "properties", "requesters", "claims", "activity_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("claims", "uk_claims_property_active_rank"))
}

func TestEmbeddedScripts_HaveUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(embeddedScripts, embeddedScriptsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		body, err := fs.ReadFile(embeddedScripts, embeddedScriptsDir+"/"+e.Name())
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), e.Name())
	}
}
