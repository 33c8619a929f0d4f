package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	vo "github.com/geofoncier/geofoncier/internal/domain/property/valueobjects"
	"github.com/geofoncier/geofoncier/internal/infrastructure/metrics"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/testdb"
	"github.com/geofoncier/geofoncier/internal/infrastructure/repository"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// failingCache fails every call and counts them.
type failingCache struct {
	gets, sets int
}

func (c *failingCache) GetStatus(context.Context, uint) (*property.StatusView, int64, error) {
	c.gets++
	return nil, 0, errors.New("connection refused")
}

func (c *failingCache) SetStatus(context.Context, uint, property.StatusView, int64) (bool, error) {
	c.sets++
	return false, errors.New("connection refused")
}

func (c *failingCache) InvalidateStatus(context.Context, uint) error {
	return errors.New("connection refused")
}

// mapCache is an in-process StatusCache. beforeSet, when set, runs once
// ahead of the next write-back.
type mapCache struct {
	entries     map[uint]property.StatusView
	generations map[uint]int64
	beforeSet   func()
}

func newMapCache() *mapCache {
	return &mapCache{
		entries:     make(map[uint]property.StatusView),
		generations: make(map[uint]int64),
	}
}

func (c *mapCache) GetStatus(_ context.Context, id uint) (*property.StatusView, int64, error) {
	v, ok := c.entries[id]
	if !ok {
		return nil, c.generations[id], nil
	}
	return &v, c.generations[id], nil
}

func (c *mapCache) SetStatus(_ context.Context, id uint, v property.StatusView, generation int64) (bool, error) {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	if c.generations[id] != generation {
		return false, nil
	}
	c.entries[id] = v
	return true, nil
}

func (c *mapCache) InvalidateStatus(_ context.Context, id uint) error {
	delete(c.entries, id)
	c.generations[id]++
	return nil
}

func setupResolver(t *testing.T, statusCache property.StatusCache) (*ResolvePropertyStatusUseCase, *metrics.Metrics, uint) {
	t.Helper()
	gdb := testdb.New(t)
	ctx := context.Background()

	dossierRepo := repository.NewDossierRepository(gdb)
	propertyRepo := repository.NewPropertyRepository(gdb)
	claimRepo := repository.NewClaimRepository(gdb, logger.NewNop())

	d, err := dossier.NewDossier("DOS-R", "")
	require.NoError(t, err)
	require.NoError(t, dossierRepo.Create(ctx, d))
	p, err := property.NewProperty(d.ID(), "Lot 1", 10, "", "")
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Create(ctx, p))

	m := metrics.New(prometheus.NewRegistry())
	uc := NewResolvePropertyStatusUseCase(propertyRepo, claimRepo, dossierRepo, statusCache, m, logger.NewNop())
	return uc, m, p.ID()
}

func TestResolve_CacheFailureFallsBackToCompute(t *testing.T) {
	fc := &failingCache{}
	uc, m, propertyID := setupResolver(t, fc)

	view, err := uc.Resolve(context.Background(), propertyID)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusEmpty, view.Status)
	assert.True(t, view.CanDelete)

	// The failed read leaves no generation, so no write-back is attempted.
	assert.Equal(t, 1, fc.gets)
	assert.Equal(t, 0, fc.sets)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusCacheErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusCacheMisses))
}

func TestResolve_ServesHitsFromCache(t *testing.T) {
	mc := newMapCache()
	uc, m, propertyID := setupResolver(t, mc)
	ctx := context.Background()

	_, err := uc.Resolve(ctx, propertyID)
	require.NoError(t, err)
	require.Contains(t, mc.entries, propertyID)

	// A planted entry proves the second read never reaches the store.
	mc.entries[propertyID] = property.NewStatusView(false, true, false)
	view, err := uc.Resolve(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusAcquired, view.Status)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusCacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusCacheMisses))
}

func TestResolve_InvalidationDuringComputeSkipsWriteBack(t *testing.T) {
	mc := newMapCache()
	uc, m, propertyID := setupResolver(t, mc)
	ctx := context.Background()

	mc.beforeSet = func() {
		require.NoError(t, mc.InvalidateStatus(ctx, propertyID))
	}

	_, err := uc.Resolve(ctx, propertyID)
	require.NoError(t, err)
	assert.NotContains(t, mc.entries, propertyID)
	assert.Equal(t, int64(1), mc.generations[propertyID])

	// The next read recomputes and, with no write in between, caches.
	_, err = uc.Resolve(ctx, propertyID)
	require.NoError(t, err)
	assert.Contains(t, mc.entries, propertyID)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.StatusCacheMisses))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.StatusCacheErrors))
}

func TestResolve_UnknownProperty(t *testing.T) {
	uc, _, _ := setupResolver(t, nil)

	dto, err := uc.Execute(context.Background(), ResolvePropertyStatusQuery{PropertyID: 404})
	assert.Error(t, err)
	assert.Nil(t, dto)
}
