package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/property/dto"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/infrastructure/cache"
	"github.com/geofoncier/geofoncier/internal/infrastructure/metrics"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

type ResolvePropertyStatusQuery struct {
	PropertyID uint
}

// ResolvePropertyStatusUseCase serves property statuses from the status
// cache and recomputes them on a miss. A cache failure degrades to a
// recompute; it never fails the read. The recomputed view is written back
// under the generation seen at the miss, so a ledger write that invalidates
// the property mid-compute wins over the older view.
type ResolvePropertyStatusUseCase struct {
	propertyRepo property.Repository
	calc         statusCalculator
	cache        property.StatusCache
	metrics      *metrics.Metrics
	logger       logger.Interface
}

func NewResolvePropertyStatusUseCase(
	propertyRepo property.Repository,
	claimRepo claim.Repository,
	dossierRepo dossier.Repository,
	statusCache property.StatusCache,
	m *metrics.Metrics,
	logger logger.Interface,
) *ResolvePropertyStatusUseCase {
	if statusCache == nil {
		statusCache = cache.NoopPropertyStatusCache{}
	}
	return &ResolvePropertyStatusUseCase{
		propertyRepo: propertyRepo,
		calc:         statusCalculator{claimRepo: claimRepo, dossierRepo: dossierRepo},
		cache:        statusCache,
		metrics:      m,
		logger:       logger,
	}
}

func (uc *ResolvePropertyStatusUseCase) Execute(ctx context.Context, query ResolvePropertyStatusQuery) (*dto.PropertyStatusDTO, error) {
	view, err := uc.Resolve(ctx, query.PropertyID)
	if err != nil {
		return nil, err
	}
	return dto.ToPropertyStatusDTO(query.PropertyID, view), nil
}

func (uc *ResolvePropertyStatusUseCase) Resolve(ctx context.Context, propertyID uint) (property.StatusView, error) {
	cached, generation, readErr := uc.cache.GetStatus(ctx, propertyID)
	if readErr != nil {
		uc.metrics.CacheError()
		uc.logger.Warnw("failed to read cached property status", "property_id", propertyID, "error", readErr)
	}
	if cached != nil {
		uc.metrics.CacheHit()
		return *cached, nil
	}
	uc.metrics.CacheMiss()

	p, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return property.StatusView{}, err
	}

	view, err := uc.calc.compute(ctx, p)
	if err != nil {
		uc.logger.Errorw("failed to compute property status", "property_id", propertyID, "error", err)
		return property.StatusView{}, err
	}

	// Without a generation there is nothing to guard the write-back with.
	if readErr != nil {
		return view, nil
	}

	if _, err := uc.cache.SetStatus(ctx, propertyID, view, generation); err != nil {
		uc.metrics.CacheError()
		uc.logger.Warnw("failed to cache property status", "property_id", propertyID, "error", err)
	}

	return view, nil
}
