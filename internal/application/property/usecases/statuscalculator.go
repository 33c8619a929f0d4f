package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
)

// statusCalculator derives a StatusView from the stored claims and the
// owning dossier. It never consults the cache.
type statusCalculator struct {
	claimRepo   claim.Repository
	dossierRepo dossier.Repository
}

func (s statusCalculator) compute(ctx context.Context, p *property.Property) (property.StatusView, error) {
	counts, err := s.claimRepo.CountByStatus(ctx, p.ID())
	if err != nil {
		return property.StatusView{}, err
	}

	d, err := s.dossierRepo.GetByID(ctx, p.DossierID())
	if err != nil {
		return property.StatusView{}, err
	}

	return property.NewStatusView(counts.Active > 0, counts.Archived > 0, d.IsClosed()), nil
}
