package mappers

import (
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
)

// DossierMapper handles the conversion between Dossier domain entities and persistence models.
type DossierMapper interface {
	ToModel(d *dossier.Dossier) *models.DossierModel
	ToDomain(model *models.DossierModel) (*dossier.Dossier, error)
}

type DossierMapperImpl struct{}

func NewDossierMapper() DossierMapper {
	return &DossierMapperImpl{}
}

func (m *DossierMapperImpl) ToModel(d *dossier.Dossier) *models.DossierModel {
	model := &models.DossierModel{
		ID:        d.ID(),
		Reference: d.Reference(),
		Title:     d.Title(),
		IsClosed:  d.IsClosed(),
		CreatedAt: d.CreatedAt().UnixMilli(),
		UpdatedAt: d.UpdatedAt().UnixMilli(),
	}

	if c := d.Closure(); c != nil {
		at := c.ClosedAt()
		model.ClosedAt = timeToMillisPtr(&at)
		by := c.ClosedBy()
		model.ClosedBy = &by
		model.ClosureReason = stringPtr(c.Reason())
	}

	return model
}

func (m *DossierMapperImpl) ToDomain(model *models.DossierModel) (*dossier.Dossier, error) {
	var closure *dossier.ClosureRecord
	if model.IsClosed {
		var by uint
		if model.ClosedBy != nil {
			by = *model.ClosedBy
		}
		reason := ""
		if model.ClosureReason != nil {
			reason = *model.ClosureReason
		}
		var at int64
		if model.ClosedAt != nil {
			at = *model.ClosedAt
		}
		rec := dossier.NewClosureRecord(by, reason, millisToTime(at))
		closure = &rec
	}

	return dossier.ReconstructDossier(
		model.ID,
		model.Reference,
		model.Title,
		closure,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
