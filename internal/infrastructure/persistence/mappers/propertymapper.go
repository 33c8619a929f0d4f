package mappers

import (
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
)

// PropertyMapper handles the conversion between Property domain entities and persistence models.
type PropertyMapper interface {
	ToModel(p *property.Property) *models.PropertyModel
	ToDomain(model *models.PropertyModel) (*property.Property, error)
}

type PropertyMapperImpl struct{}

func NewPropertyMapper() PropertyMapper {
	return &PropertyMapperImpl{}
}

func (m *PropertyMapperImpl) ToModel(p *property.Property) *models.PropertyModel {
	return &models.PropertyModel{
		ID:          p.ID(),
		DossierID:   p.DossierID(),
		Lot:         p.Lot(),
		TitleNumber: p.TitleNumber(),
		Area:        p.Area(),
		Nature:      p.Nature(),
		Vocation:    p.Vocation(),
		CreatedAt:   p.CreatedAt().UnixMilli(),
		UpdatedAt:   p.UpdatedAt().UnixMilli(),
	}
}

func (m *PropertyMapperImpl) ToDomain(model *models.PropertyModel) (*property.Property, error) {
	return property.ReconstructProperty(
		model.ID,
		model.DossierID,
		model.Lot,
		model.TitleNumber,
		model.Area,
		model.Nature,
		model.Vocation,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
