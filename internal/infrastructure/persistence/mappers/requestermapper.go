package mappers

import (
	"fmt"

	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
)

// RequesterMapper handles the conversion between Requester domain entities and persistence models.
type RequesterMapper interface {
	ToModel(r *requester.Requester) *models.RequesterModel
	ToDomain(model *models.RequesterModel) (*requester.Requester, error)
}

type RequesterMapperImpl struct{}

func NewRequesterMapper() RequesterMapper {
	return &RequesterMapperImpl{}
}

// ToModel stores the completeness flag computed by the entity so listings
// can filter on it without loading identities.
func (m *RequesterMapperImpl) ToModel(r *requester.Requester) *models.RequesterModel {
	id := r.Identity()
	model := &models.RequesterModel{
		ID:         r.ID(),
		DossierID:  r.DossierID(),
		LastName:   id.LastName,
		FirstName:  id.FirstName,
		NationalID: id.NationalID,
		BirthPlace: id.BirthPlace,
		IsComplete: r.IsComplete(),
		CreatedAt:  r.CreatedAt().UnixMilli(),
		UpdatedAt:  r.UpdatedAt().UnixMilli(),
	}
	if id.BirthDate != nil {
		d := biztime.FormatDate(*id.BirthDate)
		model.BirthDate = &d
	}
	return model
}

func (m *RequesterMapperImpl) ToDomain(model *models.RequesterModel) (*requester.Requester, error) {
	identity := requester.Identity{
		LastName:   model.LastName,
		FirstName:  model.FirstName,
		NationalID: model.NationalID,
		BirthPlace: model.BirthPlace,
	}
	if model.BirthDate != nil {
		d, err := biztime.ParseDate(*model.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("requester %d: %w", model.ID, err)
		}
		identity.BirthDate = &d
	}

	return requester.ReconstructRequester(
		model.ID,
		model.DossierID,
		identity,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
