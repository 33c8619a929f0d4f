package dto

import (
	"time"

	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
)

type RequesterDTO struct {
	ID         uint      `json:"id"`
	DossierID  uint      `json:"dossier_id"`
	LastName   string    `json:"last_name"`
	FirstName  string    `json:"first_name,omitempty"`
	NationalID string    `json:"national_id,omitempty"`
	BirthDate  string    `json:"birth_date,omitempty"`
	BirthPlace string    `json:"birth_place,omitempty"`
	IsComplete bool      `json:"is_complete"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToRequesterDTO(r *requester.Requester) *RequesterDTO {
	if r == nil {
		return nil
	}
	id := r.Identity()
	out := &RequesterDTO{
		ID:         r.ID(),
		DossierID:  r.DossierID(),
		LastName:   id.LastName,
		FirstName:  id.FirstName,
		NationalID: id.NationalID,
		BirthPlace: id.BirthPlace,
		IsComplete: r.IsComplete(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
	if id.BirthDate != nil {
		out.BirthDate = biztime.FormatDate(*id.BirthDate)
	}
	return out
}
