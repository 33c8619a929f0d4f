package usecases

import (
	"time"

	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
)

// IdentityInput is the identity block shared by create and update commands.
type IdentityInput struct {
	LastName   string `json:"last_name" validate:"required,max=100"`
	FirstName  string `json:"first_name" validate:"max=100"`
	NationalID string `json:"national_id" validate:"max=20"`
	BirthDate  string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	BirthPlace string `json:"birth_place" validate:"max=100"`
}

func (in IdentityInput) toIdentity() (requester.Identity, error) {
	var birthDate *time.Time
	if in.BirthDate != "" {
		d, err := biztime.ParseDate(in.BirthDate)
		if err != nil {
			return requester.Identity{}, errors.NewValidationError("invalid birth date", err.Error())
		}
		birthDate = &d
	}
	return requester.Identity{
		LastName:   in.LastName,
		FirstName:  in.FirstName,
		NationalID: in.NationalID,
		BirthDate:  birthDate,
		BirthPlace: in.BirthPlace,
	}, nil
}
