package requester

import (
	"fmt"
	"strings"
	"time"
)

// Requester is a person who may claim one or more properties of a dossier.
type Requester struct {
	id         uint
	dossierID  uint
	lastName   string
	firstName  string
	nationalID string
	birthDate  *time.Time
	birthPlace string
	createdAt  time.Time
	updatedAt  time.Time
}

// Identity holds the identity fields of a requester.
type Identity struct {
	LastName   string
	FirstName  string
	NationalID string
	BirthDate  *time.Time
	BirthPlace string
}

func (i Identity) normalized() Identity {
	return Identity{
		LastName:   strings.TrimSpace(i.LastName),
		FirstName:  strings.TrimSpace(i.FirstName),
		NationalID: strings.TrimSpace(i.NationalID),
		BirthDate:  i.BirthDate,
		BirthPlace: strings.TrimSpace(i.BirthPlace),
	}
}

func (i Identity) validate() error {
	if i.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if len(i.LastName) > 100 || len(i.FirstName) > 100 {
		return fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if len(i.NationalID) > 20 {
		return fmt.Errorf("national ID exceeds maximum length of 20 characters")
	}
	if i.BirthDate != nil && i.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth date cannot be in the future")
	}
	return nil
}

func NewRequester(dossierID uint, identity Identity) (*Requester, error) {
	if dossierID == 0 {
		return nil, fmt.Errorf("dossier ID is required")
	}
	identity = identity.normalized()
	if err := identity.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &Requester{
		dossierID: dossierID,
		createdAt: now,
		updatedAt: now,
	}
	r.setIdentity(identity)
	return r, nil
}

func ReconstructRequester(
	id uint,
	dossierID uint,
	identity Identity,
	createdAt, updatedAt time.Time,
) (*Requester, error) {
	if id == 0 {
		return nil, fmt.Errorf("requester ID cannot be zero")
	}
	r := &Requester{
		id:        id,
		dossierID: dossierID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	r.setIdentity(identity)
	return r, nil
}

func (r *Requester) setIdentity(i Identity) {
	r.lastName = i.LastName
	r.firstName = i.FirstName
	r.nationalID = i.NationalID
	r.birthDate = i.BirthDate
	r.birthPlace = i.BirthPlace
}

func (r *Requester) ID() uint {
	return r.id
}

func (r *Requester) DossierID() uint {
	return r.dossierID
}

func (r *Requester) Identity() Identity {
	return Identity{
		LastName:   r.lastName,
		FirstName:  r.firstName,
		NationalID: r.nationalID,
		BirthDate:  r.birthDate,
		BirthPlace: r.birthPlace,
	}
}

func (r *Requester) FullName() string {
	return strings.TrimSpace(r.lastName + " " + r.firstName)
}

func (r *Requester) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Requester) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsComplete reports whether every field required to draft a deed is present.
func (r *Requester) IsComplete() bool {
	return r.lastName != "" &&
		r.firstName != "" &&
		r.nationalID != "" &&
		r.birthDate != nil &&
		r.birthPlace != ""
}

func (r *Requester) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("requester ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("requester ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Requester) UpdateIdentity(identity Identity) error {
	identity = identity.normalized()
	if err := identity.validate(); err != nil {
		return err
	}
	r.setIdentity(identity)
	r.updatedAt = time.Now().UTC()
	return nil
}
