package property

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, propertyID uint) error
	GetByID(ctx context.Context, propertyID uint) (*Property, error)
	// GetByIDForUpdate loads the property and holds a row lock on it until
	// the surrounding transaction ends. Ledger writes for one property
	// serialize on this lock.
	GetByIDForUpdate(ctx context.Context, propertyID uint) (*Property, error)
	ListByDossier(ctx context.Context, dossierID uint) ([]*Property, error)
}

// StatusInvalidator drops the cached status of a property.
type StatusInvalidator interface {
	InvalidateStatus(ctx context.Context, propertyID uint) error
}

// StatusCache holds resolved StatusViews keyed by property ID. GetStatus
// returns a nil view on a miss, along with the property's cache generation.
// Every invalidation advances the generation, and SetStatus stores the view
// only while the generation it was given is still current; it reports
// whether the view was stored.
type StatusCache interface {
	StatusInvalidator
	GetStatus(ctx context.Context, propertyID uint) (*StatusView, int64, error)
	SetStatus(ctx context.Context, propertyID uint, view StatusView, generation int64) (bool, error)
}
