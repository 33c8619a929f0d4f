package claim

import (
	"context"
)

// Repository persists claims. Rank-changing writes go through UpdateRanks
// so the store can move several claims without tripping its uniqueness
// constraint on active ranks halfway through.
type Repository interface {
	Create(ctx context.Context, c *Claim) error
	Update(ctx context.Context, c *Claim) error
	UpdateRanks(ctx context.Context, claims []*Claim) error
	Delete(ctx context.Context, claimID uint) error
	GetByID(ctx context.Context, claimID uint) (*Claim, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]*Claim, error)
	ListActiveByProperty(ctx context.Context, propertyID uint) ([]*Claim, error)
	ListArchivedByProperty(ctx context.Context, propertyID uint) ([]*Claim, error)
	FindPrincipal(ctx context.Context, propertyID uint) (*Claim, error)
	CountByStatus(ctx context.Context, propertyID uint) (Counts, error)
}

// Counts is the per-status claim tally of one property.
type Counts struct {
	Active   int64
	Archived int64
}
