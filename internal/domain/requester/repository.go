package requester

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, r *Requester) error
	Update(ctx context.Context, r *Requester) error
	GetByID(ctx context.Context, requesterID uint) (*Requester, error)
}
