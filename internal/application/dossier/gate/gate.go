// Package gate checks that a dossier accepts mutations before any claim or
// property beneath it is written.
package gate

import (
	"context"
	"fmt"

	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/infrastructure/metrics"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// Gate is consulted synchronously by every ledger and property mutation.
// Check must run inside the mutation's transaction: it takes a shared lock
// on the dossier row so a concurrent close waits for the write to commit.
type Gate struct {
	dossierRepo dossier.Repository
	policy      dossier.AccessPolicy
	metrics     *metrics.Metrics
	logger      logger.Interface
}

// New builds a gate. policy may be nil, in which case every actor may
// modify an open dossier.
func New(
	dossierRepo dossier.Repository,
	policy dossier.AccessPolicy,
	m *metrics.Metrics,
	logger logger.Interface,
) *Gate {
	return &Gate{
		dossierRepo: dossierRepo,
		policy:      policy,
		metrics:     m,
		logger:      logger,
	}
}

// Check returns the dossier when it is open and actorID may modify it.
// A closed dossier fails with a dossier_closed error before the policy is
// consulted.
func (g *Gate) Check(ctx context.Context, dossierID, actorID uint, operation string) (*dossier.Dossier, error) {
	d, err := g.dossierRepo.GetByIDForShare(ctx, dossierID)
	if err != nil {
		return nil, err
	}

	if d.IsClosed() {
		g.metrics.ClosedDossierReject(operation)
		g.logger.Warnw("mutation rejected on closed dossier",
			"dossier_id", dossierID,
			"actor_id", actorID,
			"operation", operation,
		)
		return nil, errors.NewDossierClosedError(dossierID)
	}

	if err := g.Authorize(ctx, actorID, d, dossier.ActionModify); err != nil {
		return nil, err
	}

	return d, nil
}

// Authorize consults the access policy only.
func (g *Gate) Authorize(ctx context.Context, actorID uint, d *dossier.Dossier, action dossier.Action) error {
	if g.policy == nil {
		return nil
	}

	allowed, err := g.policy.Allowed(ctx, actorID, d, action)
	if err != nil {
		return fmt.Errorf("failed to check dossier permission: %w", err)
	}
	if !allowed {
		g.logger.Warnw("actor not allowed on dossier",
			"dossier_id", d.ID(),
			"actor_id", actorID,
			"action", action,
		)
		return errors.NewForbiddenError(fmt.Sprintf("actor %d may not %s dossier %d", actorID, action, d.ID()))
	}
	return nil
}
