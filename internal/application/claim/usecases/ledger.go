package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/infrastructure/cache"
	"github.com/geofoncier/geofoncier/internal/infrastructure/metrics"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

const (
	opCreateClaim       = "create_claim"
	opArchiveClaim      = "archive_claim"
	opUnarchiveClaim    = "unarchive_claim"
	opRemoveClaim       = "remove_claim"
	opPromoteClaim      = "promote_claim"
	opArchiveProperty   = "archive_property"
	opUnarchiveProperty = "unarchive_property"
)

const (
	outcomeApplied  = "applied"
	outcomeNoop     = "noop"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeFailed   = "failed"
)

// LedgerDeps are the collaborators shared by every ledger use case.
// StatusCache, Recorder and Metrics are optional.
type LedgerDeps struct {
	ClaimRepo    claim.Repository
	PropertyRepo property.Repository
	Gate         *gate.Gate
	TxMgr        db.Transactor
	StatusCache  property.StatusInvalidator
	Recorder     audit.Recorder
	Metrics      *metrics.Metrics
	Logger       logger.Interface
}

type ledger struct {
	LedgerDeps
}

func newLedger(deps LedgerDeps) ledger {
	if deps.StatusCache == nil {
		deps.StatusCache = cache.NoopPropertyStatusCache{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	return ledger{LedgerDeps: deps}
}

// lockProperty takes the property row lock and then runs the closure gate.
// Every rank-changing write for the property is serialized behind it.
func (l *ledger) lockProperty(ctx context.Context, propertyID, actorID uint, op string) (*property.Property, error) {
	p, err := l.PropertyRepo.GetByIDForUpdate(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if _, err := l.Gate.Check(ctx, p.DossierID(), actorID, op); err != nil {
		return nil, err
	}
	return p, nil
}

// lockClaim resolves the claim's property, locks it, and re-reads the claim
// so the caller sees its state as of the lock.
func (l *ledger) lockClaim(ctx context.Context, claimID, actorID uint, op string) (*claim.Claim, error) {
	c, err := l.ClaimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if _, err := l.lockProperty(ctx, c.PropertyID(), actorID, op); err != nil {
		return nil, err
	}
	return l.ClaimRepo.GetByID(ctx, claimID)
}

// compact re-indexes the active claims of a property to 1..N.
func (l *ledger) compact(ctx context.Context, propertyID uint) ([]*claim.Claim, error) {
	active, err := l.ClaimRepo.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	changed, err := claim.Reindex(active)
	if err != nil {
		return nil, err
	}
	if err := l.ClaimRepo.UpdateRanks(ctx, changed); err != nil {
		return nil, err
	}
	return changed, nil
}

// verifyRanks re-reads the active claims inside the transaction and fails
// it when their ranks are not exactly 1..N.
func (l *ledger) verifyRanks(ctx context.Context, propertyID uint) error {
	active, err := l.ClaimRepo.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := claim.VerifyRanks(active); err != nil {
		l.Logger.Errorw("active claim ranks are not contiguous", "property_id", propertyID, "error", err)
		return errors.NewInternalError("claim ranks are not contiguous", err.Error())
	}
	return nil
}

// afterCommit drops the cached status of the property and records events.
// Neither step can fail the operation: its state change is committed. When
// ctx carries a caller's transaction both steps wait for it to commit.
func (l *ledger) afterCommit(ctx context.Context, propertyID uint, events ...audit.Event) {
	db.AfterCommit(ctx, func(ctx context.Context) {
		l.invalidateAndRecord(ctx, propertyID, events)
	})
}

func (l *ledger) invalidateAndRecord(ctx context.Context, propertyID uint, events []audit.Event) {
	if err := l.StatusCache.InvalidateStatus(ctx, propertyID); err != nil {
		l.Metrics.CacheError()
		l.Logger.Warnw("failed to invalidate property status", "property_id", propertyID, "error", err)
	}

	if l.Recorder == nil {
		return
	}
	for _, event := range events {
		if err := l.Recorder.Record(ctx, event); err != nil {
			l.Logger.Warnw("failed to record activity",
				"action", event.Action,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
}

// observe counts the outcome of a ledger operation.
func (l *ledger) observe(op string, applied bool, err error) {
	switch {
	case err == nil && applied:
		l.Metrics.LedgerOperation(op, outcomeApplied)
	case err == nil:
		l.Metrics.LedgerOperation(op, outcomeNoop)
	case errors.IsRankConflictError(err):
		l.Metrics.LedgerOperation(op, outcomeConflict)
	case errors.IsDossierClosedError(err), errors.IsForbiddenError(err),
		errors.IsValidationError(err), errors.IsNotFoundError(err):
		l.Metrics.LedgerOperation(op, outcomeRejected)
	default:
		l.Metrics.LedgerOperation(op, outcomeFailed)
	}
}
