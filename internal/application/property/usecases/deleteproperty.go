package usecases

import (
	"context"
	"fmt"

	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/infrastructure/cache"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

type DeletePropertyCommand struct {
	PropertyID uint
	ActorID    uint
}

// DeletePropertyUseCase deletes a property that never held a claim.
type DeletePropertyUseCase struct {
	propertyRepo property.Repository
	calc         statusCalculator
	gate         *gate.Gate
	txMgr        db.Transactor
	statusCache  property.StatusInvalidator
	recorder     audit.Recorder
	logger       logger.Interface
}

func NewDeletePropertyUseCase(
	propertyRepo property.Repository,
	claimRepo claim.Repository,
	dossierRepo dossier.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	statusCache property.StatusInvalidator,
	recorder audit.Recorder,
	logger logger.Interface,
) *DeletePropertyUseCase {
	if statusCache == nil {
		statusCache = cache.NoopPropertyStatusCache{}
	}
	return &DeletePropertyUseCase{
		propertyRepo: propertyRepo,
		calc:         statusCalculator{claimRepo: claimRepo, dossierRepo: dossierRepo},
		gate:         g,
		txMgr:        txMgr,
		statusCache:  statusCache,
		recorder:     recorder,
		logger:       logger,
	}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, cmd DeletePropertyCommand) error {
	if cmd.PropertyID == 0 {
		return errors.NewValidationError("property_id is required")
	}

	var dossierID uint
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.propertyRepo.GetByIDForUpdate(txCtx, cmd.PropertyID)
		if err != nil {
			return err
		}
		if _, err := uc.gate.Check(txCtx, p.DossierID(), cmd.ActorID, "delete_property"); err != nil {
			return err
		}
		dossierID = p.DossierID()

		view, err := uc.calc.compute(txCtx, p)
		if err != nil {
			return err
		}
		if !view.CanDelete {
			return errors.NewConflictError(
				fmt.Sprintf("property %d has claims and cannot be deleted", p.ID()))
		}

		return uc.propertyRepo.Delete(txCtx, p.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete property", "property_id", cmd.PropertyID, "error", err)
		return err
	}

	db.AfterCommit(ctx, func(ctx context.Context) {
		if err := uc.statusCache.InvalidateStatus(ctx, cmd.PropertyID); err != nil {
			uc.logger.Warnw("failed to invalidate property status", "property_id", cmd.PropertyID, "error", err)
		}

		if uc.recorder == nil {
			return
		}
		if err := uc.recorder.Record(ctx, audit.Event{
			ActorID:    cmd.ActorID,
			Action:     audit.ActionPropertyDeleted,
			EntityType: audit.EntityProperty,
			EntityID:   cmd.PropertyID,
			Metadata:   audit.Metadata{DossierID: dossierID},
		}); err != nil {
			uc.logger.Warnw("failed to record activity", "property_id", cmd.PropertyID, "error", err)
		}
	})

	uc.logger.Infow("property deleted successfully", "property_id", cmd.PropertyID)
	return nil
}
