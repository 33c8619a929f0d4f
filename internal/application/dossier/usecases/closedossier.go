package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type CloseDossierCommand struct {
	DossierID uint   `json:"dossier_id" validate:"required"`
	ActorID   uint   `json:"actor_id"`
	Reason    string `json:"reason" validate:"max=500"`
}

// CloseDossierUseCase freezes a dossier. Cached property statuses are left
// alone and may report the dossier as open until their TTL expires.
type CloseDossierUseCase struct {
	dossierRepo dossier.Repository
	gate        *gate.Gate
	txMgr       db.Transactor
	recorder    audit.Recorder
	logger      logger.Interface
}

func NewCloseDossierUseCase(
	dossierRepo dossier.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	recorder audit.Recorder,
	logger logger.Interface,
) *CloseDossierUseCase {
	return &CloseDossierUseCase{
		dossierRepo: dossierRepo,
		gate:        g,
		txMgr:       txMgr,
		recorder:    recorder,
		logger:      logger,
	}
}

// Execute returns false when the dossier was already closed.
func (uc *CloseDossierUseCase) Execute(ctx context.Context, cmd CloseDossierCommand) (bool, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return false, err
	}

	var closed bool
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		d, err := uc.dossierRepo.GetByIDForUpdate(txCtx, cmd.DossierID)
		if err != nil {
			return err
		}
		if err := uc.gate.Authorize(txCtx, cmd.ActorID, d, dossier.ActionClose); err != nil {
			return err
		}

		if !d.Close(cmd.ActorID, cmd.Reason, biztime.NowUTC()) {
			return nil
		}
		if err := uc.dossierRepo.Update(txCtx, d); err != nil {
			return err
		}
		closed = true
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to close dossier", "dossier_id", cmd.DossierID, "error", err)
		return false, err
	}

	if !closed {
		uc.logger.Debugw("dossier already closed", "dossier_id", cmd.DossierID)
		return false, nil
	}

	recordEvent(ctx, uc.recorder, uc.logger, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionDossierClosed,
		EntityType: audit.EntityDossier,
		EntityID:   cmd.DossierID,
		Metadata:   audit.Metadata{Reason: cmd.Reason},
	})

	uc.logger.Infow("dossier closed successfully",
		"dossier_id", cmd.DossierID,
		"actor_id", cmd.ActorID,
	)
	return true, nil
}

// recordEvent records event once the caller's transaction, if any, commits.
func recordEvent(ctx context.Context, recorder audit.Recorder, log logger.Interface, event audit.Event) {
	if recorder == nil {
		return
	}
	db.AfterCommit(ctx, func(ctx context.Context) {
		if err := recorder.Record(ctx, event); err != nil {
			log.Warnw("failed to record activity",
				"action", event.Action,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	})
}
