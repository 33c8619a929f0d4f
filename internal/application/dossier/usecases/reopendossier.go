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

type ReopenDossierCommand struct {
	DossierID uint `json:"dossier_id" validate:"required"`
	ActorID   uint `json:"actor_id"`
}

// ReopenDossierUseCase clears the closure of a dossier. It needs the
// reopen action, which ordinary editors do not hold.
type ReopenDossierUseCase struct {
	dossierRepo dossier.Repository
	gate        *gate.Gate
	txMgr       db.Transactor
	recorder    audit.Recorder
	logger      logger.Interface
}

func NewReopenDossierUseCase(
	dossierRepo dossier.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	recorder audit.Recorder,
	logger logger.Interface,
) *ReopenDossierUseCase {
	return &ReopenDossierUseCase{
		dossierRepo: dossierRepo,
		gate:        g,
		txMgr:       txMgr,
		recorder:    recorder,
		logger:      logger,
	}
}

// Execute returns false when the dossier was already open.
func (uc *ReopenDossierUseCase) Execute(ctx context.Context, cmd ReopenDossierCommand) (bool, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return false, err
	}

	var (
		reopened    bool
		closeReason string
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		d, err := uc.dossierRepo.GetByIDForUpdate(txCtx, cmd.DossierID)
		if err != nil {
			return err
		}
		if err := uc.gate.Authorize(txCtx, cmd.ActorID, d, dossier.ActionReopen); err != nil {
			return err
		}

		if c := d.Closure(); c != nil {
			closeReason = c.Reason()
		}
		if !d.Reopen(biztime.NowUTC()) {
			return nil
		}
		if err := uc.dossierRepo.Update(txCtx, d); err != nil {
			return err
		}
		reopened = true
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to reopen dossier", "dossier_id", cmd.DossierID, "error", err)
		return false, err
	}

	if !reopened {
		uc.logger.Debugw("dossier already open", "dossier_id", cmd.DossierID)
		return false, nil
	}

	recordEvent(ctx, uc.recorder, uc.logger, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionDossierReopened,
		EntityType: audit.EntityDossier,
		EntityID:   cmd.DossierID,
		Metadata:   audit.Metadata{Reason: closeReason},
	})

	uc.logger.Infow("dossier reopened successfully",
		"dossier_id", cmd.DossierID,
		"actor_id", cmd.ActorID,
	)
	return true, nil
}
