package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	"github.com/geofoncier/geofoncier/internal/application/requester/dto"
	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type UpdateRequesterCommand struct {
	RequesterID uint `json:"requester_id" validate:"required"`
	ActorID     uint `json:"actor_id"`
	Identity    IdentityInput
}

// UpdateRequesterUseCase replaces the identity of a requester. Completeness
// is recomputed from the new fields on save.
type UpdateRequesterUseCase struct {
	requesterRepo requester.Repository
	gate          *gate.Gate
	txMgr         db.Transactor
	logger        logger.Interface
}

func NewUpdateRequesterUseCase(
	requesterRepo requester.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateRequesterUseCase {
	return &UpdateRequesterUseCase{
		requesterRepo: requesterRepo,
		gate:          g,
		txMgr:         txMgr,
		logger:        logger,
	}
}

func (uc *UpdateRequesterUseCase) Execute(ctx context.Context, cmd UpdateRequesterCommand) (*dto.RequesterDTO, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	identity, err := cmd.Identity.toIdentity()
	if err != nil {
		return nil, err
	}

	var updated *requester.Requester
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.requesterRepo.GetByID(txCtx, cmd.RequesterID)
		if err != nil {
			return err
		}
		if _, err := uc.gate.Check(txCtx, r.DossierID(), cmd.ActorID, "update_requester"); err != nil {
			return err
		}

		if err := r.UpdateIdentity(identity); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.requesterRepo.Update(txCtx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update requester", "requester_id", cmd.RequesterID, "error", err)
		return nil, err
	}

	uc.logger.Infow("requester updated successfully",
		"requester_id", updated.ID(),
		"is_complete", updated.IsComplete(),
	)
	return dto.ToRequesterDTO(updated), nil
}
