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

type CreateRequesterCommand struct {
	DossierID uint `json:"dossier_id" validate:"required"`
	ActorID   uint `json:"actor_id"`
	Identity  IdentityInput
}

type CreateRequesterUseCase struct {
	requesterRepo requester.Repository
	gate          *gate.Gate
	txMgr         db.Transactor
	logger        logger.Interface
}

func NewCreateRequesterUseCase(
	requesterRepo requester.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateRequesterUseCase {
	return &CreateRequesterUseCase{
		requesterRepo: requesterRepo,
		gate:          g,
		txMgr:         txMgr,
		logger:        logger,
	}
}

func (uc *CreateRequesterUseCase) Execute(ctx context.Context, cmd CreateRequesterCommand) (*dto.RequesterDTO, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	identity, err := cmd.Identity.toIdentity()
	if err != nil {
		return nil, err
	}

	var created *requester.Requester
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.gate.Check(txCtx, cmd.DossierID, cmd.ActorID, "create_requester"); err != nil {
			return err
		}

		r, err := requester.NewRequester(cmd.DossierID, identity)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.requesterRepo.Create(txCtx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create requester", "dossier_id", cmd.DossierID, "error", err)
		return nil, err
	}

	uc.logger.Infow("requester created successfully",
		"requester_id", created.ID(),
		"dossier_id", created.DossierID(),
		"is_complete", created.IsComplete(),
	)
	return dto.ToRequesterDTO(created), nil
}
