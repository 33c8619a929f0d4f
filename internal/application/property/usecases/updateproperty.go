package usecases

import (
	"context"
	"fmt"

	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	"github.com/geofoncier/geofoncier/internal/application/property/dto"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type UpdatePropertyCommand struct {
	PropertyID  uint     `json:"property_id" validate:"required"`
	ActorID     uint     `json:"actor_id"`
	Lot         *string  `json:"lot" validate:"omitempty,max=100"`
	TitleNumber *string  `json:"title_number" validate:"omitempty,max=50"`
	Area        *float64 `json:"area" validate:"omitempty,gte=0"`
	Nature      *string  `json:"nature" validate:"omitempty,max=100"`
	Vocation    *string  `json:"vocation" validate:"omitempty,max=100"`
}

// UpdatePropertyUseCase edits the descriptive fields of a property. The
// status is recomputed from the claims under the row lock rather than read
// from the cache, so an acquired property is never edited.
type UpdatePropertyUseCase struct {
	propertyRepo property.Repository
	calc         statusCalculator
	gate         *gate.Gate
	txMgr        db.Transactor
	recorder     audit.Recorder
	logger       logger.Interface
}

func NewUpdatePropertyUseCase(
	propertyRepo property.Repository,
	claimRepo claim.Repository,
	dossierRepo dossier.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	recorder audit.Recorder,
	logger logger.Interface,
) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{
		propertyRepo: propertyRepo,
		calc:         statusCalculator{claimRepo: claimRepo, dossierRepo: dossierRepo},
		gate:         g,
		txMgr:        txMgr,
		recorder:     recorder,
		logger:       logger,
	}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, cmd UpdatePropertyCommand) (*dto.PropertyDTO, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	var updated *property.Property
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.propertyRepo.GetByIDForUpdate(txCtx, cmd.PropertyID)
		if err != nil {
			return err
		}
		if _, err := uc.gate.Check(txCtx, p.DossierID(), cmd.ActorID, "update_property"); err != nil {
			return err
		}

		view, err := uc.calc.compute(txCtx, p)
		if err != nil {
			return err
		}
		if !view.CanModify {
			return errors.NewConflictError(
				fmt.Sprintf("property %d is %s and cannot be modified", p.ID(), view.Status))
		}

		if err := p.ApplyDetails(property.Details{
			Lot:         cmd.Lot,
			TitleNumber: cmd.TitleNumber,
			Area:        cmd.Area,
			Nature:      cmd.Nature,
			Vocation:    cmd.Vocation,
		}); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.propertyRepo.Update(txCtx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update property", "property_id", cmd.PropertyID, "error", err)
		return nil, err
	}

	if uc.recorder != nil {
		if err := uc.recorder.Record(ctx, audit.Event{
			ActorID:    cmd.ActorID,
			Action:     audit.ActionPropertyModified,
			EntityType: audit.EntityProperty,
			EntityID:   updated.ID(),
			Metadata:   audit.Metadata{DossierID: updated.DossierID()},
		}); err != nil {
			uc.logger.Warnw("failed to record activity", "property_id", updated.ID(), "error", err)
		}
	}

	uc.logger.Infow("property updated successfully", "property_id", updated.ID())
	return dto.ToPropertyDTO(updated), nil
}
