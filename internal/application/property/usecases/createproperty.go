package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	"github.com/geofoncier/geofoncier/internal/application/property/dto"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type CreatePropertyCommand struct {
	DossierID   uint    `json:"dossier_id" validate:"required"`
	ActorID     uint    `json:"actor_id"`
	Lot         string  `json:"lot" validate:"required,max=100"`
	TitleNumber *string `json:"title_number" validate:"omitempty,max=50"`
	Area        float64 `json:"area" validate:"gte=0"`
	Nature      string  `json:"nature" validate:"max=100"`
	Vocation    string  `json:"vocation" validate:"max=100"`
}

type CreatePropertyUseCase struct {
	propertyRepo property.Repository
	gate         *gate.Gate
	txMgr        db.Transactor
	logger       logger.Interface
}

func NewCreatePropertyUseCase(
	propertyRepo property.Repository,
	g *gate.Gate,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		propertyRepo: propertyRepo,
		gate:         g,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, cmd CreatePropertyCommand) (*dto.PropertyDTO, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	var created *property.Property
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.gate.Check(txCtx, cmd.DossierID, cmd.ActorID, "create_property"); err != nil {
			return err
		}

		p, err := property.NewProperty(cmd.DossierID, cmd.Lot, cmd.Area, cmd.Nature, cmd.Vocation)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if cmd.TitleNumber != nil {
			if err := p.ApplyDetails(property.Details{TitleNumber: cmd.TitleNumber}); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}

		if err := uc.propertyRepo.Create(txCtx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create property", "dossier_id", cmd.DossierID, "error", err)
		return nil, err
	}

	uc.logger.Infow("property created successfully",
		"property_id", created.ID(),
		"dossier_id", created.DossierID(),
		"lot", created.Lot(),
	)
	return dto.ToPropertyDTO(created), nil
}
