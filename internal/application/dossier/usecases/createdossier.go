package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/dossier/dto"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type CreateDossierCommand struct {
	Reference string `json:"reference" validate:"required,max=50"`
	Title     string `json:"title" validate:"max=200"`
}

type CreateDossierUseCase struct {
	dossierRepo dossier.Repository
	logger      logger.Interface
}

func NewCreateDossierUseCase(dossierRepo dossier.Repository, logger logger.Interface) *CreateDossierUseCase {
	return &CreateDossierUseCase{
		dossierRepo: dossierRepo,
		logger:      logger,
	}
}

func (uc *CreateDossierUseCase) Execute(ctx context.Context, cmd CreateDossierCommand) (*dto.DossierDTO, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	d, err := dossier.NewDossier(cmd.Reference, cmd.Title)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.dossierRepo.Create(ctx, d); err != nil {
		uc.logger.Errorw("failed to create dossier", "reference", cmd.Reference, "error", err)
		return nil, err
	}

	uc.logger.Infow("dossier created successfully", "dossier_id", d.ID(), "reference", d.Reference())
	return dto.ToDossierDTO(d), nil
}
