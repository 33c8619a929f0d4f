package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/dossier/dto"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

type GetDossierQuery struct {
	DossierID uint
}

type GetDossierUseCase struct {
	dossierRepo dossier.Repository
	logger      logger.Interface
}

func NewGetDossierUseCase(dossierRepo dossier.Repository, logger logger.Interface) *GetDossierUseCase {
	return &GetDossierUseCase{
		dossierRepo: dossierRepo,
		logger:      logger,
	}
}

func (uc *GetDossierUseCase) Execute(ctx context.Context, query GetDossierQuery) (*dto.DossierDTO, error) {
	d, err := uc.dossierRepo.GetByID(ctx, query.DossierID)
	if err != nil {
		uc.logger.Warnw("failed to get dossier", "dossier_id", query.DossierID, "error", err)
		return nil, err
	}
	return dto.ToDossierDTO(d), nil
}
