package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/activity/dto"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type ListActivityQuery struct {
	EntityType string `json:"entity_type" validate:"required,oneof=dossier claim property"`
	EntityID   uint   `json:"entity_id" validate:"required"`
}

// ListActivityUseCase returns the activity log of a dossier, claim or
// property. History outlives its entity, so a deleted property still lists
// its events. Without a reader the log is empty.
type ListActivityUseCase struct {
	reader audit.Reader
	logger logger.Interface
}

func NewListActivityUseCase(reader audit.Reader, logger logger.Interface) *ListActivityUseCase {
	return &ListActivityUseCase{
		reader: reader,
		logger: logger,
	}
}

func (uc *ListActivityUseCase) Execute(ctx context.Context, query ListActivityQuery) ([]*dto.ActivityDTO, error) {
	if err := validation.ValidateStruct(query); err != nil {
		return nil, err
	}
	if uc.reader == nil {
		return []*dto.ActivityDTO{}, nil
	}

	events, err := uc.reader.ListForEntity(ctx, audit.EntityType(query.EntityType), query.EntityID)
	if err != nil {
		uc.logger.Errorw("failed to list activity",
			"entity_type", query.EntityType,
			"entity_id", query.EntityID,
			"error", err,
		)
		return nil, err
	}
	return dto.ToActivityDTOs(events), nil
}
