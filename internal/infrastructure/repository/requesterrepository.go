package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/mappers"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	db "github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
)

type RequesterRepository struct {
	db     *gorm.DB
	mapper mappers.RequesterMapper
}

var _ requester.Repository = (*RequesterRepository)(nil)

func NewRequesterRepository(db *gorm.DB) *RequesterRepository {
	return &RequesterRepository{
		db:     db,
		mapper: mappers.NewRequesterMapper(),
	}
}

func (r *RequesterRepository) Create(ctx context.Context, req *requester.Requester) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save requester: %w", err)
	}

	return req.SetID(model.ID)
}

func (r *RequesterRepository) Update(ctx context.Context, req *requester.Requester) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.RequesterModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"last_name":   model.LastName,
			"first_name":  model.FirstName,
			"national_id": model.NationalID,
			"birth_date":  model.BirthDate,
			"birth_place": model.BirthPlace,
			"is_complete": model.IsComplete,
		}).Error; err != nil {
		return fmt.Errorf("failed to update requester: %w", err)
	}

	return nil
}

func (r *RequesterRepository) GetByID(ctx context.Context, requesterID uint) (*requester.Requester, error) {
	var model models.RequesterModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, requesterID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("requester %d not found", requesterID))
		}
		return nil, fmt.Errorf("failed to find requester: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
