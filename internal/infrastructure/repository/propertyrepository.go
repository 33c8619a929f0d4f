package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/mappers"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	db "github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/mapper"
)

type PropertyRepository struct {
	db     *gorm.DB
	mapper mappers.PropertyMapper
}

var _ property.Repository = (*PropertyRepository)(nil)

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{
		db:     db,
		mapper: mappers.NewPropertyMapper(),
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.PropertyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"lot":          model.Lot,
			"title_number": model.TitleNumber,
			"area":         model.Area,
			"nature":       model.Nature,
			"vocation":     model.Vocation,
		}).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, propertyID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.PropertyModel{}, propertyID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("property %d not found", propertyID))
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, propertyID uint) (*property.Property, error) {
	return r.find(db.GetTxFromContext(ctx, r.db), propertyID)
}

func (r *PropertyRepository) GetByIDForUpdate(ctx context.Context, propertyID uint) (*property.Property, error) {
	return r.find(withLock(db.GetTxFromContext(ctx, r.db), clauseStrengthUpdate), propertyID)
}

func (r *PropertyRepository) find(tx *gorm.DB, propertyID uint) (*property.Property, error) {
	var model models.PropertyModel
	if err := tx.First(&model, propertyID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("property %d not found", propertyID))
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *PropertyRepository) ListByDossier(ctx context.Context, dossierID uint) ([]*property.Property, error) {
	var ms []models.PropertyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("dossier_id = ?", dossierID).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return mapper.MapSliceWithID(ms, r.mapper.ToDomain, func(m *models.PropertyModel) uint { return m.ID })
}
