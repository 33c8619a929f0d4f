package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/mappers"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	db "github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
)

type DossierRepository struct {
	db     *gorm.DB
	mapper mappers.DossierMapper
}

var _ dossier.Repository = (*DossierRepository)(nil)

func NewDossierRepository(db *gorm.DB) *DossierRepository {
	return &DossierRepository{
		db:     db,
		mapper: mappers.NewDossierMapper(),
	}
}

func (r *DossierRepository) Create(ctx context.Context, d *dossier.Dossier) error {
	model := r.mapper.ToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError(fmt.Sprintf("dossier reference %q already exists", d.Reference()))
		}
		return fmt.Errorf("failed to save dossier: %w", err)
	}

	return d.SetID(model.ID)
}

// Update persists the title and closure columns.
func (r *DossierRepository) Update(ctx context.Context, d *dossier.Dossier) error {
	model := r.mapper.ToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.DossierModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":          model.Title,
			"is_closed":      model.IsClosed,
			"closed_at":      model.ClosedAt,
			"closed_by":      model.ClosedBy,
			"closure_reason": model.ClosureReason,
		}).Error; err != nil {
		return fmt.Errorf("failed to update dossier: %w", err)
	}

	return nil
}

func (r *DossierRepository) GetByID(ctx context.Context, dossierID uint) (*dossier.Dossier, error) {
	return r.find(db.GetTxFromContext(ctx, r.db), dossierID)
}

func (r *DossierRepository) GetByIDForUpdate(ctx context.Context, dossierID uint) (*dossier.Dossier, error) {
	return r.find(withLock(db.GetTxFromContext(ctx, r.db), clauseStrengthUpdate), dossierID)
}

func (r *DossierRepository) GetByIDForShare(ctx context.Context, dossierID uint) (*dossier.Dossier, error) {
	return r.find(withLock(db.GetTxFromContext(ctx, r.db), clauseStrengthShare), dossierID)
}

func (r *DossierRepository) find(tx *gorm.DB, dossierID uint) (*dossier.Dossier, error) {
	var model models.DossierModel
	if err := tx.First(&model, dossierID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("dossier %d not found", dossierID))
		}
		return nil, fmt.Errorf("failed to find dossier: %w", err)
	}
	return r.mapper.ToDomain(&model)
}
