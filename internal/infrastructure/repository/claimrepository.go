package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	vo "github.com/geofoncier/geofoncier/internal/domain/claim/valueobjects"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/mappers"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	db "github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

type ClaimRepository struct {
	db     *gorm.DB
	mapper mappers.ClaimMapper
	logger logger.Interface
}

var _ claim.Repository = (*ClaimRepository)(nil)

func NewClaimRepository(db *gorm.DB, logger logger.Interface) *ClaimRepository {
	return &ClaimRepository{
		db:     db,
		mapper: mappers.NewClaimMapper(),
		logger: logger,
	}
}

func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewRankConflictError(c.PropertyID(), fmt.Sprintf("rank %d already held", c.Rank()))
		}
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *ClaimRepository) Update(ctx context.Context, c *claim.Claim) error {
	return r.write(db.GetTxFromContext(ctx, r.db), c)
}

// UpdateRanks writes several claims of one property. Their active ranks are
// cleared first so an exchange of ranks never collides with itself.
func (r *ClaimRepository) UpdateRanks(ctx context.Context, claims []*claim.Claim) error {
	if len(claims) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(claims))
	for _, c := range claims {
		ids = append(ids, c.ID())
	}

	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ClaimModel{}).
			Where("id IN ?", ids).
			Update("active_rank", nil).Error; err != nil {
			return fmt.Errorf("failed to release active ranks: %w", err)
		}
		for _, c := range claims {
			if err := r.write(tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClaimRepository) write(tx *gorm.DB, c *claim.Claim) error {
	model := r.mapper.ToModel(c)

	result := tx.Model(&models.ClaimModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"claim_rank":     model.ClaimRank,
			"active_rank":    model.ActiveRank,
			"status":         model.Status,
			"is_consort":     model.IsConsort,
			"total_price":    model.TotalPrice,
			"archive_reason": model.ArchiveReason,
			"archived_at":    model.ArchivedAt,
			"archived_by":    model.ArchivedBy,
			"claim_date":     model.ClaimDate,
		})

	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewRankConflictError(c.PropertyID(), fmt.Sprintf("rank %d already held", c.Rank()))
		}
		return fmt.Errorf("failed to update claim: %w", result.Error)
	}

	// Note: RowsAffected may be 0 on MySQL when the row is unchanged; the
	// ledger loads every claim it writes, so existence is already known.

	return nil
}

func (r *ClaimRepository) Delete(ctx context.Context, claimID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ClaimModel{}, claimID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete claim: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("claim %d not found", claimID))
	}
	return nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, claimID uint) (*claim.Claim, error) {
	var model models.ClaimModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, claimID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("claim %d not found", claimID))
		}
		return nil, fmt.Errorf("failed to find claim: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// ListByProperty returns active claims by rank followed by archived claims by rank.
func (r *ClaimRepository) ListByProperty(ctx context.Context, propertyID uint) ([]*claim.Claim, error) {
	active, err := r.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	archived, err := r.ListArchivedByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return append(active, archived...), nil
}

func (r *ClaimRepository) ListActiveByProperty(ctx context.Context, propertyID uint) ([]*claim.Claim, error) {
	return r.listByStatus(ctx, propertyID, vo.StatusActive)
}

func (r *ClaimRepository) ListArchivedByProperty(ctx context.Context, propertyID uint) ([]*claim.Claim, error) {
	return r.listByStatus(ctx, propertyID, vo.StatusArchived)
}

func (r *ClaimRepository) listByStatus(ctx context.Context, propertyID uint, status vo.ClaimStatus) ([]*claim.Claim, error) {
	var ms []models.ClaimModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("property_id = ? AND status = ?", propertyID, status.String()).
		Order("claim_rank ASC").
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s claims: %w", status, err)
	}

	return r.mapper.ToDomainList(ms)
}

// FindPrincipal returns the active rank-1 claim of a property, or nil.
func (r *ClaimRepository) FindPrincipal(ctx context.Context, propertyID uint) (*claim.Claim, error) {
	var ms []models.ClaimModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("property_id = ? AND status = ? AND claim_rank = ?", propertyID, vo.StatusActive.String(), claim.PrincipalRank).
		Limit(1).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to find principal claim: %w", err)
	}
	if len(ms) == 0 {
		return nil, nil
	}

	return r.mapper.ToDomain(&ms[0])
}

func (r *ClaimRepository) CountByStatus(ctx context.Context, propertyID uint) (claim.Counts, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.ClaimModel{}).
		Select("status, COUNT(*) AS total").
		Where("property_id = ?", propertyID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return claim.Counts{}, fmt.Errorf("failed to count claims: %w", err)
	}

	var counts claim.Counts
	for _, row := range rows {
		switch vo.ClaimStatus(row.Status) {
		case vo.StatusActive:
			counts.Active = row.Total
		case vo.StatusArchived:
			counts.Archived = row.Total
		default:
			r.logger.Warnw("unknown claim status in store", "property_id", propertyID, "status", row.Status)
		}
	}
	return counts, nil
}
