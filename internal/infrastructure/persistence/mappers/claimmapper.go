package mappers

import (
	"fmt"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	vo "github.com/geofoncier/geofoncier/internal/domain/claim/valueobjects"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/mapper"
)

// ClaimMapper handles the conversion between Claim domain entities and persistence models.
type ClaimMapper interface {
	ToModel(c *claim.Claim) *models.ClaimModel
	ToDomain(model *models.ClaimModel) (*claim.Claim, error)
	ToDomainList(ms []models.ClaimModel) ([]*claim.Claim, error)
}

type ClaimMapperImpl struct{}

func NewClaimMapper() ClaimMapper {
	return &ClaimMapperImpl{}
}

// ToModel converts a claim to its row. ActiveRank is derived here so the
// unique index always agrees with the status column.
func (m *ClaimMapperImpl) ToModel(c *claim.Claim) *models.ClaimModel {
	model := &models.ClaimModel{
		ID:          c.ID(),
		PropertyID:  c.PropertyID(),
		RequesterID: c.RequesterID(),
		ClaimRank:   c.Rank(),
		Status:      c.Status().String(),
		IsConsort:   c.IsConsort(),
		TotalPrice:  c.TotalPrice(),
		ClaimDate:   biztime.FormatDate(c.ClaimDate()),
		CreatedAt:   c.CreatedAt().UnixMilli(),
		UpdatedAt:   c.UpdatedAt().UnixMilli(),
	}

	if c.IsActive() {
		rank := c.Rank()
		model.ActiveRank = &rank
	}

	if rec := c.Archive(); rec != nil {
		model.ArchiveReason = stringPtr(rec.Reason())
		at := rec.ArchivedAt()
		model.ArchivedAt = timeToMillisPtr(&at)
		if by := rec.ArchivedBy(); by != 0 {
			model.ArchivedBy = &by
		}
	}

	return model
}

func (m *ClaimMapperImpl) ToDomain(model *models.ClaimModel) (*claim.Claim, error) {
	status, err := vo.NewClaimStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("claim %d: %w", model.ID, err)
	}

	claimDate, err := biztime.ParseDate(model.ClaimDate)
	if err != nil {
		return nil, fmt.Errorf("claim %d: %w", model.ID, err)
	}

	var archive *vo.ArchiveRecord
	if status.IsArchived() {
		reason := ""
		if model.ArchiveReason != nil {
			reason = *model.ArchiveReason
		}
		var by uint
		if model.ArchivedBy != nil {
			by = *model.ArchivedBy
		}
		var at int64
		if model.ArchivedAt != nil {
			at = *model.ArchivedAt
		}
		rec := vo.NewArchiveRecord(reason, by, millisToTime(at))
		archive = &rec
	}

	return claim.ReconstructClaim(
		model.ID,
		model.PropertyID,
		model.RequesterID,
		model.ClaimRank,
		status,
		model.TotalPrice,
		archive,
		claimDate,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *ClaimMapperImpl) ToDomainList(ms []models.ClaimModel) ([]*claim.Claim, error) {
	return mapper.MapSliceWithID(ms, m.ToDomain, func(model *models.ClaimModel) uint { return model.ID })
}
