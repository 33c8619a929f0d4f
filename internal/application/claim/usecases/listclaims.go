package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/application/claim/dto"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

type ListClaimsQuery struct {
	PropertyID uint
}

// ListClaimsUseCase returns the active claims of a property by rank,
// followed by its archived claims by frozen rank.
type ListClaimsUseCase struct {
	claimRepo    claim.Repository
	propertyRepo property.Repository
	logger       logger.Interface
}

func NewListClaimsUseCase(
	claimRepo claim.Repository,
	propertyRepo property.Repository,
	logger logger.Interface,
) *ListClaimsUseCase {
	return &ListClaimsUseCase{
		claimRepo:    claimRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

func (uc *ListClaimsUseCase) Execute(ctx context.Context, query ListClaimsQuery) ([]*dto.ClaimDTO, error) {
	if _, err := uc.propertyRepo.GetByID(ctx, query.PropertyID); err != nil {
		return nil, err
	}

	claims, err := uc.claimRepo.ListByProperty(ctx, query.PropertyID)
	if err != nil {
		uc.logger.Errorw("failed to list claims", "property_id", query.PropertyID, "error", err)
		return nil, err
	}

	return dto.ToClaimDTOs(claims), nil
}
