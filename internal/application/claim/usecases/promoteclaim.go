package usecases

import (
	"context"
	"fmt"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type PromoteClaimCommand struct {
	ClaimID uint `json:"claim_id" validate:"required"`
	ActorID uint `json:"actor_id"`
}

// PromoteClaimUseCase makes a consort the principal claim of its property.
// The previous principal takes the promoted claim's old rank; both rows are
// written in one transaction.
type PromoteClaimUseCase struct {
	ledger
}

func NewPromoteClaimUseCase(deps LedgerDeps) *PromoteClaimUseCase {
	return &PromoteClaimUseCase{ledger: newLedger(deps)}
}

// Execute returns false when the claim already is the principal.
func (uc *PromoteClaimUseCase) Execute(ctx context.Context, cmd PromoteClaimCommand) (bool, error) {
	promoted, err := uc.execute(ctx, cmd)
	uc.observe(opPromoteClaim, promoted, err)
	return promoted, err
}

func (uc *PromoteClaimUseCase) execute(ctx context.Context, cmd PromoteClaimCommand) (bool, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return false, err
	}

	var (
		promoted    bool
		propertyID  uint
		oldRank     int
		displacedID uint
	)
	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := uc.lockClaim(txCtx, cmd.ClaimID, cmd.ActorID, opPromoteClaim)
		if err != nil {
			return err
		}
		propertyID = c.PropertyID()

		if c.IsArchived() {
			return errors.NewValidationError(fmt.Sprintf("claim %d is archived and cannot be promoted", c.ID()))
		}
		if c.IsPrincipal() {
			return nil
		}
		oldRank = c.Rank()

		principal, err := uc.ClaimRepo.FindPrincipal(txCtx, propertyID)
		if err != nil {
			return err
		}

		changed, err := claim.Promote(c, principal)
		if err != nil {
			return err
		}
		if err := uc.ClaimRepo.UpdateRanks(txCtx, changed); err != nil {
			return err
		}
		if err := uc.verifyRanks(txCtx, propertyID); err != nil {
			return err
		}

		if principal != nil {
			displacedID = principal.ID()
		}
		promoted = true
		return nil
	})
	if err != nil {
		uc.Logger.Errorw("failed to promote claim", "claim_id", cmd.ClaimID, "error", err)
		return false, err
	}

	if !promoted {
		uc.Logger.Debugw("claim already principal", "claim_id", cmd.ClaimID)
		return false, nil
	}

	uc.afterCommit(ctx, propertyID, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionClaimPromoted,
		EntityType: audit.EntityClaim,
		EntityID:   cmd.ClaimID,
		Metadata: audit.Metadata{
			PropertyID:       propertyID,
			FromRank:         oldRank,
			ToRank:           claim.PrincipalRank,
			DisplacedClaimID: displacedID,
		},
	})

	uc.Logger.Infow("claim promoted to principal",
		"claim_id", cmd.ClaimID,
		"property_id", propertyID,
		"from_rank", oldRank,
		"displaced_claim_id", displacedID,
	)
	return true, nil
}
