package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type UnarchiveClaimCommand struct {
	ClaimID uint `json:"claim_id" validate:"required"`
	ActorID uint `json:"actor_id"`
}

// UnarchiveClaimUseCase re-activates an archived claim after the last
// active claim of its property. The rank it was archived at is not reused.
type UnarchiveClaimUseCase struct {
	ledger
}

func NewUnarchiveClaimUseCase(deps LedgerDeps) *UnarchiveClaimUseCase {
	return &UnarchiveClaimUseCase{ledger: newLedger(deps)}
}

// Execute returns false when the claim was already active.
func (uc *UnarchiveClaimUseCase) Execute(ctx context.Context, cmd UnarchiveClaimCommand) (bool, error) {
	restored, err := uc.execute(ctx, cmd)
	uc.observe(opUnarchiveClaim, restored, err)
	return restored, err
}

func (uc *UnarchiveClaimUseCase) execute(ctx context.Context, cmd UnarchiveClaimCommand) (bool, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return false, err
	}

	var (
		restored   bool
		propertyID uint
		fromRank   int
		toRank     int
	)
	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := uc.lockClaim(txCtx, cmd.ClaimID, cmd.ActorID, opUnarchiveClaim)
		if err != nil {
			return err
		}
		propertyID = c.PropertyID()
		if c.IsActive() {
			return nil
		}
		fromRank = c.Rank()

		active, err := uc.ClaimRepo.ListActiveByProperty(txCtx, propertyID)
		if err != nil {
			return err
		}
		if _, err := c.MarkActive(claim.NextRank(active), biztime.NowUTC()); err != nil {
			return err
		}
		if err := uc.ClaimRepo.Update(txCtx, c); err != nil {
			return err
		}
		if err := uc.verifyRanks(txCtx, propertyID); err != nil {
			return err
		}

		restored = true
		toRank = c.Rank()
		return nil
	})
	if err != nil {
		uc.Logger.Errorw("failed to unarchive claim", "claim_id", cmd.ClaimID, "error", err)
		return false, err
	}

	if !restored {
		uc.Logger.Debugw("claim already active", "claim_id", cmd.ClaimID)
		return false, nil
	}

	uc.afterCommit(ctx, propertyID, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionClaimUnarchived,
		EntityType: audit.EntityClaim,
		EntityID:   cmd.ClaimID,
		Metadata: audit.Metadata{
			PropertyID: propertyID,
			FromRank:   fromRank,
			ToRank:     toRank,
		},
	})

	uc.Logger.Infow("claim unarchived successfully",
		"claim_id", cmd.ClaimID,
		"property_id", propertyID,
		"rank", toRank,
	)
	return true, nil
}
