package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type RemoveClaimCommand struct {
	ClaimID uint `json:"claim_id" validate:"required"`
	ActorID uint `json:"actor_id"`
}

// RemoveClaimUseCase hard-deletes a claim. Removing an active claim
// renumbers the remaining active claims of the property to 1..N.
type RemoveClaimUseCase struct {
	ledger
}

func NewRemoveClaimUseCase(deps LedgerDeps) *RemoveClaimUseCase {
	return &RemoveClaimUseCase{ledger: newLedger(deps)}
}

func (uc *RemoveClaimUseCase) Execute(ctx context.Context, cmd RemoveClaimCommand) error {
	err := uc.execute(ctx, cmd)
	uc.observe(opRemoveClaim, true, err)
	return err
}

func (uc *RemoveClaimUseCase) execute(ctx context.Context, cmd RemoveClaimCommand) error {
	if err := validation.ValidateStruct(cmd); err != nil {
		return err
	}

	var (
		propertyID  uint
		removedRank int
		renumbered  int
	)
	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := uc.lockClaim(txCtx, cmd.ClaimID, cmd.ActorID, opRemoveClaim)
		if err != nil {
			return err
		}
		propertyID = c.PropertyID()
		removedRank = c.Rank()

		if err := uc.ClaimRepo.Delete(txCtx, c.ID()); err != nil {
			return err
		}

		if c.IsActive() {
			changed, err := uc.compact(txCtx, propertyID)
			if err != nil {
				return err
			}
			renumbered = len(changed)
		}

		return uc.verifyRanks(txCtx, propertyID)
	})
	if err != nil {
		uc.Logger.Errorw("failed to remove claim", "claim_id", cmd.ClaimID, "error", err)
		return err
	}

	uc.afterCommit(ctx, propertyID, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionClaimRemoved,
		EntityType: audit.EntityClaim,
		EntityID:   cmd.ClaimID,
		Metadata: audit.Metadata{
			PropertyID: propertyID,
			FromRank:   removedRank,
		},
	})

	uc.Logger.Infow("claim removed successfully",
		"claim_id", cmd.ClaimID,
		"property_id", propertyID,
		"renumbered", renumbered,
	)
	return nil
}
