package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type ArchiveClaimCommand struct {
	ClaimID uint   `json:"claim_id" validate:"required"`
	ActorID uint   `json:"actor_id"`
	Reason  string `json:"reason" validate:"max=500"`
}

// ArchiveClaimUseCase archives one claim. The rank freeze applies to the
// archived claim only: it keeps the rank it held, while the claims still
// active behind it move up so active ranks stay 1..N.
type ArchiveClaimUseCase struct {
	ledger
}

func NewArchiveClaimUseCase(deps LedgerDeps) *ArchiveClaimUseCase {
	return &ArchiveClaimUseCase{ledger: newLedger(deps)}
}

// Execute returns false when the claim was already archived.
func (uc *ArchiveClaimUseCase) Execute(ctx context.Context, cmd ArchiveClaimCommand) (bool, error) {
	archived, err := uc.execute(ctx, cmd)
	uc.observe(opArchiveClaim, archived, err)
	return archived, err
}

func (uc *ArchiveClaimUseCase) execute(ctx context.Context, cmd ArchiveClaimCommand) (bool, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return false, err
	}

	var (
		archived   bool
		propertyID uint
		frozenRank int
	)
	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := uc.lockClaim(txCtx, cmd.ClaimID, cmd.ActorID, opArchiveClaim)
		if err != nil {
			return err
		}
		propertyID = c.PropertyID()

		if !c.MarkArchived(cmd.Reason, cmd.ActorID, biztime.NowUTC()) {
			return nil
		}
		if err := uc.ClaimRepo.Update(txCtx, c); err != nil {
			return err
		}
		if _, err := uc.compact(txCtx, propertyID); err != nil {
			return err
		}
		if err := uc.verifyRanks(txCtx, propertyID); err != nil {
			return err
		}

		archived = true
		frozenRank = c.Rank()
		return nil
	})
	if err != nil {
		uc.Logger.Errorw("failed to archive claim", "claim_id", cmd.ClaimID, "error", err)
		return false, err
	}

	if !archived {
		uc.Logger.Debugw("claim already archived", "claim_id", cmd.ClaimID)
		return false, nil
	}

	uc.afterCommit(ctx, propertyID, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionClaimArchived,
		EntityType: audit.EntityClaim,
		EntityID:   cmd.ClaimID,
		Metadata: audit.Metadata{
			Reason:     cmd.Reason,
			PropertyID: propertyID,
			FromRank:   frozenRank,
		},
	})

	uc.Logger.Infow("claim archived successfully",
		"claim_id", cmd.ClaimID,
		"property_id", propertyID,
		"rank", frozenRank,
	)
	return true, nil
}
