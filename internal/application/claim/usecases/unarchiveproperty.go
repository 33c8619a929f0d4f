package usecases

import (
	"context"
	"fmt"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type UnarchivePropertyCommand struct {
	PropertyID uint `json:"property_id" validate:"required"`
	ActorID    uint `json:"actor_id"`
}

// UnarchivePropertyUseCase re-activates every archived claim of an acquired
// property. Claims are ranked 1..N in the order of the ranks they were
// archived at.
type UnarchivePropertyUseCase struct {
	ledger
}

func NewUnarchivePropertyUseCase(deps LedgerDeps) *UnarchivePropertyUseCase {
	return &UnarchivePropertyUseCase{ledger: newLedger(deps)}
}

// Execute returns the number of claims re-activated. Zero means the
// property had no archived claim.
func (uc *UnarchivePropertyUseCase) Execute(ctx context.Context, cmd UnarchivePropertyCommand) (int, error) {
	n, err := uc.execute(ctx, cmd)
	uc.observe(opUnarchiveProperty, n > 0, err)
	return n, err
}

type rankMove struct {
	claimID  uint
	fromRank int
	toRank   int
}

func (uc *UnarchivePropertyUseCase) execute(ctx context.Context, cmd UnarchivePropertyCommand) (int, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return 0, err
	}

	var moves []rankMove
	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.lockProperty(txCtx, cmd.PropertyID, cmd.ActorID, opUnarchiveProperty); err != nil {
			return err
		}

		archived, err := uc.ClaimRepo.ListArchivedByProperty(txCtx, cmd.PropertyID)
		if err != nil {
			return err
		}
		if len(archived) == 0 {
			return nil
		}

		active, err := uc.ClaimRepo.ListActiveByProperty(txCtx, cmd.PropertyID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return errors.NewValidationError(
				fmt.Sprintf("property %d still has active claims and is not acquired", cmd.PropertyID))
		}

		claim.SortByRank(archived)
		at := biztime.NowUTC()
		for i, c := range archived {
			from := c.Rank()
			if _, err := c.MarkActive(i+claim.PrincipalRank, at); err != nil {
				return err
			}
			moves = append(moves, rankMove{claimID: c.ID(), fromRank: from, toRank: c.Rank()})
		}
		if err := uc.ClaimRepo.UpdateRanks(txCtx, archived); err != nil {
			return err
		}

		return uc.verifyRanks(txCtx, cmd.PropertyID)
	})
	if err != nil {
		uc.Logger.Errorw("failed to unarchive property claims", "property_id", cmd.PropertyID, "error", err)
		return 0, err
	}

	if len(moves) == 0 {
		uc.Logger.Debugw("property has no archived claim to restore", "property_id", cmd.PropertyID)
		return 0, nil
	}

	events := make([]audit.Event, 0, len(moves))
	for _, m := range moves {
		events = append(events, audit.Event{
			ActorID:    cmd.ActorID,
			Action:     audit.ActionClaimUnarchived,
			EntityType: audit.EntityClaim,
			EntityID:   m.claimID,
			Metadata: audit.Metadata{
				PropertyID: cmd.PropertyID,
				FromRank:   m.fromRank,
				ToRank:     m.toRank,
			},
		})
	}
	uc.afterCommit(ctx, cmd.PropertyID, events...)

	uc.Logger.Infow("property claims unarchived",
		"property_id", cmd.PropertyID,
		"count", len(moves),
	)
	return len(moves), nil
}
