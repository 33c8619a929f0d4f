package usecases

import (
	"context"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

type ArchivePropertyCommand struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	ActorID    uint   `json:"actor_id"`
	Reason     string `json:"reason" validate:"max=500"`
}

// ArchivePropertyUseCase archives every active claim of a property at once,
// moving it to the acquired status. Each claim keeps its rank.
type ArchivePropertyUseCase struct {
	ledger
}

func NewArchivePropertyUseCase(deps LedgerDeps) *ArchivePropertyUseCase {
	return &ArchivePropertyUseCase{ledger: newLedger(deps)}
}

// Execute returns the number of claims archived. Zero means the property
// had no active claim.
func (uc *ArchivePropertyUseCase) Execute(ctx context.Context, cmd ArchivePropertyCommand) (int, error) {
	n, err := uc.execute(ctx, cmd)
	uc.observe(opArchiveProperty, n > 0, err)
	return n, err
}

func (uc *ArchivePropertyUseCase) execute(ctx context.Context, cmd ArchivePropertyCommand) (int, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return 0, err
	}

	var archived []*claim.Claim
	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.lockProperty(txCtx, cmd.PropertyID, cmd.ActorID, opArchiveProperty); err != nil {
			return err
		}

		active, err := uc.ClaimRepo.ListActiveByProperty(txCtx, cmd.PropertyID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return nil
		}

		at := biztime.NowUTC()
		for _, c := range active {
			c.MarkArchived(cmd.Reason, cmd.ActorID, at)
		}
		if err := uc.ClaimRepo.UpdateRanks(txCtx, active); err != nil {
			return err
		}

		archived = active
		return nil
	})
	if err != nil {
		uc.Logger.Errorw("failed to archive property claims", "property_id", cmd.PropertyID, "error", err)
		return 0, err
	}

	if len(archived) == 0 {
		uc.Logger.Debugw("property has no active claim to archive", "property_id", cmd.PropertyID)
		return 0, nil
	}

	events := make([]audit.Event, 0, len(archived))
	for _, c := range archived {
		events = append(events, audit.Event{
			ActorID:    cmd.ActorID,
			Action:     audit.ActionClaimArchived,
			EntityType: audit.EntityClaim,
			EntityID:   c.ID(),
			Metadata: audit.Metadata{
				Reason:     cmd.Reason,
				PropertyID: cmd.PropertyID,
				FromRank:   c.Rank(),
			},
		})
	}
	uc.afterCommit(ctx, cmd.PropertyID, events...)

	uc.Logger.Infow("property claims archived",
		"property_id", cmd.PropertyID,
		"count", len(archived),
	)
	return len(archived), nil
}
