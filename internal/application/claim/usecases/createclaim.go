package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/geofoncier/geofoncier/internal/application/claim/dto"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/validation"
)

const defaultRankRetryAttempts = 3

type CreateClaimCommand struct {
	PropertyID  uint `json:"property_id" validate:"required"`
	RequesterID uint `json:"requester_id" validate:"required"`
	ActorID     uint `json:"actor_id"`
	// Rank inserts the claim at an explicit rank in 1..N+1, shifting the
	// claims at or after it. Nil appends after the last active claim.
	Rank       *int   `json:"rank" validate:"omitempty,gte=1"`
	TotalPrice int64  `json:"total_price" validate:"gte=0"`
	ClaimDate  string `json:"claim_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateClaimUseCase struct {
	ledger
	requesterRepo requester.Repository
	maxAttempts   int
}

func NewCreateClaimUseCase(deps LedgerDeps, requesterRepo requester.Repository, maxAttempts int) *CreateClaimUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultRankRetryAttempts
	}
	return &CreateClaimUseCase{
		ledger:        newLedger(deps),
		requesterRepo: requesterRepo,
		maxAttempts:   maxAttempts,
	}
}

func (uc *CreateClaimUseCase) Execute(ctx context.Context, cmd CreateClaimCommand) (*dto.ClaimDTO, error) {
	c, err := uc.execute(ctx, cmd)
	uc.observe(opCreateClaim, err == nil, err)
	if err != nil {
		return nil, err
	}
	return dto.ToClaimDTO(c), nil
}

func (uc *CreateClaimUseCase) execute(ctx context.Context, cmd CreateClaimCommand) (*claim.Claim, error) {
	if err := validation.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	claimDate := biztime.Today()
	if cmd.ClaimDate != "" {
		d, err := biztime.ParseDate(cmd.ClaimDate)
		if err != nil {
			return nil, errors.NewValidationError("invalid claim date", err.Error())
		}
		claimDate = d
	}

	var (
		created *claim.Claim
		err     error
	)
	maxAttempts := uc.maxAttempts
	// Joined to a caller's transaction, a conflict goes back to the caller,
	// who retries the whole unit of work.
	if db.InTransaction(ctx) {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		created, err = uc.attempt(ctx, cmd, claimDate)
		if err == nil || !errors.IsRankConflictError(err) {
			break
		}
		uc.Metrics.RankConflict()
		uc.Logger.Warnw("rank conflict while creating claim, retrying",
			"property_id", cmd.PropertyID,
			"attempt", attempt,
			"max_attempts", maxAttempts,
		)
	}
	if err != nil {
		uc.Logger.Errorw("failed to create claim",
			"property_id", cmd.PropertyID,
			"requester_id", cmd.RequesterID,
			"error", err,
		)
		return nil, err
	}

	uc.afterCommit(ctx, cmd.PropertyID, audit.Event{
		ActorID:    cmd.ActorID,
		Action:     audit.ActionClaimCreated,
		EntityType: audit.EntityClaim,
		EntityID:   created.ID(),
		Metadata: audit.Metadata{
			PropertyID: created.PropertyID(),
			ToRank:     created.Rank(),
		},
		OccurredAt: created.CreatedAt(),
	})

	uc.Logger.Infow("claim created successfully",
		"claim_id", created.ID(),
		"property_id", created.PropertyID(),
		"requester_id", created.RequesterID(),
		"rank", created.Rank(),
	)

	return created, nil
}

func (uc *CreateClaimUseCase) attempt(ctx context.Context, cmd CreateClaimCommand, claimDate time.Time) (*claim.Claim, error) {
	var created *claim.Claim

	err := uc.TxMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.lockProperty(txCtx, cmd.PropertyID, cmd.ActorID, opCreateClaim)
		if err != nil {
			return err
		}

		req, err := uc.requesterRepo.GetByID(txCtx, cmd.RequesterID)
		if err != nil {
			return err
		}
		if req.DossierID() != p.DossierID() {
			return errors.NewValidationError(
				fmt.Sprintf("requester %d does not belong to dossier %d", req.ID(), p.DossierID()))
		}

		active, err := uc.ClaimRepo.ListActiveByProperty(txCtx, p.ID())
		if err != nil {
			return err
		}

		rank := claim.NextRank(active)
		if cmd.Rank != nil {
			moved, err := claim.MakeRoomAt(active, *cmd.Rank)
			if err != nil {
				return errors.NewValidationError("invalid rank", err.Error())
			}
			if err := uc.ClaimRepo.UpdateRanks(txCtx, moved); err != nil {
				return err
			}
			rank = *cmd.Rank
		}

		c, err := claim.NewClaim(p.ID(), req.ID(), rank, cmd.TotalPrice, claimDate)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ClaimRepo.Create(txCtx, c); err != nil {
			return err
		}

		if err := uc.verifyRanks(txCtx, p.ID()); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
