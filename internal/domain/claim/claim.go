package claim

import (
	"fmt"
	"time"

	vo "github.com/geofoncier/geofoncier/internal/domain/claim/valueobjects"
)

// PrincipalRank is the rank held by the lead requester of a property.
const PrincipalRank = 1

// Claim links one requester to one property. Rank and status are only
// changed through the ledger; the consort flag is derived from rank.
type Claim struct {
	id          uint
	propertyID  uint
	requesterID uint
	rank        int
	status      vo.ClaimStatus
	totalPrice  int64
	archive     *vo.ArchiveRecord
	claimDate   time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewClaim(
	propertyID uint,
	requesterID uint,
	rank int,
	totalPrice int64,
	claimDate time.Time,
) (*Claim, error) {
	if propertyID == 0 {
		return nil, fmt.Errorf("property ID is required")
	}
	if requesterID == 0 {
		return nil, fmt.Errorf("requester ID is required")
	}
	if rank < PrincipalRank {
		return nil, fmt.Errorf("rank must be at least %d, got %d", PrincipalRank, rank)
	}
	if totalPrice < 0 {
		return nil, fmt.Errorf("total price cannot be negative")
	}
	if claimDate.IsZero() {
		return nil, fmt.Errorf("claim date is required")
	}

	now := time.Now().UTC()
	return &Claim{
		propertyID:  propertyID,
		requesterID: requesterID,
		rank:        rank,
		status:      vo.StatusActive,
		totalPrice:  totalPrice,
		claimDate:   claimDate,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructClaim(
	id uint,
	propertyID uint,
	requesterID uint,
	rank int,
	status vo.ClaimStatus,
	totalPrice int64,
	archive *vo.ArchiveRecord,
	claimDate time.Time,
	createdAt, updatedAt time.Time,
) (*Claim, error) {
	if id == 0 {
		return nil, fmt.Errorf("claim ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid claim status: %s", status)
	}
	if rank < PrincipalRank {
		return nil, fmt.Errorf("claim %d has invalid rank %d", id, rank)
	}
	if status.IsActive() {
		archive = nil
	}

	return &Claim{
		id:          id,
		propertyID:  propertyID,
		requesterID: requesterID,
		rank:        rank,
		status:      status,
		totalPrice:  totalPrice,
		archive:     archive,
		claimDate:   claimDate,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Claim) ID() uint {
	return c.id
}

func (c *Claim) PropertyID() uint {
	return c.propertyID
}

func (c *Claim) RequesterID() uint {
	return c.requesterID
}

func (c *Claim) Rank() int {
	return c.rank
}

func (c *Claim) Status() vo.ClaimStatus {
	return c.status
}

func (c *Claim) TotalPrice() int64 {
	return c.totalPrice
}

// Archive returns the archive record, nil while the claim is active.
func (c *Claim) Archive() *vo.ArchiveRecord {
	if c.archive == nil {
		return nil
	}
	r := *c.archive
	return &r
}

func (c *Claim) ArchiveReason() string {
	if c.archive == nil {
		return ""
	}
	return c.archive.Reason()
}

func (c *Claim) ClaimDate() time.Time {
	return c.claimDate
}

func (c *Claim) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Claim) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsConsort reports whether the claim is a co-requester (rank > 1).
func (c *Claim) IsConsort() bool {
	return c.rank > PrincipalRank
}

func (c *Claim) IsPrincipal() bool {
	return c.rank == PrincipalRank
}

func (c *Claim) IsActive() bool {
	return c.status.IsActive()
}

func (c *Claim) IsArchived() bool {
	return c.status.IsArchived()
}

func (c *Claim) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("claim ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("claim ID cannot be zero")
	}
	c.id = id
	return nil
}

// MarkArchived freezes the claim at its current rank. Returns false when
// the claim is already archived.
func (c *Claim) MarkArchived(reason string, archivedBy uint, at time.Time) bool {
	if c.status.IsArchived() {
		return false
	}
	record := vo.NewArchiveRecord(reason, archivedBy, at)
	c.status = vo.StatusArchived
	c.archive = &record
	c.updatedAt = at
	return true
}

// MarkActive re-activates an archived claim at rank. Returns false when the
// claim is already active.
func (c *Claim) MarkActive(rank int, at time.Time) (bool, error) {
	if c.status.IsActive() {
		return false, nil
	}
	if rank < PrincipalRank {
		return false, fmt.Errorf("rank must be at least %d, got %d", PrincipalRank, rank)
	}
	c.status = vo.StatusActive
	c.archive = nil
	c.rank = rank
	c.updatedAt = at
	return true, nil
}

// AssignRank moves an active claim to rank. Archived claims keep the rank
// they held when archived.
func (c *Claim) AssignRank(rank int) error {
	if c.status.IsArchived() {
		return fmt.Errorf("claim %d is archived, its rank is frozen", c.id)
	}
	if rank < PrincipalRank {
		return fmt.Errorf("rank must be at least %d, got %d", PrincipalRank, rank)
	}
	if c.rank == rank {
		return nil
	}
	c.rank = rank
	c.updatedAt = time.Now().UTC()
	return nil
}
