package dto

import (
	"time"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/mapper"
)

// ClaimDTO is the read shape of a claim returned by ledger use cases.
type ClaimDTO struct {
	ID            uint       `json:"id"`
	PropertyID    uint       `json:"property_id"`
	RequesterID   uint       `json:"requester_id"`
	Rank          int        `json:"rank"`
	IsConsort     bool       `json:"is_consort"`
	Status        string     `json:"status"`
	TotalPrice    int64      `json:"total_price"`
	ArchiveReason string     `json:"archive_reason,omitempty"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	ClaimDate     string     `json:"claim_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ToClaimDTO(c *claim.Claim) *ClaimDTO {
	if c == nil {
		return nil
	}

	out := &ClaimDTO{
		ID:            c.ID(),
		PropertyID:    c.PropertyID(),
		RequesterID:   c.RequesterID(),
		Rank:          c.Rank(),
		IsConsort:     c.IsConsort(),
		Status:        c.Status().String(),
		TotalPrice:    c.TotalPrice(),
		ArchiveReason: c.ArchiveReason(),
		ClaimDate:     biztime.FormatDate(c.ClaimDate()),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
	if rec := c.Archive(); rec != nil {
		at := rec.ArchivedAt()
		out.ArchivedAt = &at
	}
	return out
}

func ToClaimDTOs(claims []*claim.Claim) []*ClaimDTO {
	return mapper.MapSlice(claims, ToClaimDTO)
}
