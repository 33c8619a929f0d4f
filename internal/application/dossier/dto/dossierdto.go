package dto

import (
	"time"

	"github.com/geofoncier/geofoncier/internal/domain/dossier"
)

type DossierDTO struct {
	ID          uint       `json:"id"`
	Reference   string     `json:"reference"`
	Title       string     `json:"title"`
	IsClosed    bool       `json:"is_closed"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	ClosedBy    *uint      `json:"closed_by,omitempty"`
	CloseReason string     `json:"close_reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToDossierDTO(d *dossier.Dossier) *DossierDTO {
	if d == nil {
		return nil
	}

	out := &DossierDTO{
		ID:        d.ID(),
		Reference: d.Reference(),
		Title:     d.Title(),
		IsClosed:  d.IsClosed(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
	if c := d.Closure(); c != nil {
		at, by := c.ClosedAt(), c.ClosedBy()
		out.ClosedAt = &at
		out.ClosedBy = &by
		out.CloseReason = c.Reason()
	}
	return out
}
