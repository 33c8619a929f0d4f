package dto

import (
	"time"

	"github.com/geofoncier/geofoncier/internal/domain/property"
)

type PropertyDTO struct {
	ID          uint      `json:"id"`
	DossierID   uint      `json:"dossier_id"`
	Lot         string    `json:"lot"`
	TitleNumber *string   `json:"title_number,omitempty"`
	Area        float64   `json:"area"`
	Nature      string    `json:"nature,omitempty"`
	Vocation    string    `json:"vocation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToPropertyDTO(p *property.Property) *PropertyDTO {
	if p == nil {
		return nil
	}
	return &PropertyDTO{
		ID:          p.ID(),
		DossierID:   p.DossierID(),
		Lot:         p.Lot(),
		TitleNumber: p.TitleNumber(),
		Area:        p.Area(),
		Nature:      p.Nature(),
		Vocation:    p.Vocation(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// PropertyStatusDTO is the resolved status of a property with the
// transitions it allows.
type PropertyStatusDTO struct {
	PropertyID      uint   `json:"property_id"`
	Status          string `json:"status"`
	HasActive       bool   `json:"has_active"`
	HasArchived     bool   `json:"has_archived"`
	IsDossierClosed bool   `json:"is_dossier_closed"`
	CanDelete       bool   `json:"can_delete"`
	CanModify       bool   `json:"can_modify"`
	CanArchive      bool   `json:"can_archive"`
	CanUnarchive    bool   `json:"can_unarchive"`
}

func ToPropertyStatusDTO(propertyID uint, v property.StatusView) *PropertyStatusDTO {
	return &PropertyStatusDTO{
		PropertyID:      propertyID,
		Status:          v.Status.String(),
		HasActive:       v.HasActive,
		HasArchived:     v.HasArchived,
		IsDossierClosed: v.IsDossierClosed,
		CanDelete:       v.CanDelete,
		CanModify:       v.CanModify,
		CanArchive:      v.CanArchive,
		CanUnarchive:    v.CanUnarchive,
	}
}
