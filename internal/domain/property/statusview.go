package property

import (
	vo "github.com/geofoncier/geofoncier/internal/domain/property/valueobjects"
)

// StatusView is the resolved status of a property together with the
// transitions its current state allows.
type StatusView struct {
	Status          vo.PropertyStatus
	HasActive       bool
	HasArchived     bool
	IsDossierClosed bool
	CanDelete       bool
	CanModify       bool
	CanArchive      bool
	CanUnarchive    bool
}

func NewStatusView(hasActive, hasArchived, dossierClosed bool) StatusView {
	status := vo.DeriveStatus(hasActive, hasArchived)
	acquired := status.IsAcquired()

	return StatusView{
		Status:          status,
		HasActive:       hasActive,
		HasArchived:     hasArchived,
		IsDossierClosed: dossierClosed,
		// A property that ever held a claim is kept for the record.
		CanDelete:    !hasActive && !hasArchived && !dossierClosed,
		CanModify:    !acquired && !dossierClosed,
		CanArchive:   hasActive && !acquired,
		CanUnarchive: acquired && !dossierClosed,
	}
}
