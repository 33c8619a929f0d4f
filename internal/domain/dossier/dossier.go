package dossier

import (
	"fmt"
	"strings"
	"time"
)

// Dossier is the case file owning properties and requesters. It is created
// open; while closed, nothing beneath it may change.
type Dossier struct {
	id        uint
	reference string
	title     string
	closure   *ClosureRecord
	createdAt time.Time
	updatedAt time.Time
}

func NewDossier(reference, title string) (*Dossier, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("reference is required")
	}
	if len(reference) > 50 {
		return nil, fmt.Errorf("reference exceeds maximum length of 50 characters")
	}
	title = strings.TrimSpace(title)
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}

	now := time.Now().UTC()
	return &Dossier{
		reference: reference,
		title:     title,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructDossier(
	id uint,
	reference string,
	title string,
	closure *ClosureRecord,
	createdAt, updatedAt time.Time,
) (*Dossier, error) {
	if id == 0 {
		return nil, fmt.Errorf("dossier ID cannot be zero")
	}
	return &Dossier{
		id:        id,
		reference: reference,
		title:     title,
		closure:   closure,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (d *Dossier) ID() uint {
	return d.id
}

func (d *Dossier) Reference() string {
	return d.reference
}

func (d *Dossier) Title() string {
	return d.title
}

func (d *Dossier) IsClosed() bool {
	return d.closure != nil
}

func (d *Dossier) IsOpen() bool {
	return d.closure == nil
}

// Closure returns the closure record, nil while the dossier is open.
func (d *Dossier) Closure() *ClosureRecord {
	if d.closure == nil {
		return nil
	}
	c := *d.closure
	return &c
}

func (d *Dossier) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Dossier) UpdatedAt() time.Time {
	return d.updatedAt
}

func (d *Dossier) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("dossier ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("dossier ID cannot be zero")
	}
	d.id = id
	return nil
}

// Close records the closure. Returns false if the dossier is already closed.
func (d *Dossier) Close(closedBy uint, reason string, at time.Time) bool {
	if d.IsClosed() {
		return false
	}
	record := NewClosureRecord(closedBy, strings.TrimSpace(reason), at)
	d.closure = &record
	d.updatedAt = at
	return true
}

// Reopen clears the closure fields. Returns false if the dossier is open.
func (d *Dossier) Reopen(at time.Time) bool {
	if d.IsOpen() {
		return false
	}
	d.closure = nil
	d.updatedAt = at
	return true
}
