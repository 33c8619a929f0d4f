package dossier

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, d *Dossier) error
	Update(ctx context.Context, d *Dossier) error
	GetByID(ctx context.Context, dossierID uint) (*Dossier, error)
	// GetByIDForUpdate holds a row lock on the dossier until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, dossierID uint) (*Dossier, error)
	// GetByIDForShare holds a shared lock so a concurrent close waits for
	// the mutation that read the dossier as open.
	GetByIDForShare(ctx context.Context, dossierID uint) (*Dossier, error)
}

// Action names an operation checked by the AccessPolicy.
type Action string

const (
	ActionModify Action = "modify"
	ActionClose  Action = "close"
	ActionReopen Action = "reopen"
)

// AccessPolicy answers whether an actor may perform an action on a dossier.
type AccessPolicy interface {
	Allowed(ctx context.Context, actorID uint, d *Dossier, action Action) (bool, error)
}
