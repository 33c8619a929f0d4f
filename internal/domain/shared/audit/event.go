// Package audit defines the activity-log events emitted by gate and ledger
// transitions.
package audit

import (
	"context"
	"time"
)

type Action string

const (
	ActionDossierClosed    Action = "dossier.closed"
	ActionDossierReopened  Action = "dossier.reopened"
	ActionClaimCreated     Action = "claim.created"
	ActionClaimArchived    Action = "claim.archived"
	ActionClaimUnarchived  Action = "claim.unarchived"
	ActionClaimRemoved     Action = "claim.removed"
	ActionClaimPromoted    Action = "claim.promoted"
	ActionPropertyDeleted  Action = "property.deleted"
	ActionPropertyModified Action = "property.modified"
)

type EntityType string

const (
	EntityDossier  EntityType = "dossier"
	EntityClaim    EntityType = "claim"
	EntityProperty EntityType = "property"
)

// Metadata is the structured payload attached to an event. Only the fields
// relevant to the action are set.
type Metadata struct {
	Reason           string `json:"reason,omitempty"`
	PropertyID       uint   `json:"property_id,omitempty"`
	DossierID        uint   `json:"dossier_id,omitempty"`
	FromRank         int    `json:"from_rank,omitempty"`
	ToRank           int    `json:"to_rank,omitempty"`
	DisplacedClaimID uint   `json:"displaced_claim_id,omitempty"`
}

type Event struct {
	ActorID    uint
	Action     Action
	EntityType EntityType
	EntityID   uint
	Metadata   Metadata
	OccurredAt time.Time
}

// Recorder is a best-effort sink. Callers log a failed Record and carry on;
// the state transition it describes has already been committed.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// Reader lists the recorded events of one entity, oldest first.
type Reader interface {
	ListForEntity(ctx context.Context, entityType EntityType, entityID uint) ([]Event, error)
}
