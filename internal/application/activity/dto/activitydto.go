package dto

import (
	"time"

	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/shared/mapper"
)

type ActivityDTO struct {
	ActorID    uint           `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	Metadata   audit.Metadata `json:"metadata"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func ToActivityDTO(e audit.Event) *ActivityDTO {
	return &ActivityDTO{
		ActorID:    e.ActorID,
		Action:     string(e.Action),
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Metadata:   e.Metadata,
		OccurredAt: e.OccurredAt,
	}
}

func ToActivityDTOs(events []audit.Event) []*ActivityDTO {
	return mapper.MapSlice(events, ToActivityDTO)
}
