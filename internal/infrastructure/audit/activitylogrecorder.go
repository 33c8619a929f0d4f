// Package audit persists activity-log events to the activity_logs table.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/models"
	"github.com/geofoncier/geofoncier/internal/shared/biztime"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// ActivityLogRecorder writes events on its own connection, never on the
// caller's transaction, so a failing insert cannot roll back the transition
// it describes.
type ActivityLogRecorder struct {
	db     *gorm.DB
	logger logger.Interface
}

var (
	_ audit.Recorder = (*ActivityLogRecorder)(nil)
	_ audit.Reader   = (*ActivityLogRecorder)(nil)
)

func NewActivityLogRecorder(db *gorm.DB, logger logger.Interface) *ActivityLogRecorder {
	return &ActivityLogRecorder{
		db:     db,
		logger: logger,
	}
}

func (r *ActivityLogRecorder) Record(ctx context.Context, event audit.Event) error {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = biztime.NowUTC()
	}

	model := &models.ActivityLogModel{
		EventID:    uuid.NewString(),
		ActorID:    event.ActorID,
		Action:     string(event.Action),
		EntityType: string(event.EntityType),
		EntityID:   event.EntityID,
		Metadata:   datatypes.NewJSONType(event.Metadata),
		CreatedAt:  occurredAt.UnixMilli(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record %s event: %w", event.Action, err)
	}

	r.logger.Debugw("activity recorded",
		"event_id", model.EventID,
		"action", model.Action,
		"entity_type", model.EntityType,
		"entity_id", model.EntityID,
	)
	return nil
}

// ListForEntity returns the events of one entity, oldest first.
func (r *ActivityLogRecorder) ListForEntity(ctx context.Context, entityType audit.EntityType, entityID uint) ([]audit.Event, error) {
	var ms []models.ActivityLogModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", string(entityType), entityID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	events := make([]audit.Event, 0, len(ms))
	for _, m := range ms {
		events = append(events, audit.Event{
			ActorID:    m.ActorID,
			Action:     audit.Action(m.Action),
			EntityType: audit.EntityType(m.EntityType),
			EntityID:   m.EntityID,
			Metadata:   m.Metadata.Data(),
			OccurredAt: biztime.FromMillis(m.CreatedAt),
		})
	}
	return events, nil
}
