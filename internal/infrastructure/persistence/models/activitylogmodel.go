package models

import (
	"gorm.io/datatypes"

	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
)

type ActivityLogModel struct {
	ID         uint                               `gorm:"primaryKey"`
	EventID    string                             `gorm:"size:36;uniqueIndex;not null"`
	ActorID    uint                               `gorm:"not null;index"`
	Action     string                             `gorm:"size:50;not null;index"`
	EntityType string                             `gorm:"size:30;not null;index:idx_activity_logs_entity,priority:1"`
	EntityID   uint                               `gorm:"not null;index:idx_activity_logs_entity,priority:2"`
	Metadata   datatypes.JSONType[audit.Metadata] `gorm:"type:json"`
	CreatedAt  int64                              `gorm:"not null;index"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
