package models

// ClaimModel is one row per claim ("demande").
//
// ActiveRank mirrors ClaimRank while the claim is active and is NULL once
// archived. The unique index on (property_id, active_rank) rejects two
// active claims holding the same rank; NULLs never collide, so archived
// claims keep their frozen rank without taking part.
type ClaimModel struct {
	ID            uint    `gorm:"primaryKey"`
	PropertyID    uint    `gorm:"not null;index;uniqueIndex:uk_claims_property_active_rank,priority:1"`
	RequesterID   uint    `gorm:"not null;index"`
	ClaimRank     int     `gorm:"not null"`
	ActiveRank    *int    `gorm:"uniqueIndex:uk_claims_property_active_rank,priority:2"`
	Status        string  `gorm:"size:20;not null;index"`
	IsConsort     bool    `gorm:"not null;default:false"`
	TotalPrice    int64   `gorm:"not null;default:0"`
	ArchiveReason *string `gorm:"size:500"`
	ArchivedAt    *int64
	ArchivedBy    *uint
	ClaimDate     string `gorm:"size:10;not null"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ClaimModel) TableName() string {
	return "claims"
}
