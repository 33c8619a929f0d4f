package models

// DossierModel is the persistence row of a dossier. A closed dossier has
// IsClosed set together with the closure columns.
type DossierModel struct {
	ID            uint    `gorm:"primaryKey"`
	Reference     string  `gorm:"uniqueIndex;size:50;not null"`
	Title         string  `gorm:"size:200;not null;default:''"`
	IsClosed      bool    `gorm:"not null;default:false;index"`
	ClosedAt      *int64  `gorm:"index"`
	ClosedBy      *uint   `gorm:"index"`
	ClosureReason *string `gorm:"size:500"`
	CreatedAt     int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64   `gorm:"autoUpdateTime:milli;not null"`
}

func (DossierModel) TableName() string {
	return "dossiers"
}
