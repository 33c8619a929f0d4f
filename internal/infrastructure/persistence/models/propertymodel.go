package models

type PropertyModel struct {
	ID          uint    `gorm:"primaryKey"`
	DossierID   uint    `gorm:"not null;index"`
	Lot         string  `gorm:"size:100;not null"`
	TitleNumber *string `gorm:"size:50;index"`
	Area        float64 `gorm:"not null;default:0"`
	Nature      string  `gorm:"size:100;not null;default:''"`
	Vocation    string  `gorm:"size:100;not null;default:''"`
	CreatedAt   int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64   `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// Relationships are enforced by the ledger.
}

func (PropertyModel) TableName() string {
	return "properties"
}
