package models

type RequesterModel struct {
	ID         uint    `gorm:"primaryKey"`
	DossierID  uint    `gorm:"not null;index"`
	LastName   string  `gorm:"size:100;not null"`
	FirstName  string  `gorm:"size:100;not null;default:''"`
	NationalID string  `gorm:"size:20;not null;default:'';index"`
	BirthDate  *string `gorm:"size:10"`
	BirthPlace string  `gorm:"size:100;not null;default:''"`
	IsComplete bool    `gorm:"not null;default:false"`
	CreatedAt  int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt  int64   `gorm:"autoUpdateTime:milli;not null"`
}

func (RequesterModel) TableName() string {
	return "requesters"
}
