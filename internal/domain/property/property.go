package property

import (
	"fmt"
	"strings"
	"time"
)

// Property is a land parcel owned by exactly one dossier.
type Property struct {
	id          uint
	dossierID   uint
	lot         string
	titleNumber *string
	area        float64
	nature      string
	vocation    string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProperty(dossierID uint, lot string, area float64, nature, vocation string) (*Property, error) {
	if dossierID == 0 {
		return nil, fmt.Errorf("dossier ID is required")
	}
	lot = strings.TrimSpace(lot)
	if lot == "" {
		return nil, fmt.Errorf("lot is required")
	}
	if len(lot) > 100 {
		return nil, fmt.Errorf("lot exceeds maximum length of 100 characters")
	}
	if area < 0 {
		return nil, fmt.Errorf("area cannot be negative")
	}

	now := time.Now().UTC()
	return &Property{
		dossierID: dossierID,
		lot:       lot,
		area:      area,
		nature:    strings.TrimSpace(nature),
		vocation:  strings.TrimSpace(vocation),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructProperty(
	id uint,
	dossierID uint,
	lot string,
	titleNumber *string,
	area float64,
	nature string,
	vocation string,
	createdAt, updatedAt time.Time,
) (*Property, error) {
	if id == 0 {
		return nil, fmt.Errorf("property ID cannot be zero")
	}
	if dossierID == 0 {
		return nil, fmt.Errorf("property %d has no dossier", id)
	}

	return &Property{
		id:          id,
		dossierID:   dossierID,
		lot:         lot,
		titleNumber: titleNumber,
		area:        area,
		nature:      nature,
		vocation:    vocation,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Property) ID() uint {
	return p.id
}

func (p *Property) DossierID() uint {
	return p.dossierID
}

func (p *Property) Lot() string {
	return p.lot
}

// TitleNumber is nil until a land title is issued.
func (p *Property) TitleNumber() *string {
	if p.titleNumber == nil {
		return nil
	}
	n := *p.titleNumber
	return &n
}

func (p *Property) Area() float64 {
	return p.area
}

func (p *Property) Nature() string {
	return p.nature
}

func (p *Property) Vocation() string {
	return p.vocation
}

func (p *Property) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Property) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Property) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("property ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("property ID cannot be zero")
	}
	p.id = id
	return nil
}

// Details are the editable descriptive fields of a property. Nil fields
// are left unchanged.
type Details struct {
	Lot         *string
	TitleNumber *string
	Area        *float64
	Nature      *string
	Vocation    *string
}

func (p *Property) ApplyDetails(d Details) error {
	if d.Lot != nil {
		lot := strings.TrimSpace(*d.Lot)
		if lot == "" {
			return fmt.Errorf("lot cannot be empty")
		}
		if len(lot) > 100 {
			return fmt.Errorf("lot exceeds maximum length of 100 characters")
		}
		p.lot = lot
	}
	if d.TitleNumber != nil {
		n := strings.TrimSpace(*d.TitleNumber)
		if n == "" {
			p.titleNumber = nil
		} else {
			p.titleNumber = &n
		}
	}
	if d.Area != nil {
		if *d.Area < 0 {
			return fmt.Errorf("area cannot be negative")
		}
		p.area = *d.Area
	}
	if d.Nature != nil {
		p.nature = strings.TrimSpace(*d.Nature)
	}
	if d.Vocation != nil {
		p.vocation = strings.TrimSpace(*d.Vocation)
	}
	p.updatedAt = time.Now().UTC()
	return nil
}
