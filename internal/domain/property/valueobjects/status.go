package valueobjects

// PropertyStatus is the acquisition status of a property, derived from its
// claims and never stored.
type PropertyStatus string

const (
	StatusEmpty    PropertyStatus = "empty"
	StatusActive   PropertyStatus = "active"
	StatusAcquired PropertyStatus = "acquired"
)

// DeriveStatus maps the claim aggregate to a status. Any active claim wins
// over archived history.
func DeriveStatus(hasActive, hasArchived bool) PropertyStatus {
	switch {
	case hasActive:
		return StatusActive
	case hasArchived:
		return StatusAcquired
	default:
		return StatusEmpty
	}
}

func (s PropertyStatus) String() string {
	return string(s)
}

func (s PropertyStatus) IsValid() bool {
	return s == StatusEmpty || s == StatusActive || s == StatusAcquired
}

func (s PropertyStatus) IsAcquired() bool {
	return s == StatusAcquired
}
