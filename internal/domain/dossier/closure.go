package dossier

import "time"

// ClosureRecord captures who closed a dossier, when, and why.
type ClosureRecord struct {
	closedAt time.Time
	closedBy uint
	reason   string
}

func NewClosureRecord(closedBy uint, reason string, closedAt time.Time) ClosureRecord {
	return ClosureRecord{
		closedAt: closedAt,
		closedBy: closedBy,
		reason:   reason,
	}
}

func (r ClosureRecord) ClosedAt() time.Time {
	return r.closedAt
}

func (r ClosureRecord) ClosedBy() uint {
	return r.closedBy
}

func (r ClosureRecord) Reason() string {
	return r.reason
}
