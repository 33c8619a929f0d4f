package valueobjects

import "time"

// ArchiveRecord describes why and when a claim was archived.
type ArchiveRecord struct {
	reason     string
	archivedAt time.Time
	archivedBy uint
}

func NewArchiveRecord(reason string, archivedBy uint, archivedAt time.Time) ArchiveRecord {
	return ArchiveRecord{
		reason:     reason,
		archivedAt: archivedAt,
		archivedBy: archivedBy,
	}
}

func (r ArchiveRecord) Reason() string {
	return r.reason
}

func (r ArchiveRecord) ArchivedAt() time.Time {
	return r.archivedAt
}

func (r ArchiveRecord) ArchivedBy() uint {
	return r.archivedBy
}
