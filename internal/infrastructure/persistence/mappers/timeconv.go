package mappers

import "time"

func millisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}

func timeToMillisPtr(t *time.Time) *int64 {
	if t == nil || t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
