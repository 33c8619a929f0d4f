// Package biztime provides the business clock.
// All storage uses UTC. The business timezone is only used to decide which
// calendar day "today" is, since claim dates are business dates rather than
// record timestamps.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Indian/Antananarivo"

	// DateLayout is the layout of business dates in config, logs and audit metadata.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error

	nowFunc   = time.Now
	nowFuncMu sync.RWMutex
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to DefaultTimezone.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, initializing the
// default on first use.
func Location() *time.Location {
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
	}
	return bizLocation
}

// SetClock replaces the wall clock and returns a func restoring the previous one.
func SetClock(now func() time.Time) (restore func()) {
	nowFuncMu.Lock()
	prev := nowFunc
	nowFunc = now
	nowFuncMu.Unlock()
	return func() {
		nowFuncMu.Lock()
		nowFunc = prev
		nowFuncMu.Unlock()
	}
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	nowFuncMu.RLock()
	defer nowFuncMu.RUnlock()
	return nowFunc().UTC()
}

// Today returns the current business date as midnight UTC of that calendar day.
func Today() time.Time {
	return DateOf(NowUTC())
}

// DateOf returns the business calendar day containing t, as midnight UTC.
// Dates are stored without a zone; midnight UTC keeps them stable across drivers.
func DateOf(t time.Time) time.Time {
	biz := t.In(Location())
	return time.Date(biz.Year(), biz.Month(), biz.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD business date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a business date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FromMillis converts epoch milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
