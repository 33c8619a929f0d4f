package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesBusinessCalendarDay(t *testing.T) {
	MustInit(DefaultTimezone)

	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "late UTC evening is already the next day in Antananarivo",
			now:      time.Date(2025, 3, 9, 22, 30, 0, 0, time.UTC),
			expected: "2025-03-10",
		},
		{
			name:     "UTC morning is the same day",
			now:      time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC),
			expected: "2025-03-09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := SetClock(func() time.Time { return tt.now })
			defer restore()

			today := Today()
			assert.Equal(t, tt.expected, FormatDate(today))
			assert.Equal(t, time.UTC, today.Location())
			assert.Zero(t, today.Hour())
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31/12/2024")
	assert.Error(t, err)
}
