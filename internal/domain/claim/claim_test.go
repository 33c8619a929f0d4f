package claim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/geofoncier/geofoncier/internal/domain/claim/valueobjects"
)

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func activeClaim(t *testing.T, id uint, rank int) *Claim {
	t.Helper()
	c, err := ReconstructClaim(id, 10, id+100, rank, vo.StatusActive, 1000, nil, testDate, testDate, testDate)
	require.NoError(t, err)
	return c
}

func archivedClaim(t *testing.T, id uint, rank int) *Claim {
	t.Helper()
	rec := vo.NewArchiveRecord("paid in full", 1, testDate)
	c, err := ReconstructClaim(id, 10, id+100, rank, vo.StatusArchived, 1000, &rec, testDate, testDate, testDate)
	require.NoError(t, err)
	return c
}

func TestNewClaim(t *testing.T) {
	t.Run("principal and consort flag follow rank", func(t *testing.T) {
		c, err := NewClaim(1, 2, 1, 500, testDate)
		require.NoError(t, err)
		assert.True(t, c.IsPrincipal())
		assert.False(t, c.IsConsort())
		assert.True(t, c.IsActive())
		assert.Nil(t, c.Archive())

		c2, err := NewClaim(1, 3, 2, 500, testDate)
		require.NoError(t, err)
		assert.True(t, c2.IsConsort())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewClaim(0, 2, 1, 0, testDate)
		assert.Error(t, err)
		_, err = NewClaim(1, 0, 1, 0, testDate)
		assert.Error(t, err)
		_, err = NewClaim(1, 2, 0, 0, testDate)
		assert.Error(t, err)
		_, err = NewClaim(1, 2, 1, -1, testDate)
		assert.Error(t, err)
		_, err = NewClaim(1, 2, 1, 0, time.Time{})
		assert.Error(t, err)
	})
}

func TestReconstructClaim_DropsArchiveRecordOfActiveClaim(t *testing.T) {
	rec := vo.NewArchiveRecord("stale", 1, testDate)
	c, err := ReconstructClaim(1, 10, 20, 1, vo.StatusActive, 0, &rec, testDate, testDate, testDate)
	require.NoError(t, err)
	assert.Nil(t, c.Archive())
	assert.Empty(t, c.ArchiveReason())
}

func TestClaim_MarkArchived(t *testing.T) {
	c := activeClaim(t, 1, 2)
	at := testDate.Add(time.Hour)

	assert.True(t, c.MarkArchived("paid in full", 7, at))
	assert.True(t, c.IsArchived())
	assert.Equal(t, 2, c.Rank())
	assert.Equal(t, "paid in full", c.ArchiveReason())
	require.NotNil(t, c.Archive())
	assert.Equal(t, uint(7), c.Archive().ArchivedBy())
	assert.Equal(t, at, c.Archive().ArchivedAt())

	assert.False(t, c.MarkArchived("again", 7, at), "archiving twice is a no-op")
	assert.Equal(t, "paid in full", c.ArchiveReason())
}

func TestClaim_MarkActive(t *testing.T) {
	c := archivedClaim(t, 1, 1)

	ok, err := c.MarkActive(3, testDate)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.IsActive())
	assert.Equal(t, 3, c.Rank())
	assert.Nil(t, c.Archive())

	ok, err = c.MarkActive(1, testDate)
	require.NoError(t, err)
	assert.False(t, ok, "re-activating an active claim is a no-op")
	assert.Equal(t, 3, c.Rank())

	_, err = archivedClaim(t, 2, 1).MarkActive(0, testDate)
	assert.Error(t, err)
}

func TestClaim_AssignRank(t *testing.T) {
	c := activeClaim(t, 1, 2)
	require.NoError(t, c.AssignRank(1))
	assert.True(t, c.IsPrincipal())
	assert.Error(t, c.AssignRank(0))

	frozen := archivedClaim(t, 2, 4)
	assert.Error(t, frozen.AssignRank(1))
	assert.Equal(t, 4, frozen.Rank())
}

func TestClaim_SetID(t *testing.T) {
	c, err := NewClaim(1, 2, 1, 0, testDate)
	require.NoError(t, err)
	assert.Error(t, c.SetID(0))
	require.NoError(t, c.SetID(5))
	assert.Equal(t, uint(5), c.ID())
	assert.Error(t, c.SetID(6))
}
