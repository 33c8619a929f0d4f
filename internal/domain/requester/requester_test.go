package requester

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequester_IsComplete(t *testing.T) {
	born := time.Date(1980, 1, 15, 0, 0, 0, 0, time.UTC)
	full := Identity{
		LastName:   "Diallo",
		FirstName:  "Awa",
		NationalID: "1234567",
		BirthDate:  &born,
		BirthPlace: "Thiès",
	}

	r, err := NewRequester(1, full)
	require.NoError(t, err)
	assert.True(t, r.IsComplete())
	assert.Equal(t, "Diallo Awa", r.FullName())

	partial := full
	partial.NationalID = "   "
	require.NoError(t, r.UpdateIdentity(partial))
	assert.False(t, r.IsComplete())

	noBirth := full
	noBirth.BirthDate = nil
	require.NoError(t, r.UpdateIdentity(noBirth))
	assert.False(t, r.IsComplete())
}

func TestNewRequester_Validation(t *testing.T) {
	_, err := NewRequester(0, Identity{LastName: "Sow"})
	assert.Error(t, err)

	_, err = NewRequester(1, Identity{FirstName: "Moussa"})
	assert.Error(t, err, "last name is required")

	future := time.Now().Add(48 * time.Hour)
	_, err = NewRequester(1, Identity{LastName: "Sow", BirthDate: &future})
	assert.Error(t, err)

	r, err := NewRequester(1, Identity{LastName: "Sow"})
	require.NoError(t, err)
	assert.False(t, r.IsComplete())
}
