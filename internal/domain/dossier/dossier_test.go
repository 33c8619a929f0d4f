package dossier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDossier(t *testing.T) {
	d, err := NewDossier(" DOS-2024-001 ", "Lotissement Nord")
	require.NoError(t, err)
	assert.Equal(t, "DOS-2024-001", d.Reference())
	assert.True(t, d.IsOpen())
	assert.Nil(t, d.Closure())

	_, err = NewDossier("", "x")
	assert.Error(t, err)
}

func TestDossier_CloseReopen(t *testing.T) {
	d, err := NewDossier("DOS-1", "")
	require.NoError(t, err)
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	assert.True(t, d.Close(3, " deeds signed ", at))
	assert.True(t, d.IsClosed())
	require.NotNil(t, d.Closure())
	assert.Equal(t, uint(3), d.Closure().ClosedBy())
	assert.Equal(t, "deeds signed", d.Closure().Reason())
	assert.Equal(t, at, d.Closure().ClosedAt())

	assert.False(t, d.Close(4, "again", at.Add(time.Hour)), "closing a closed dossier is a no-op")
	assert.Equal(t, uint(3), d.Closure().ClosedBy())

	assert.True(t, d.Reopen(at.Add(2*time.Hour)))
	assert.True(t, d.IsOpen())
	assert.Nil(t, d.Closure())
	assert.False(t, d.Reopen(at.Add(3*time.Hour)), "reopening an open dossier is a no-op")
}
