package mapper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    uint
	Value int
}

type entity struct {
	label string
}

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, func(i int) string { return "" }))
	assert.Equal(t, []string{}, MapSlice([]int{}, func(i int) string { return "" }))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, func(i int) string { return fmt.Sprint(i) }))
}

func TestMapSliceWithID(t *testing.T) {
	toEntity := func(r *row) (*entity, error) {
		if r.Value < 0 {
			return nil, errors.New("negative value")
		}
		return &entity{label: fmt.Sprintf("e%d", r.Value)}, nil
	}
	getID := func(r *row) uint { return r.ID }

	t.Run("maps every row", func(t *testing.T) {
		got, err := MapSliceWithID([]row{{ID: 1, Value: 10}, {ID: 2, Value: 20}}, toEntity, getID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "e10", got[0].label)
		assert.Equal(t, "e20", got[1].label)
	})

	t.Run("nil input yields an empty slice", func(t *testing.T) {
		got, err := MapSliceWithID[row, entity, uint](nil, toEntity, getID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("error names the failing row", func(t *testing.T) {
		_, err := MapSliceWithID([]row{{ID: 1, Value: 1}, {ID: 7, Value: -1}}, toEntity, getID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to map row 7")
		assert.Contains(t, err.Error(), "negative value")
	})
}
