package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofoncier/geofoncier/internal/shared/errors"
)

type sample struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	Reason     string `json:"reason" validate:"max=5"`
	ClaimDate  string `validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(sample{PropertyID: 1, ClaimDate: "2024-03-01"}))
	})

	t.Run("lists every failed field", func(t *testing.T) {
		err := ValidateStruct(sample{Reason: "too long", ClaimDate: "01/03/2024"})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Details, "property_id is required")
		assert.Contains(t, appErr.Details, "reason must be at most 5 characters long")
		assert.Contains(t, appErr.Details, "ClaimDate must be a date formatted as 2006-01-02")
	})
}
