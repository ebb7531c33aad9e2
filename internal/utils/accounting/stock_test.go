package accounting_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/utils/accounting"
)

func TestCheckAvailability(t *testing.T) {
	t.Run("allows requests up to availability", func(t *testing.T) {
		assert.NoError(t, accounting.CheckAvailability("Rice", dec("50"), dec("50")))
		assert.NoError(t, accounting.CheckAvailability("Rice", dec("0.5"), dec("50")))
	})

	t.Run("rejects any overdraw and reports availability", func(t *testing.T) {
		err := accounting.CheckAvailability("Rice", dec("50.001"), dec("50"))
		require.Error(t, err)

		var stockErr *apperrors.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, "Rice", stockErr.ItemName)
		assert.True(t, stockErr.Available.Equal(dec("50")))
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
	})

	t.Run("zero availability rejects everything positive", func(t *testing.T) {
		err := accounting.CheckAvailability("Rice", dec("10"), dec("0"))
		var stockErr *apperrors.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.True(t, stockErr.Available.IsZero())
	})
}

func TestEffectiveAvailable(t *testing.T) {
	// A receipt that previously consumed 20 units is being edited; its own
	// consumption must be treated as reverted before re-checking.
	effective := accounting.EffectiveAvailable(dec("5"), dec("20"))
	assert.True(t, effective.Equal(dec("25")))

	// Shrinking the receipt to 5 units must therefore pass...
	assert.NoError(t, accounting.CheckAvailability("Rice", dec("5"), effective))
	// ...and growing it past the effective figure must still fail.
	assert.Error(t, accounting.CheckAvailability("Rice", dec("26"), effective))
}
