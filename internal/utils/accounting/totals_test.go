package accounting_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/utils/accounting"
)

func item(name string, qty, price string) domain.LineItem {
	return domain.LineItem{
		ItemName:  name,
		Quantity:  decimal.RequireFromString(qty),
		Unit:      "kg",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestComputeReceiptTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.LineItem
		want  string
	}{
		{
			name:  "empty list totals zero",
			items: nil,
			want:  "0",
		},
		{
			name: "simple sum",
			items: []domain.LineItem{
				item("Rice", "10", "52.50"),
				item("Wheat", "5", "31.20"),
			},
			want: "681", // 525.00 + 156.00
		},
		{
			name: "per-line rounding happens before summation",
			// 3 × 0.335 = 1.005 -> 1.00 per line (half-even), twice = 2.00;
			// round-of-sum would give 2.01.
			items: []domain.LineItem{
				item("Twine", "3", "0.335"),
				item("Twine", "3", "0.335"),
			},
			want: "2",
		},
		{
			name: "half-even rounds to the even neighbour",
			items: []domain.LineItem{
				item("A", "1", "0.125"), // -> 0.12
				item("B", "1", "0.135"), // -> 0.14
			},
			want: "0.26",
		},
		{
			name: "fractional quantity",
			items: []domain.LineItem{
				item("Oil", "2.5", "199.99"), // 499.975 -> 499.98
			},
			want: "499.98",
		},
		{
			name: "zero unit price is allowed",
			items: []domain.LineItem{
				item("Sample", "1", "0"),
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := accounting.ComputeReceiptTotal(tt.items)
			require.NoError(t, err)
			assert.True(t, total.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", total.String(), tt.want)
		})
	}
}

func TestComputeReceiptTotal_OrderIndependent(t *testing.T) {
	a := []domain.LineItem{
		item("Rice", "7.25", "48.80"),
		item("Sugar", "3", "41.335"),
		item("Salt", "12", "9.99"),
	}
	b := []domain.LineItem{a[2], a[0], a[1]}

	totalA, err := accounting.ComputeReceiptTotal(a)
	require.NoError(t, err)
	totalB, err := accounting.ComputeReceiptTotal(b)
	require.NoError(t, err)
	assert.True(t, totalA.Equal(totalB))
}

func TestComputeReceiptTotal_RejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.LineItem
	}{
		{"zero quantity", []domain.LineItem{item("Rice", "0", "10")}},
		{"negative quantity", []domain.LineItem{item("Rice", "-1", "10")}},
		{"quantity below minimum", []domain.LineItem{item("Rice", "0.009", "10")}},
		{"negative unit price", []domain.LineItem{item("Rice", "1", "-0.01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounting.ComputeReceiptTotal(tt.items)
			require.Error(t, err)

			var lineErr *apperrors.InvalidLineItemError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, "Rice", lineErr.ItemName)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}
