package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceOrderSplitsAdvanceEvenly(t *testing.T) {
	quote, err := PriceOrder(2500, 2, false)
	assert.NoError(t, err)
	assert.Equal(t, 5000.00, quote.Subtotal)
	assert.Equal(t, 0.00, quote.InstallationCharge)
	assert.Equal(t, 5000.00, quote.TotalPrice)
	assert.Equal(t, 2500.00, quote.AdvanceAmount)
	assert.Equal(t, 2500.00, quote.RemainingAmount)
}

func TestPriceOrderWithInstallation(t *testing.T) {
	quote, err := PriceOrder(2500, 2, true)
	assert.NoError(t, err)
	assert.Equal(t, 5000.00, quote.Subtotal)
	assert.Equal(t, 500.00, quote.InstallationCharge)
	assert.Equal(t, 5500.00, quote.TotalPrice)
	assert.Equal(t, 2750.00, quote.AdvanceAmount)
	assert.Equal(t, 2750.00, quote.RemainingAmount)
}

func TestPriceOrderOddPaise(t *testing.T) {
	quote, err := PriceOrder(999.99, 1, false)
	assert.NoError(t, err)
	assert.Equal(t, 999.99, quote.TotalPrice)
	// halves must still sum back to the total
	assert.InDelta(t, quote.TotalPrice, quote.AdvanceAmount+quote.RemainingAmount, 1e-9)
	assert.Equal(t, 500.00, quote.AdvanceAmount)
	assert.Equal(t, 499.99, quote.RemainingAmount)
}

func TestPriceOrderIdentities(t *testing.T) {
	prices := []float64{0.01, 1, 149.50, 999.99, 1000000}
	quantities := []int{1, 3, 7}
	for _, price := range prices {
		for _, quantity := range quantities {
			for _, install := range []bool{false, true} {
				quote, err := PriceOrder(price, quantity, install)
				assert.NoError(t, err)
				assert.InDelta(t, quote.TotalPrice, quote.Subtotal+quote.InstallationCharge, 1e-9)
				assert.InDelta(t, quote.TotalPrice, quote.AdvanceAmount+quote.RemainingAmount, 1e-9)
				assert.GreaterOrEqual(t, quote.AdvanceAmount, quote.RemainingAmount)
			}
		}
	}
}

func TestPriceOrderRejectsBadInput(t *testing.T) {
	_, err := PriceOrder(100, 0, false)
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = PriceOrder(100, -2, false)
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = PriceOrder(-1, 1, false)
	assert.ErrorIs(t, err, ErrBadUnitPrice)
}
