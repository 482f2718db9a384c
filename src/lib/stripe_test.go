package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		rupees float64
		paise  int64
	}{
		{0, 0},
		{1, 100},
		{500.00, 50000},
		{2750.01, 275001},
		{499.99, 49999},
		{2750.00, 275000},
		{0.01, 1},
	}
	for _, c := range cases {
		assert.Equalf(t, c.paise, toMinorUnits(c.rupees), "%.2f rupees", c.rupees)
	}
}
