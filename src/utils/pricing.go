package utils

import (
	"errors"
	"gmotors/src/config"

	"github.com/shopspring/decimal"
)

// Quote is the fully derived price breakdown for a part order. Fields are
// computed once at order creation and written to the order row as-is.
type Quote struct {
	UnitPrice          float64
	Quantity           int
	Subtotal           float64
	InstallationCharge float64
	TotalPrice         float64
	AdvanceAmount      float64
	RemainingAmount    float64
}

var ErrBadQuantity = errors.New("quantity must be a positive integer")
var ErrBadUnitPrice = errors.New("unit price must not be negative")

// PriceOrder derives subtotal, installation charge and the 50% advance /
// remainder split from unit price and quantity. All amounts are rounded
// to 2 decimal places; the remainder is taken as total minus advance so
// the two always sum back to the total.
func PriceOrder(unitPrice float64, quantity int, installation bool) (*Quote, error) {
	if quantity < 1 {
		return nil, ErrBadQuantity
	}
	if unitPrice < 0 {
		return nil, ErrBadUnitPrice
	}
	price := decimal.NewFromFloat(unitPrice)
	subtotal := price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	install := decimal.Zero
	if installation {
		install = decimal.NewFromFloat(config.INSTALLATION_CHARGE)
	}
	total := subtotal.Add(install).Round(2)
	advance := total.Mul(decimal.NewFromFloat(0.5)).Round(2)
	remaining := total.Sub(advance)

	q := Quote{
		UnitPrice:          unitPrice,
		Quantity:           quantity,
		Subtotal:           subtotal.InexactFloat64(),
		InstallationCharge: install.InexactFloat64(),
		TotalPrice:         total.InexactFloat64(),
		AdvanceAmount:      advance.InexactFloat64(),
		RemainingAmount:    remaining.InexactFloat64(),
	}
	return &q, nil
}
