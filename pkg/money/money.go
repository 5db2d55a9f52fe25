// Package money holds the peso formatting and VAT math every other
// component funnels monetary values through.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
)

// PesoSymbol is the Philippine peso sign used on receipts and displays.
const PesoSymbol = "₱"

// en-PH groups thousands with commas, same as en.
var printer = message.NewPrinter(language.English)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Format renders an amount as a peso string with two decimals and
// thousands grouping, e.g. ₱1,234.50. Negative amounts carry the minus
// sign ahead of the symbol: -₱123.45.
func Format(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	if f < 0 {
		return "-" + PesoSymbol + printer.Sprintf("%.2f", -f)
	}
	return PesoSymbol + printer.Sprintf("%.2f", f)
}

// FormatFloat is Format for float inputs at display boundaries.
func FormatFloat(amount float64) string {
	return Format(decimal.NewFromFloat(amount))
}

// VATExclusiveSplit derives the net and tax portions of a VAT-inclusive
// total: net = total/(1+rate), vat = total-net. The two always add back
// to the total by construction.
func VATExclusiveSplit(totalInclusive, rate decimal.Decimal) (net, vat decimal.Decimal, err error) {
	if rate.IsNegative() {
		return decimal.Zero, decimal.Zero, apperror.ErrInvalidRate
	}
	net = totalInclusive.Div(one.Add(rate))
	vat = totalInclusive.Sub(net)
	return net, vat, nil
}

// DiscountAmount computes the discount to subtract from a subtotal.
// Percentage discounts above 100 and negative discounts are rejected;
// fixed discounts are capped at the subtotal so the total can never go
// negative.
func DiscountAmount(subtotal, discount decimal.Decimal, discountType enum.DiscountType) (decimal.Decimal, error) {
	if discount.IsNegative() {
		return decimal.Zero, apperror.NewBadRequestError("Discount cannot be negative")
	}
	switch discountType {
	case enum.DiscountPercentage:
		if discount.GreaterThan(hundred) {
			return decimal.Zero, apperror.ErrInvalidDiscount
		}
		return subtotal.Mul(discount).Div(hundred), nil
	case enum.DiscountFixed:
		if discount.GreaterThan(subtotal) {
			return subtotal, nil
		}
		return discount, nil
	default:
		return decimal.Zero, apperror.NewBadRequestError("Unknown discount type " + string(discountType))
	}
}
