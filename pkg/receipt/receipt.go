// Package receipt renders a recorded sale as fixed-width printable
// text. Render is pure: identical inputs produce byte-identical
// output, so reprints and downloads never re-derive state.
package receipt

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/pkg/money"
)

// timestampLayout matches the en-PH short style: "Jan 2, 2006 03:04 PM".
const timestampLayout = "Jan 2, 2006 03:04 PM"

// Render formats a sale using the business's receipt settings. Field
// order is fixed; snapshot tests depend on it.
func Render(sale entity.Sale, settings entity.BusinessSettings) string {
	width := settings.ReceiptWidth
	if width <= 0 {
		width = entity.DefaultReceiptWidth
	}

	var b strings.Builder

	if settings.ReceiptHeader != "" {
		writeCentered(&b, settings.ReceiptHeader, width)
		b.WriteString("\n")
	}
	if settings.ShowBusinessName {
		writeCentered(&b, settings.BusinessName, width)
	}
	if settings.ShowAddress {
		writeCentered(&b, settings.Address, width)
	}
	if settings.ShowTIN {
		writeCentered(&b, "TIN: "+settings.TIN, width)
	}
	if settings.ShowBIRPermit {
		writeCentered(&b, "BIR Permit: "+settings.BIRPermitNumber, width)
	}
	if settings.ShowContactNumber {
		writeCentered(&b, "Contact: "+settings.ContactNumber, width)
	}
	b.WriteString("\n")

	b.WriteString("Receipt #: " + sale.ReceiptNumber + "\n")
	b.WriteString("Date: " + sale.Timestamp.Format(timestampLayout) + "\n")
	b.WriteString("Cashier: " + sale.CashierName + "\n")
	b.WriteString("\n")

	rule := strings.Repeat("=", width)
	b.WriteString(rule + "\n")
	b.WriteString("ITEMS\n")
	b.WriteString(rule + "\n")

	for _, item := range sale.Items {
		name := item.Product.Name
		if item.Variant != nil {
			name += " (" + item.Variant.Size + ")"
		}
		b.WriteString(name + "\n")

		qtyPrice := strconv.Itoa(item.Quantity) + " x " + money.Format(item.UnitPrice())
		total := money.Format(item.Subtotal)
		b.WriteString("  " + padRight(qtyPrice, 25) + " " + padLeft(total, 10) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", width) + "\n")
	writeTotalLine(&b, "Subtotal:", sale.Subtotal, width)
	if sale.Discount.IsPositive() {
		writeTotalLine(&b, "Discount:", sale.Discount, width)
	}
	writeTotalLine(&b, vatLabel(settings), sale.VATAmount, width)
	b.WriteString(rule + "\n")
	writeTotalLine(&b, "TOTAL:", sale.Total, width)
	b.WriteString(rule + "\n")
	b.WriteString("\n")

	b.WriteString("Payment: " + sale.PaymentMethod.Display() + "\n")
	if !sale.PaymentMethod.IsCash() && sale.ReferenceNumber != "" {
		b.WriteString("Reference: " + sale.ReferenceNumber + "\n")
	}
	b.WriteString("Amount Received: " + money.Format(sale.AmountReceived) + "\n")
	b.WriteString("Change: " + money.Format(sale.Change) + "\n")
	b.WriteString("\n")

	writeCentered(&b, settings.ReceiptFooter, width)
	b.WriteString("\n")
	writeCentered(&b, "Thank you for your business!", width)

	return b.String()
}

func vatLabel(settings entity.BusinessSettings) string {
	rate := decimal.Zero
	if settings.VATEnabled {
		rate = settings.VATRate
	}
	return "VAT (" + rate.Mul(decimal.NewFromInt(100)).String() + "%):"
}

// writeTotalLine writes a label with the amount right-aligned to the
// receipt width.
func writeTotalLine(b *strings.Builder, label string, amount decimal.Decimal, width int) {
	b.WriteString(label)
	b.WriteString(padLeft(money.Format(amount), width-utf8.RuneCountInString(label)))
	b.WriteString("\n")
}

func writeCentered(b *strings.Builder, s string, width int) {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(s)
	b.WriteString("\n")
}

func padLeft(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad < 1 {
		pad = 1
	}
	return strings.Repeat(" ", pad) + s
}

func padRight(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
