// Command previewreceipt renders a sample sale through the receipt
// formatter under a few settings profiles, for eyeballing layout
// changes without a terminal or printer.
package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
	"github.com/balandzxc/tindahan-pos/pkg/money"
	"github.com/balandzxc/tindahan-pos/pkg/receipt"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

func main() {
	sale := sampleSale()

	profiles := []struct {
		name     string
		settings entity.BusinessSettings
	}{
		{"default", entity.DefaultBusinessSettings()},
		{"minimal", minimalSettings()},
		{"narrow", narrowSettings()},
	}

	for _, p := range profiles {
		fmt.Printf("--- %s (%d cols) ---\n", p.name, p.settings.ReceiptWidth)
		fmt.Println(receipt.Render(sale, p.settings))
		fmt.Println()
	}
}

func sampleSale() entity.Sale {
	coke := entity.Product{
		ID:       utils.NewUUID(),
		Name:     "Coca-Cola 1.5L",
		Category: "Beverages",
		Price:    decimal.NewFromFloat(75),
	}
	shirt := entity.Product{
		ID:          utils.NewUUID(),
		Name:        "Plain Shirt",
		Category:    "Others",
		HasVariants: true,
	}
	medium := entity.Variant{
		ID:    utils.NewUUID(),
		Size:  "M",
		Price: decimal.NewFromFloat(199),
		Stock: 5,
	}
	chips := entity.Product{
		ID:       utils.NewUUID(),
		Name:     "Lays Classic",
		Category: "Snacks",
		Price:    decimal.NewFromFloat(62.5),
	}

	items := []entity.CartItem{
		entity.NewCartItem(coke, nil, 2),
		entity.NewCartItem(shirt, &medium, 1),
		entity.NewCartItem(chips, nil, 3),
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	discount := decimal.NewFromFloat(20)
	total := subtotal.Sub(discount)
	_, vat, _ := money.VATExclusiveSplit(total, decimal.NewFromFloat(0.12))

	return entity.Sale{
		ID:             utils.NewUUID(),
		ReceiptNumber:  "R-1724800000000",
		Timestamp:      time.Date(2026, time.August, 28, 14, 30, 0, 0, time.Local),
		CashierName:    "Maria",
		Items:          items,
		Subtotal:       subtotal,
		Discount:       discount,
		DiscountType:   enum.DiscountFixed,
		VATAmount:      vat,
		Total:          total,
		PaymentMethod:  enum.PaymentCash,
		AmountReceived: decimal.NewFromFloat(700),
		Change:         decimal.NewFromFloat(700).Sub(total),
	}
}

func minimalSettings() entity.BusinessSettings {
	s := entity.DefaultBusinessSettings()
	s.ShowAddress = false
	s.ShowTIN = false
	s.ShowBIRPermit = false
	s.ShowContactNumber = false
	s.VATEnabled = false
	s.VATRate = decimal.Zero
	return s
}

func narrowSettings() entity.BusinessSettings {
	s := entity.DefaultBusinessSettings()
	s.ReceiptWidth = 42
	s.ReceiptHeader = "*** DUPLICATE ***"
	return s
}
