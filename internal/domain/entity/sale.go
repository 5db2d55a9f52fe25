package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
)

// CartItem is one line of a cart. Product and Variant are snapshots
// taken at add-to-cart time, so a later catalog edit cannot change a
// pending or recorded line.
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Product   Product         `json:"product"`
	Variant   *Variant        `json:"variant,omitempty"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewCartItem snapshots a product (and optional variant) into a cart
// line. The line subtotal is fixed here and carried forward, never
// recomputed from live catalog state.
func NewCartItem(product Product, variant *Variant, quantity int) CartItem {
	item := CartItem{
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
	}
	if variant != nil {
		v := *variant
		item.Variant = &v
	}
	item.Subtotal = product.UnitPrice(variant).Mul(decimal.NewFromInt(int64(quantity)))
	return item
}

// UnitPrice returns the price this line was sold at.
func (i *CartItem) UnitPrice() decimal.Decimal {
	return i.Product.UnitPrice(i.Variant)
}

// Sale is a recorded, immutable transaction.
type Sale struct {
	ID              uuid.UUID          `json:"id"`
	ReceiptNumber   string             `json:"receiptNumber"`
	Timestamp       time.Time          `json:"timestamp"`
	CashierID       uuid.UUID          `json:"cashierId"`
	CashierName     string             `json:"cashierName"`
	Items           []CartItem         `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Discount        decimal.Decimal    `json:"discount"`
	DiscountType    enum.DiscountType  `json:"discountType"`
	VATAmount       decimal.Decimal    `json:"vatAmount"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMethod   enum.PaymentMethod `json:"paymentMethod"`
	AmountReceived  decimal.Decimal    `json:"amountReceived"`
	Change          decimal.Decimal    `json:"change"`
	ReferenceNumber string             `json:"referenceNumber,omitempty"`
}
