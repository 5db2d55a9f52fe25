package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
)

// DefaultLowStockThreshold is the stock level at or below which a
// product is flagged as running low.
const DefaultLowStockThreshold = 10

// Variant is a sellable size/option of a product with its own price
// and stock. Variants are owned by their parent product and never
// referenced independently.
type Variant struct {
	ID      uuid.UUID       `json:"id"`
	Size    string          `json:"size"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	Barcode string          `json:"barcode,omitempty"`
	Active  bool            `json:"active"`
}

// Product is a catalog entry. When HasVariants is true the flat Price
// and Stock fields are advisory: stock is the sum of variant stocks and
// the selling price comes from the chosen variant.
type Product struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Stock       int              `json:"stock"`
	Barcode     string           `json:"barcode,omitempty"`
	HasVariants bool             `json:"hasVariants"`
	Variants    []Variant        `json:"variants,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TotalStock returns the authoritative stock count: the sum of variant
// stocks (active or not) for variant products, the flat count
// otherwise. A variant product with zero variants totals zero.
func (p *Product) TotalStock() int {
	if !p.HasVariants {
		return p.Stock
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// StockStatus classifies the aggregate stock level against a low-stock
// threshold. A threshold of zero or below falls back to the default.
func (p *Product) StockStatus(threshold int) enum.StockStatus {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	total := p.TotalStock()
	switch {
	case total == 0:
		return enum.StockOut
	case total <= threshold:
		return enum.StockLow
	default:
		return enum.StockIn
	}
}

// FindVariant returns the variant with the given ID, or nil.
func (p *Product) FindVariant(id uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// UnitPrice returns the selling price for a line: the variant price
// when a variant was selected, the flat price otherwise.
func (p *Product) UnitPrice(v *Variant) decimal.Decimal {
	if v != nil {
		return v.Price
	}
	return p.Price
}

// RecomputeStock refreshes the advisory flat stock from the variant
// sum. Call immediately after any variant stock mutation.
func (p *Product) RecomputeStock() {
	if !p.HasVariants {
		return
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	p.Stock = total
}

// Normalize repairs payloads written by older versions: HasVariants is
// derived from the variant list and variant products get their
// aggregate recomputed.
func (p *Product) Normalize() {
	p.HasVariants = len(p.Variants) > 0
	p.RecomputeStock()
}
