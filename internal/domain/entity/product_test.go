package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
)

func variantProduct(stocks ...int) Product {
	p := Product{Name: "Plain Shirt", HasVariants: true}
	sizes := []string{"S", "M", "L", "XL"}
	for i, s := range stocks {
		p.Variants = append(p.Variants, Variant{
			Size:  sizes[i%len(sizes)],
			Price: decimal.NewFromInt(199),
			Stock: s,
		})
	}
	return p
}

func TestTotalStock(t *testing.T) {
	t.Run("flat product uses its own count", func(t *testing.T) {
		p := Product{Stock: 42}
		assert.Equal(t, 42, p.TotalStock())
	})

	t.Run("variant product sums variant stocks", func(t *testing.T) {
		p := variantProduct(3, 0, 7)
		assert.Equal(t, 10, p.TotalStock())
	})

	t.Run("flat count on a variant product is ignored", func(t *testing.T) {
		p := variantProduct(2, 2)
		p.Stock = 999
		assert.Equal(t, 4, p.TotalStock())
	})

	t.Run("variant product with no variants totals zero", func(t *testing.T) {
		p := Product{HasVariants: true, Stock: 50}
		assert.Equal(t, 0, p.TotalStock())
	})
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		want      enum.StockStatus
	}{
		{"zero is out", 0, 10, enum.StockOut},
		{"one is low", 1, 10, enum.StockLow},
		{"at threshold is low", 10, 10, enum.StockLow},
		{"above threshold is in stock", 11, 10, enum.StockIn},
		{"zero threshold falls back to default", 10, 0, enum.StockLow},
		{"negative threshold falls back to default", 11, -1, enum.StockIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Stock: tt.stock}
			assert.Equal(t, tt.want, p.StockStatus(tt.threshold))
		})
	}

	t.Run("variant product is judged by the aggregate", func(t *testing.T) {
		p := variantProduct(0, 0)
		assert.Equal(t, enum.StockOut, p.StockStatus(10))
	})
}

func TestUnitPrice(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(75)}
	v := Variant{Price: decimal.NewFromInt(199)}

	assert.True(t, p.UnitPrice(nil).Equal(decimal.NewFromInt(75)))
	assert.True(t, p.UnitPrice(&v).Equal(decimal.NewFromInt(199)))
}

func TestNewCartItemSnapshots(t *testing.T) {
	p := Product{Name: "Coca-Cola 1.5L", Price: decimal.NewFromInt(75)}
	item := NewCartItem(p, nil, 3)

	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(225)))

	// A later price change must not touch the captured line.
	p.Price = decimal.NewFromInt(100)
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(225)))
	assert.True(t, item.UnitPrice().Equal(decimal.NewFromInt(75)))
}

func TestNormalize(t *testing.T) {
	t.Run("derives the variant flag from the list", func(t *testing.T) {
		p := variantProduct(2, 3)
		p.HasVariants = false
		p.Stock = 0
		p.Normalize()
		assert.True(t, p.HasVariants)
		assert.Equal(t, 5, p.Stock)
	})

	t.Run("clears a stale flag on an empty list", func(t *testing.T) {
		p := Product{HasVariants: true, Stock: 7}
		p.Normalize()
		assert.False(t, p.HasVariants)
		assert.Equal(t, 7, p.Stock)
	})
}
