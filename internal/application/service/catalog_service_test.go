package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

func TestCreateProduct(t *testing.T) {
	t.Run("flat product", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewCatalogService(store, zap.NewNop())

		p, err := svc.CreateProduct(CreateProductInput{
			Name:     "  Coca-Cola 1.5L ",
			Category: "Beverages",
			Price:    75,
			Stock:    24,
			Barcode:  "4800888101234",
		})
		require.NoError(t, err)
		assert.Equal(t, "Coca-Cola 1.5L", p.Name)
		assert.False(t, p.HasVariants)
		assert.Equal(t, 24, p.TotalStock())
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("variant product derives its aggregate", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewCatalogService(store, zap.NewNop())

		p, err := svc.CreateProduct(CreateProductInput{
			Name:     "Plain Shirt",
			Category: "Others",
			Variants: []VariantInput{
				{Size: "M", Price: 199, Stock: 5, Active: true},
				{Size: "L", Price: 219, Stock: 3, Active: true},
			},
		})
		require.NoError(t, err)
		assert.True(t, p.HasVariants)
		assert.Equal(t, 8, p.TotalStock())
		assert.Equal(t, 8, p.Stock)
		require.Len(t, p.Variants, 2)
		assert.NotEqual(t, p.Variants[0].ID, p.Variants[1].ID)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewCatalogService(store, zap.NewNop())

		_, err := svc.CreateProduct(CreateProductInput{Category: "Beverages", Price: 10})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewCatalogService(store, zap.NewNop())

		_, err := svc.CreateProduct(CreateProductInput{Name: "X", Category: "Beverages", Price: -1})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestUpdateProduct(t *testing.T) {
	store := newTestStore(t)
	svc := NewCatalogService(store, zap.NewNop())
	p := seedFlatProduct(t, store, "Coca-Cola 1.5L", 75, 10)

	t.Run("partial edit keeps other fields", func(t *testing.T) {
		newPrice := 80.0
		updated, err := svc.UpdateProduct(p.ID, UpdateProductInput{Price: &newPrice})
		require.NoError(t, err)
		assert.True(t, updated.Price.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, p.Name, updated.Name)
		assert.Equal(t, 10, updated.Stock)
	})

	t.Run("replacing variants flips the product to variant mode", func(t *testing.T) {
		variants := []VariantInput{{Size: "500ml", Price: 35, Stock: 12, Active: true}}
		updated, err := svc.UpdateProduct(p.ID, UpdateProductInput{Variants: &variants})
		require.NoError(t, err)
		assert.True(t, updated.HasVariants)
		assert.Equal(t, 12, updated.TotalStock())
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.UpdateProduct(utils.NewUUID(), UpdateProductInput{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestDeleteProductKeepsHistory(t *testing.T) {
	store := newTestStore(t)
	catalog := NewCatalogService(store, zap.NewNop())
	sales := NewSalesService(store, zap.NewNop())
	p := seedFlatProduct(t, store, "Coca-Cola 1.5L", 75, 10)

	item, err := sales.BuildCartItem(p.ID, nil, 1)
	require.NoError(t, err)
	_, err = sales.RecordSale(cashSale([]entity.CartItem{item}, 100))
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteProduct(p.ID))
	assert.Empty(t, catalog.Products())

	// Ledger still carries the snapshot.
	recorded := sales.Sales()
	require.Len(t, recorded, 1)
	assert.Equal(t, "Coca-Cola 1.5L", recorded[0].Items[0].Product.Name)
}

func TestSearchProducts(t *testing.T) {
	store := newTestStore(t)
	svc := NewCatalogService(store, zap.NewNop())
	seedFlatProduct(t, store, "Coca-Cola 1.5L", 75, 10)
	seedFlatProduct(t, store, "Lays Classic", 62.5, 10)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		found := svc.SearchProducts("coca")
		require.Len(t, found, 1)
		assert.Equal(t, "Coca-Cola 1.5L", found[0].Name)
	})

	t.Run("matches category", func(t *testing.T) {
		assert.Len(t, svc.SearchProducts("beverages"), 2)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, svc.SearchProducts("  "), 2)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, svc.SearchProducts("sardinas"))
	})
}

func TestProductByBarcode(t *testing.T) {
	store := newTestStore(t)
	svc := NewCatalogService(store, zap.NewNop())

	_, err := svc.CreateProduct(CreateProductInput{
		Name:     "Coca-Cola 1.5L",
		Category: "Beverages",
		Price:    75,
		Barcode:  "4800888101234",
	})
	require.NoError(t, err)

	shirt, err := svc.CreateProduct(CreateProductInput{
		Name:     "Plain Shirt",
		Category: "Others",
		Variants: []VariantInput{
			{Size: "M", Price: 199, Stock: 5, Barcode: "2000000000017", Active: true},
		},
	})
	require.NoError(t, err)

	t.Run("product barcode", func(t *testing.T) {
		p, err := svc.ProductByBarcode("4800888101234")
		require.NoError(t, err)
		assert.Equal(t, "Coca-Cola 1.5L", p.Name)
	})

	t.Run("variant barcode resolves the parent", func(t *testing.T) {
		p, err := svc.ProductByBarcode("2000000000017")
		require.NoError(t, err)
		assert.Equal(t, shirt.ID, p.ID)
	})

	t.Run("unknown barcode", func(t *testing.T) {
		_, err := svc.ProductByBarcode("0000000000000")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestCategoryManagement(t *testing.T) {
	store := newTestStore(t)
	svc := NewCatalogService(store, zap.NewNop())

	require.NoError(t, svc.AddCategory("Pet Supplies"))
	assert.Contains(t, svc.Categories(), "Pet Supplies")

	t.Run("duplicate conflicts", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddCategory("Pet Supplies"), apperror.ErrConflict)
	})

	t.Run("rename propagates to products", func(t *testing.T) {
		p := seedFlatProduct(t, store, "Coca-Cola 1.5L", 75, 10)
		require.NoError(t, svc.RenameCategory("Beverages", "Drinks"))

		updated, err := svc.Product(p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Drinks", updated.Category)
	})

	t.Run("delete refuses while in use", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteCategory("Drinks"), apperror.ErrConflict)
		assert.NoError(t, svc.DeleteCategory("Pet Supplies"))
	})
}
