package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/storage"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

func newTestStore(t *testing.T) *repository.DataStore {
	t.Helper()
	store := repository.NewDataStore(storage.NewMemoryKV(), zap.NewNop())
	store.Load()
	return store
}

func seedFlatProduct(t *testing.T, store *repository.DataStore, name string, price float64, stock int) entity.Product {
	t.Helper()
	return store.AddProduct(entity.Product{
		Name:     name,
		Category: "Beverages",
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
	})
}

func seedVariantProduct(t *testing.T, store *repository.DataStore, name string, stocks map[string]int) entity.Product {
	t.Helper()
	p := entity.Product{Name: name, Category: "Others", HasVariants: true}
	for size, stock := range stocks {
		p.Variants = append(p.Variants, entity.Variant{
			ID:    utils.NewUUID(),
			Size:  size,
			Price: decimal.NewFromInt(199),
			Stock: stock,
		})
	}
	return store.AddProduct(p)
}
