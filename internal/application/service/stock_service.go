package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
)

// StockService handles manual stock adjustments and stock-level
// reporting. All of its numbers come from the aggregate TotalStock, so
// variant products are never judged by their advisory flat count.
type StockService struct {
	store     *repository.DataStore
	validate  *validator.Validate
	threshold int
	log       *zap.Logger
}

// NewStockService creates a new stock service. threshold is the
// low-stock cutoff; zero or below falls back to the default.
func NewStockService(store *repository.DataStore, threshold int, log *zap.Logger) *StockService {
	if threshold <= 0 {
		threshold = entity.DefaultLowStockThreshold
	}
	return &StockService{
		store:     store,
		validate:  validator.New(),
		threshold: threshold,
		log:       log.Named("stock"),
	}
}

// AdjustStockInput is the input for a manual stock adjustment.
type AdjustStockInput struct {
	ProductID uuid.UUID           `validate:"required"`
	Quantity  int                 `validate:"gt=0"`
	Type      enum.AdjustmentType `validate:"oneof=add remove"`
	Reason    string              `validate:"required"`
	UserID    uuid.UUID           `validate:"required"`
	VariantID *uuid.UUID
}

// AdjustStock applies a signed stock change and appends its audit
// record. Removals clamp at zero; the record keeps the requested
// quantity either way.
func (s *StockService) AdjustStock(input AdjustStockInput) (entity.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return entity.Product{}, asValidationError(err)
	}

	product, adj, err := s.store.AdjustStock(
		input.ProductID, input.Quantity, input.Type,
		input.Reason, input.UserID, input.VariantID,
	)
	if err != nil {
		return entity.Product{}, err
	}

	s.log.Info("stock adjusted",
		zap.String("product", product.Name),
		zap.String("type", string(adj.Type)),
		zap.Int("quantity", adj.Quantity),
		zap.Int("totalStock", product.TotalStock()))
	return product, nil
}

// Adjustments returns the append-only audit log.
func (s *StockService) Adjustments() []entity.StockAdjustment {
	return s.store.StockAdjustments()
}

// StockStatus classifies one product's aggregate stock level.
func (s *StockService) StockStatus(productID uuid.UUID) (enum.StockStatus, error) {
	p, err := s.store.ProductByID(productID)
	if err != nil {
		return "", err
	}
	return p.StockStatus(s.threshold), nil
}

// LowStockProducts returns products whose aggregate stock is above
// zero but at or below the threshold.
func (s *StockService) LowStockProducts() []entity.Product {
	return s.filterByStatus(enum.StockLow)
}

// OutOfStockProducts returns products whose aggregate stock is zero,
// including variant products with no variants left.
func (s *StockService) OutOfStockProducts() []entity.Product {
	return s.filterByStatus(enum.StockOut)
}

func (s *StockService) filterByStatus(status enum.StockStatus) []entity.Product {
	matched := make([]entity.Product, 0)
	for _, p := range s.store.Products() {
		if p.StockStatus(s.threshold) == status {
			matched = append(matched, p)
		}
	}
	return matched
}

// VariantAlert flags a product whose individual variants are running
// low or out, independent of the healthy aggregate.
type VariantAlert struct {
	Product  entity.Product
	Status   enum.StockStatus
	Variants []entity.Variant
}

// VariantStockAlerts scans variant products for per-size trouble: a
// product can be comfortably in stock overall while one size is gone.
func (s *StockService) VariantStockAlerts() []VariantAlert {
	alerts := make([]VariantAlert, 0)
	for _, p := range s.store.Products() {
		if !p.HasVariants {
			continue
		}
		var low, out []entity.Variant
		for _, v := range p.Variants {
			switch {
			case v.Stock == 0:
				out = append(out, v)
			case v.Stock <= s.threshold:
				low = append(low, v)
			}
		}
		if len(low) > 0 {
			alerts = append(alerts, VariantAlert{Product: p, Status: enum.StockLow, Variants: low})
		}
		if len(out) > 0 {
			alerts = append(alerts, VariantAlert{Product: p, Status: enum.StockOut, Variants: out})
		}
	}
	return alerts
}
