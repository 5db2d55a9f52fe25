package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

// CatalogService handles product and category management.
type CatalogService struct {
	store    *repository.DataStore
	validate *validator.Validate
	log      *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *repository.DataStore, log *zap.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		validate: validator.New(),
		log:      log.Named("catalog"),
	}
}

// VariantInput describes one size variant on create/update.
type VariantInput struct {
	Size    string  `validate:"required"`
	Price   float64 `validate:"gte=0"`
	Stock   int     `validate:"gte=0"`
	Barcode string
	Active  bool
}

// CreateProductInput is the input for creating a product.
type CreateProductInput struct {
	Name     string  `validate:"required"`
	Category string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Cost     *float64
	Stock    int `validate:"gte=0"`
	Barcode  string
	Variants []VariantInput `validate:"dive"`
}

// CreateProduct adds a product to the catalog. Passing variants makes
// it a variant product; its aggregate stock is derived from them.
func (s *CatalogService) CreateProduct(input CreateProductInput) (entity.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return entity.Product{}, asValidationError(err)
	}

	p := entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Price:       decimal.NewFromFloat(input.Price),
		Stock:       input.Stock,
		Barcode:     input.Barcode,
		HasVariants: len(input.Variants) > 0,
	}
	if input.Cost != nil {
		c := decimal.NewFromFloat(*input.Cost)
		p.Cost = &c
	}
	for _, v := range input.Variants {
		p.Variants = append(p.Variants, entity.Variant{
			ID:      utils.NewUUID(),
			Size:    v.Size,
			Price:   decimal.NewFromFloat(v.Price),
			Stock:   v.Stock,
			Barcode: v.Barcode,
			Active:  v.Active,
		})
	}

	created := s.store.AddProduct(p)
	s.log.Info("product created",
		zap.String("id", created.ID.String()),
		zap.String("name", created.Name),
		zap.Bool("hasVariants", created.HasVariants))
	return created, nil
}

// UpdateProductInput carries a partial product edit; nil fields are
// left unchanged. Variants, when present, replace the whole list.
type UpdateProductInput struct {
	Name     *string
	Category *string
	Price    *float64
	Cost     *float64
	Stock    *int
	Barcode  *string
	Variants *[]VariantInput
}

// UpdateProduct applies a partial edit. Stock edits through this path
// are catalog corrections; operational stock changes belong to the
// stock adjuster so they land in the audit log.
func (s *CatalogService) UpdateProduct(id uuid.UUID, input UpdateProductInput) (entity.Product, error) {
	return s.store.UpdateProduct(id, func(p *entity.Product) error {
		if input.Name != nil {
			p.Name = strings.TrimSpace(*input.Name)
		}
		if input.Category != nil {
			p.Category = strings.TrimSpace(*input.Category)
		}
		if input.Price != nil {
			p.Price = decimal.NewFromFloat(*input.Price)
		}
		if input.Cost != nil {
			c := decimal.NewFromFloat(*input.Cost)
			p.Cost = &c
		}
		if input.Stock != nil && !p.HasVariants {
			p.Stock = *input.Stock
		}
		if input.Barcode != nil {
			p.Barcode = *input.Barcode
		}
		if input.Variants != nil {
			variants := make([]entity.Variant, 0, len(*input.Variants))
			for _, v := range *input.Variants {
				variants = append(variants, entity.Variant{
					ID:      utils.NewUUID(),
					Size:    v.Size,
					Price:   decimal.NewFromFloat(v.Price),
					Stock:   v.Stock,
					Barcode: v.Barcode,
					Active:  v.Active,
				})
			}
			p.Variants = variants
			p.HasVariants = len(variants) > 0
		}
		return nil
	})
}

// DeleteProduct removes a product from the catalog only; historical
// sales and adjustments keep their snapshots.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	return s.store.DeleteProduct(id)
}

// Products returns the full catalog.
func (s *CatalogService) Products() []entity.Product {
	return s.store.Products()
}

// Product returns one product by ID.
func (s *CatalogService) Product(id uuid.UUID) (entity.Product, error) {
	return s.store.ProductByID(id)
}

// SearchProducts matches the query against name, category and barcode.
// An empty query returns the whole catalog.
func (s *CatalogService) SearchProducts(query string) []entity.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	products := s.store.Products()
	if q == "" {
		return products
	}
	matched := make([]entity.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			(p.Barcode != "" && strings.Contains(p.Barcode, strings.TrimSpace(query))) {
			matched = append(matched, p)
		}
	}
	return matched
}

// ProductByBarcode resolves a scanned barcode to a product, checking
// variant barcodes too.
func (s *CatalogService) ProductByBarcode(barcode string) (entity.Product, error) {
	for _, p := range s.store.Products() {
		if p.Barcode == barcode {
			return p, nil
		}
		for _, v := range p.Variants {
			if v.Barcode != "" && v.Barcode == barcode {
				return p, nil
			}
		}
	}
	return entity.Product{}, apperror.NewNotFoundError("Product")
}

// Categories returns the category list.
func (s *CatalogService) Categories() []string {
	return s.store.Categories()
}

// AddCategory appends a new category.
func (s *CatalogService) AddCategory(name string) error {
	return s.store.AddCategory(name)
}

// RenameCategory renames a category, relabelling its products.
func (s *CatalogService) RenameCategory(oldName, newName string) error {
	return s.store.RenameCategory(oldName, newName)
}

// DeleteCategory removes an unused category.
func (s *CatalogService) DeleteCategory(name string) error {
	return s.store.DeleteCategory(name)
}
