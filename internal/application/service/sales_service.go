package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/money"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

// SalesService turns finalized carts into immutable sales: it computes
// the totals from the cart snapshots, validates the payment, assigns
// the receipt number and commits stock effects and ledger entry as one
// unit.
type SalesService struct {
	store    *repository.DataStore
	validate *validator.Validate
	receipts *utils.ReceiptNumberGenerator
	log      *zap.Logger
}

// NewSalesService creates a new sales service.
func NewSalesService(store *repository.DataStore, log *zap.Logger) *SalesService {
	return &SalesService{
		store:    store,
		validate: validator.New(),
		receipts: utils.NewReceiptNumberGenerator(),
		log:      log.Named("sales"),
	}
}

// BuildCartItem snapshots a live product (and optional variant) into a
// cart line at add-to-cart time. The price captured here is the one
// the sale settles at, whatever the catalog does afterwards.
func (s *SalesService) BuildCartItem(productID uuid.UUID, variantID *uuid.UUID, quantity int) (entity.CartItem, error) {
	if quantity <= 0 {
		return entity.CartItem{}, apperror.NewBadRequestError("Quantity must be positive")
	}
	product, err := s.store.ProductByID(productID)
	if err != nil {
		return entity.CartItem{}, err
	}
	var variant *entity.Variant
	if variantID != nil {
		variant = product.FindVariant(*variantID)
		if variant == nil {
			return entity.CartItem{}, apperror.NewNotFoundError("Variant")
		}
	}
	return entity.NewCartItem(product, variant, quantity), nil
}

// RecordSaleInput is the input for recording a finalized cart.
type RecordSaleInput struct {
	Items           []entity.CartItem
	PaymentMethod   enum.PaymentMethod `validate:"oneof=cash card gcash"`
	AmountReceived  float64            `validate:"gte=0"`
	Discount        float64            `validate:"gte=0"`
	DiscountType    enum.DiscountType  `validate:"oneof=percentage fixed"`
	ReferenceNumber string
	CashierID       uuid.UUID `validate:"required"`
	CashierName     string    `validate:"required"`
}

// RecordSale validates the cart and payment, computes
// subtotal/discount/VAT from the line snapshots, then commits the sale
// and its stock decrements together. Nothing is mutated on any
// rejection.
func (s *SalesService) RecordSale(input RecordSaleInput) (entity.Sale, error) {
	if len(input.Items) == 0 {
		return entity.Sale{}, apperror.ErrEmptyCart
	}
	if err := s.validate.Struct(input); err != nil {
		return entity.Sale{}, asValidationError(err)
	}

	subtotal := decimal.Zero
	for _, item := range input.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}

	// DiscountAmount guarantees the result never exceeds the subtotal.
	discountAmt, err := money.DiscountAmount(subtotal, decimal.NewFromFloat(input.Discount), input.DiscountType)
	if err != nil {
		return entity.Sale{}, err
	}

	// Prices are VAT-inclusive: the discounted subtotal is the amount
	// charged, and the VAT line is derived out of it, not added on top.
	total := subtotal.Sub(discountAmt)
	settings := s.store.Settings()
	vatAmount := decimal.Zero
	if settings.VATEnabled {
		_, vat, err := money.VATExclusiveSplit(total, settings.VATRate)
		if err != nil {
			return entity.Sale{}, err
		}
		vatAmount = vat
	}

	received := decimal.NewFromFloat(input.AmountReceived)
	change := decimal.Zero
	if input.PaymentMethod.IsCash() {
		if received.LessThan(total) {
			return entity.Sale{}, apperror.ErrInsufficientPayment
		}
		change = received.Sub(total)
	} else {
		if input.ReferenceNumber == "" {
			return entity.Sale{}, apperror.ErrReferenceRequired
		}
		if !received.Equal(total) {
			return entity.Sale{}, apperror.NewBadRequestError("Non-cash payment must match the total exactly")
		}
	}

	now := time.Now()
	sale := entity.Sale{
		ID:              utils.NewUUID(),
		ReceiptNumber:   s.receipts.Next(now),
		Timestamp:       now,
		CashierID:       input.CashierID,
		CashierName:     input.CashierName,
		Items:           input.Items,
		Subtotal:        subtotal,
		Discount:        discountAmt,
		DiscountType:    input.DiscountType,
		VATAmount:       vatAmount,
		Total:           total,
		PaymentMethod:   input.PaymentMethod,
		AmountReceived:  received,
		Change:          change,
		ReferenceNumber: input.ReferenceNumber,
	}

	return s.store.CommitSale(sale)
}

// Sales returns the full ledger.
func (s *SalesService) Sales() []entity.Sale {
	return s.store.Sales()
}

// SalesByDate returns the sales recorded on the given calendar day.
func (s *SalesService) SalesByDate(date time.Time) []entity.Sale {
	y, m, d := date.Date()
	matched := make([]entity.Sale, 0)
	for _, sale := range s.store.Sales() {
		sy, sm, sd := sale.Timestamp.Date()
		if sy == y && sm == m && sd == d {
			matched = append(matched, sale)
		}
	}
	return matched
}

// TodaySales returns the sales recorded today.
func (s *SalesService) TodaySales() []entity.Sale {
	return s.SalesByDate(time.Now())
}

// HoldTransaction parks a cart so the terminal can serve the next
// customer; no totals are computed and no stock moves.
func (s *SalesService) HoldTransaction(items []entity.CartItem, note string) (entity.HeldTransaction, error) {
	if len(items) == 0 {
		return entity.HeldTransaction{}, apperror.ErrEmptyCart
	}
	return s.store.Hold(entity.HeldTransaction{Items: items, Note: note}), nil
}

// HeldTransactions lists parked carts.
func (s *SalesService) HeldTransactions() []entity.HeldTransaction {
	return s.store.HeldTransactions()
}

// RetrieveHeldTransaction removes a parked cart and hands its items
// back to the terminal.
func (s *SalesService) RetrieveHeldTransaction(id uuid.UUID) ([]entity.CartItem, error) {
	return s.store.RetrieveHeld(id)
}
