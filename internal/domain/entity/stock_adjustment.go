package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
)

// StockAdjustment is one append-only audit record of a stock change.
// Quantity is the requested amount, not the applied delta: a remove
// that clamped at zero still records what was asked for, so oversells
// stay visible in the log. The product reference is by ID only; the
// record outlives a deleted product.
type StockAdjustment struct {
	ID          uuid.UUID           `json:"id"`
	ProductID   uuid.UUID           `json:"productId"`
	ProductName string              `json:"productName"`
	VariantID   *uuid.UUID          `json:"variantId,omitempty"`
	Type        enum.AdjustmentType `json:"adjustmentType"`
	Quantity    int                 `json:"quantity"`
	Reason      string              `json:"reason"`
	UserID      uuid.UUID           `json:"userId"`
	Timestamp   time.Time           `json:"timestamp"`
}
