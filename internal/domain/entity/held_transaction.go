package entity

import (
	"time"

	"github.com/google/uuid"
)

// HeldTransaction is a parked cart waiting to be resumed at the
// terminal. Retrieval removes it.
type HeldTransaction struct {
	ID        uuid.UUID  `json:"id"`
	Items     []CartItem `json:"items"`
	Note      string     `json:"note,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
