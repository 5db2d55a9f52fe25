package utils

import (
	"fmt"
	"sync"
	"time"
)

// ReceiptNumberGenerator issues human-facing receipt numbers of the
// form R-<unix millis>. Same-millisecond sales get a -n suffix so two
// rapid checkouts can never collide, and a clock that steps backwards
// keeps issuing suffixed numbers off the last seen millisecond.
type ReceiptNumberGenerator struct {
	mu         sync.Mutex
	lastMillis int64
	seq        int
}

// NewReceiptNumberGenerator creates a generator.
func NewReceiptNumberGenerator() *ReceiptNumberGenerator {
	return &ReceiptNumberGenerator{}
}

// Next returns the receipt number for a sale recorded at now.
func (g *ReceiptNumberGenerator) Next(now time.Time) string {
	ms := now.UnixMilli()

	g.mu.Lock()
	defer g.mu.Unlock()

	if ms <= g.lastMillis {
		g.seq++
		return fmt.Sprintf("R-%d-%d", g.lastMillis, g.seq)
	}

	g.lastMillis = ms
	g.seq = 0
	return fmt.Sprintf("R-%d", ms)
}
