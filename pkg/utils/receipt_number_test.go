package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiptNumberGenerator(t *testing.T) {
	base := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	ms := base.UnixMilli()

	t.Run("plain number for a fresh millisecond", func(t *testing.T) {
		g := NewReceiptNumberGenerator()
		assert.Equal(t, fmt.Sprintf("R-%d", ms), g.Next(base))
	})

	t.Run("same millisecond gets a suffix", func(t *testing.T) {
		g := NewReceiptNumberGenerator()
		first := g.Next(base)
		second := g.Next(base)
		third := g.Next(base)
		assert.Equal(t, fmt.Sprintf("R-%d", ms), first)
		assert.Equal(t, fmt.Sprintf("R-%d-1", ms), second)
		assert.Equal(t, fmt.Sprintf("R-%d-2", ms), third)
	})

	t.Run("clock stepping backwards keeps numbers unique", func(t *testing.T) {
		g := NewReceiptNumberGenerator()
		first := g.Next(base)
		second := g.Next(base.Add(-time.Second))
		assert.NotEqual(t, first, second)
		assert.Equal(t, fmt.Sprintf("R-%d-1", ms), second)
	})

	t.Run("new millisecond resets the suffix", func(t *testing.T) {
		g := NewReceiptNumberGenerator()
		g.Next(base)
		g.Next(base)
		next := g.Next(base.Add(time.Millisecond))
		assert.Equal(t, fmt.Sprintf("R-%d", ms+1), next)
	})

	t.Run("concurrent checkouts never collide", func(t *testing.T) {
		g := NewReceiptNumberGenerator()
		const n = 50
		results := make(chan string, n)
		for i := 0; i < n; i++ {
			go func() {
				results <- g.Next(base)
			}()
		}
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			num := <-results
			assert.False(t, seen[num], "duplicate receipt number %s", num)
			seen[num] = true
		}
	})
}
