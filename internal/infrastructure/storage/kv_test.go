package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	t.Run("round-trips a document", func(t *testing.T) {
		in := map[string]int{"coke": 50, "chips": 12}
		require.NoError(t, kv.Set("stock", in))

		var out map[string]int
		require.NoError(t, kv.Get("stock", &out))
		assert.Equal(t, in, out)
	})

	t.Run("missing key", func(t *testing.T) {
		var out map[string]int
		err := kv.Get("nope", &out)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("overwrites on set", func(t *testing.T) {
		require.NoError(t, kv.Set("n", 1))
		require.NoError(t, kv.Set("n", 2))

		var out int
		require.NoError(t, kv.Get("n", &out))
		assert.Equal(t, 2, out)
	})

	t.Run("close is a no-op", func(t *testing.T) {
		assert.NoError(t, kv.Close())
	})
}

func TestGetLeavesOutUntouchedOnDecodeFailure(t *testing.T) {
	kv := NewMemoryKV()

	// "businessName" decodes fine before "vatEnabled" fails; the target
	// must still come back exactly as it went in.
	require.NoError(t, kv.Set("settings", map[string]any{
		"businessName": "Corrupted Store",
		"vatEnabled":   "not-a-bool",
	}))

	type settings struct {
		BusinessName string `json:"businessName"`
		VATEnabled   bool   `json:"vatEnabled"`
	}
	out := settings{BusinessName: "Default Store", VATEnabled: true}

	err := kv.Get("settings", &out)
	require.Error(t, err)
	assert.Equal(t, "Default Store", out.BusinessName)
	assert.True(t, out.VATEnabled)
}
