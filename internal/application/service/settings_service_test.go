package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/pkg/apperror"
)

func TestSettingsService(t *testing.T) {
	t.Run("defaults are present on first run", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		s := svc.Settings()
		assert.NotEmpty(t, s.BusinessName)
		assert.True(t, s.VATEnabled)
		assert.True(t, s.VATRate.Equal(decimal.NewFromFloat(0.12)))
		assert.Equal(t, 80, s.ReceiptWidth)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		before := svc.Settings()

		name := "Aling Nena's Store"
		footer := "Balik kayo!"
		updated, err := svc.UpdateSettings(UpdateSettingsInput{
			BusinessName:  &name,
			ReceiptFooter: &footer,
		})
		require.NoError(t, err)
		assert.Equal(t, name, updated.BusinessName)
		assert.Equal(t, footer, updated.ReceiptFooter)
		assert.Equal(t, before.Address, updated.Address)
		assert.Equal(t, before.TIN, updated.TIN)
		assert.True(t, updated.VATRate.Equal(before.VATRate))
	})

	t.Run("vat can be turned off", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		off := false
		updated, err := svc.UpdateSettings(UpdateSettingsInput{VATEnabled: &off})
		require.NoError(t, err)
		assert.False(t, updated.VATEnabled)
	})

	t.Run("vat rate is a fraction", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		rate := 0.08
		updated, err := svc.UpdateSettings(UpdateSettingsInput{VATRate: &rate})
		require.NoError(t, err)
		assert.True(t, updated.VATRate.Equal(decimal.NewFromFloat(0.08)))
	})

	t.Run("vat rate above 1 is rejected", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		rate := 12.0
		_, err := svc.UpdateSettings(UpdateSettingsInput{VATRate: &rate})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("receipt width bounds", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())

		tooNarrow := 5
		_, err := svc.UpdateSettings(UpdateSettingsInput{ReceiptWidth: &tooNarrow})
		assert.ErrorIs(t, err, apperror.ErrValidation)

		narrow := 42
		updated, err := svc.UpdateSettings(UpdateSettingsInput{ReceiptWidth: &narrow})
		require.NoError(t, err)
		assert.Equal(t, 42, updated.ReceiptWidth)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		bad := "not-an-email"
		_, err := svc.UpdateSettings(UpdateSettingsInput{Email: &bad})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("identity toggles", func(t *testing.T) {
		svc := NewSettingsService(newTestStore(t), zap.NewNop())
		off := false
		updated, err := svc.UpdateSettings(UpdateSettingsInput{
			ShowTIN:       &off,
			ShowBIRPermit: &off,
		})
		require.NoError(t, err)
		assert.False(t, updated.ShowTIN)
		assert.False(t, updated.ShowBIRPermit)
		assert.True(t, updated.ShowBusinessName)
	})
}
