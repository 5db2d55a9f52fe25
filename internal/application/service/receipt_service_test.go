package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

// capturePrinter records the last byte stream sent to it.
type capturePrinter struct {
	jobs      [][]byte
	connected bool
}

func (p *capturePrinter) Print(data []byte) error {
	p.jobs = append(p.jobs, data)
	return nil
}
func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return p.connected }

func TestReceiptServiceRender(t *testing.T) {
	store := newTestStore(t)
	p := seedFlatProduct(t, store, "Coca-Cola 1.5L", 75, 10)
	sales := NewSalesService(store, zap.NewNop())
	item, err := sales.BuildCartItem(p.ID, nil, 2)
	require.NoError(t, err)
	sale, err := sales.RecordSale(cashSale([]entity.CartItem{item}, 200))
	require.NoError(t, err)

	svc := NewReceiptService(store, &capturePrinter{}, zap.NewNop())

	t.Run("renders a recorded sale", func(t *testing.T) {
		out, err := svc.Render(sale.ID)
		require.NoError(t, err)
		assert.Contains(t, out, sale.ReceiptNumber)
		assert.Contains(t, out, "Coca-Cola 1.5L")
	})

	t.Run("reflects later settings changes on reprint", func(t *testing.T) {
		store.UpdateSettings(func(bs *entity.BusinessSettings) {
			bs.BusinessName = "Aling Nena's Store"
		})
		out, err := svc.Render(sale.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "Aling Nena's Store")
	})

	t.Run("unknown sale", func(t *testing.T) {
		_, err := svc.Render(utils.NewUUID())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestReceiptServicePrint(t *testing.T) {
	store := newTestStore(t)
	p := seedFlatProduct(t, store, "Coca-Cola 1.5L", 75, 10)
	sales := NewSalesService(store, zap.NewNop())
	item, err := sales.BuildCartItem(p.ID, nil, 2)
	require.NoError(t, err)
	sale, err := sales.RecordSale(cashSale([]entity.CartItem{item}, 200))
	require.NoError(t, err)

	printer := &capturePrinter{connected: true}
	svc := NewReceiptService(store, printer, zap.NewNop())

	t.Run("sends ESC/POS bytes", func(t *testing.T) {
		require.NoError(t, svc.Print(context.Background(), sale.ID))
		require.Len(t, printer.jobs, 1)

		job := printer.jobs[0]
		assert.Equal(t, []byte{0x1B, '@'}, job[:2], "job must start with printer init")
		assert.Contains(t, string(job), "Coca-Cola 1.5L")
		assert.Contains(t, string(job), sale.ReceiptNumber)
	})

	t.Run("unknown sale prints nothing", func(t *testing.T) {
		err := svc.Print(context.Background(), utils.NewUUID())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Len(t, printer.jobs, 1)
	})

	t.Run("status reports the transport", func(t *testing.T) {
		assert.True(t, svc.Status())
		printer.connected = false
		assert.False(t, svc.Status())
	})
}

func TestReceiptServiceTestPrint(t *testing.T) {
	store := newTestStore(t)
	printer := &capturePrinter{connected: true}
	svc := NewReceiptService(store, printer, zap.NewNop())

	require.NoError(t, svc.TestPrint(context.Background()))
	require.Len(t, printer.jobs, 1)
	assert.Contains(t, string(printer.jobs[0]), "Printer test page")
}
