package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/money"
	"github.com/balandzxc/tindahan-pos/pkg/printer"
	"github.com/balandzxc/tindahan-pos/pkg/receipt"
)

// ReceiptService renders recorded sales as receipt text and drives the
// thermal printer. Print jobs are paced so a reprint mash cannot flood
// the device buffer mid-cut.
type ReceiptService struct {
	store   *repository.DataStore
	printer printer.Printer
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewReceiptService creates a new receipt service over the given
// printer transport.
func NewReceiptService(store *repository.DataStore, p printer.Printer, log *zap.Logger) *ReceiptService {
	return &ReceiptService{
		store:   store,
		printer: p,
		// One job per 2 seconds, one queued reprint allowed.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		log:     log.Named("receipts"),
	}
}

// Render formats a recorded sale as fixed-width receipt text using the
// current business settings.
func (s *ReceiptService) Render(saleID uuid.UUID) (string, error) {
	sale, err := s.saleByID(saleID)
	if err != nil {
		return "", err
	}
	return receipt.Render(sale, s.store.Settings()), nil
}

// RenderSale formats an already-resolved sale; reprints after lookups
// elsewhere skip the second ledger scan.
func (s *ReceiptService) RenderSale(sale entity.Sale) string {
	return receipt.Render(sale, s.store.Settings())
}

// Print renders a sale to ESC/POS and sends it to the printer. The
// call blocks on the pacing limiter until its slot comes up or ctx is
// done.
func (s *ReceiptService) Print(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.saleByID(saleID)
	if err != nil {
		return err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	doc := s.buildDocument(sale, s.store.Settings())
	if err := s.printer.Print(doc.Bytes()); err != nil {
		s.log.Error("print failed", zap.String("receipt", sale.ReceiptNumber), zap.Error(err))
		return err
	}
	s.log.Info("receipt printed", zap.String("receipt", sale.ReceiptNumber))
	return nil
}

// Status reports whether the printer is reachable.
func (s *ReceiptService) Status() bool {
	return s.printer.IsConnected()
}

// TestPrint sends a short alignment page so the operator can verify
// paper width and cutter behavior without recording a sale.
func (s *ReceiptService) TestPrint(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	settings := s.store.Settings()
	doc := printer.NewDocument(paperWidth(settings))
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(settings.BusinessName).
		SetBold(false).
		Text("Printer test page").
		Separator('-').
		SetAlign(printer.AlignLeft).
		KeyValue("Width", "OK").
		KeyValue("Cutter", "OK").
		FeedLines(3).
		Cut()
	return s.printer.Print(doc.Bytes())
}

func (s *ReceiptService) saleByID(id uuid.UUID) (entity.Sale, error) {
	for _, sale := range s.store.Sales() {
		if sale.ID == id {
			return sale, nil
		}
	}
	return entity.Sale{}, apperror.NewNotFoundError("Sale")
}

// paperWidth maps the configured receipt character width onto the two
// thermal paper sizes.
func paperWidth(settings entity.BusinessSettings) int {
	if settings.ReceiptWidth >= entity.DefaultReceiptWidth {
		return printer.Width80mm
	}
	return printer.Width58mm
}

// buildDocument lays the sale out as ESC/POS, mirroring the text
// renderer's field order on narrower thermal paper.
func (s *ReceiptService) buildDocument(sale entity.Sale, settings entity.BusinessSettings) *printer.Document {
	doc := printer.NewDocument(paperWidth(settings))

	doc.SetAlign(printer.AlignCenter)
	if settings.ReceiptHeader != "" {
		doc.Text(settings.ReceiptHeader)
	}
	if settings.ShowBusinessName {
		doc.SetBold(true).SetFontSize(printer.FontDouble).
			Text(settings.BusinessName).
			SetFontSize(printer.FontNormal).SetBold(false)
	}
	if settings.ShowAddress {
		doc.Text(settings.Address)
	}
	if settings.ShowTIN {
		doc.Text("TIN: " + settings.TIN)
	}
	if settings.ShowBIRPermit {
		doc.Text("BIR Permit: " + settings.BIRPermitNumber)
	}
	if settings.ShowContactNumber {
		doc.Text("Contact: " + settings.ContactNumber)
	}
	doc.LineFeed()

	doc.SetAlign(printer.AlignLeft)
	doc.KeyValue("Receipt #", sale.ReceiptNumber)
	doc.KeyValue("Date", sale.Timestamp.Format("01/02/2006 03:04 PM"))
	doc.KeyValue("Cashier", sale.CashierName)
	doc.Separator('=')

	for _, item := range sale.Items {
		name := item.Product.Name
		if item.Variant != nil {
			name += " (" + item.Variant.Size + ")"
		}
		doc.ItemLine(item.Quantity, name, money.Format(item.Subtotal))
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal", money.Format(sale.Subtotal))
	if sale.Discount.IsPositive() {
		doc.KeyValue("Discount", money.Format(sale.Discount))
	}
	doc.KeyValue("VAT", money.Format(sale.VATAmount))
	doc.Separator('=')
	doc.SetBold(true).KeyValue("TOTAL", money.Format(sale.Total)).SetBold(false)
	doc.LineFeed()

	doc.KeyValue("Payment", sale.PaymentMethod.Display())
	if !sale.PaymentMethod.IsCash() && sale.ReferenceNumber != "" {
		doc.KeyValue("Reference", sale.ReferenceNumber)
	}
	doc.KeyValue("Received", money.Format(sale.AmountReceived))
	doc.KeyValue("Change", money.Format(sale.Change))
	doc.LineFeed()

	doc.SetAlign(printer.AlignCenter)
	doc.Text(settings.ReceiptFooter)
	doc.Text("Thank you for your business!")
	doc.FeedLines(3)
	doc.Cut()
	return doc
}
