package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
)

// ReportService derives sales figures from the ledger. Everything here
// is a pure fold over recorded sales; nothing is cached or mutated.
type ReportService struct {
	store *repository.DataStore
	log   *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(store *repository.DataStore, log *zap.Logger) *ReportService {
	return &ReportService{store: store, log: log.Named("reports")}
}

// DailySummary aggregates one calendar day of sales.
type DailySummary struct {
	Date             time.Time
	TransactionCount int
	GrossSales       decimal.Decimal
	TotalDiscount    decimal.Decimal
	TotalVAT         decimal.Decimal
	NetSales         decimal.Decimal
	ByPaymentMethod  map[enum.PaymentMethod]decimal.Decimal
}

// DailySalesTotal sums the sales recorded on the given calendar day.
func (s *ReportService) DailySalesTotal(date time.Time) DailySummary {
	y, m, d := date.Date()
	summary := DailySummary{
		Date:            time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		GrossSales:      decimal.Zero,
		TotalDiscount:   decimal.Zero,
		TotalVAT:        decimal.Zero,
		NetSales:        decimal.Zero,
		ByPaymentMethod: make(map[enum.PaymentMethod]decimal.Decimal),
	}

	for _, sale := range s.store.Sales() {
		sy, sm, sd := sale.Timestamp.Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		summary.TransactionCount++
		summary.GrossSales = summary.GrossSales.Add(sale.Subtotal)
		summary.TotalDiscount = summary.TotalDiscount.Add(sale.Discount)
		summary.TotalVAT = summary.TotalVAT.Add(sale.VATAmount)
		summary.NetSales = summary.NetSales.Add(sale.Total)

		current, ok := summary.ByPaymentMethod[sale.PaymentMethod]
		if !ok {
			current = decimal.Zero
		}
		summary.ByPaymentMethod[sale.PaymentMethod] = current.Add(sale.Total)
	}
	return summary
}

// MonthlyRevenue sums sale totals for the given month.
func (s *ReportService) MonthlyRevenue(year int, month time.Month) decimal.Decimal {
	revenue := decimal.Zero
	for _, sale := range s.store.Sales() {
		if sale.Timestamp.Year() == year && sale.Timestamp.Month() == month {
			revenue = revenue.Add(sale.Total)
		}
	}
	return revenue
}

// ProductSales is one row of the top-sellers report.
type ProductSales struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// TopSellingProducts ranks products by line revenue across the whole
// ledger, highest first, capped at limit. Variant lines roll up into
// their parent product.
func (s *ReportService) TopSellingProducts(limit int) []ProductSales {
	byProduct := make(map[uuid.UUID]*ProductSales)
	order := make([]uuid.UUID, 0)

	for _, sale := range s.store.Sales() {
		for _, item := range sale.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &ProductSales{
					ProductID:   item.ProductID,
					ProductName: item.Product.Name,
					Revenue:     decimal.Zero,
				}
				byProduct[item.ProductID] = row
				order = append(order, item.ProductID)
			}
			row.QuantitySold += item.Quantity
			row.Revenue = row.Revenue.Add(item.Subtotal)
		}
	}

	rows := make([]ProductSales, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byProduct[id])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
