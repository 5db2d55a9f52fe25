package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/application/service"
	"github.com/balandzxc/tindahan-pos/internal/config"
	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/storage"
	"github.com/balandzxc/tindahan-pos/pkg/logger"
	"github.com/balandzxc/tindahan-pos/pkg/money"
	"github.com/balandzxc/tindahan-pos/pkg/printer"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	zlog := logger.NewForEnvironment(cfg.App.Env, cfg.Log.Level)
	defer zlog.Sync()

	// Open local storage
	var kv storage.KV
	var err error
	switch cfg.Storage.Driver {
	case "memory":
		kv = storage.NewMemoryKV()
	case "sqlite", "":
		kv, err = storage.NewSQLiteKV(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open storage at %s: %v", cfg.Storage.Path, err)
		}
	default:
		log.Fatalf("Unknown storage driver %q (use sqlite or memory)", cfg.Storage.Driver)
	}
	defer kv.Close()

	// Load all POS state into memory
	store := repository.NewDataStore(kv, zlog)
	store.Load()

	// Initialize printer transport
	prn, err := printer.New(printer.Config{
		Type:       cfg.Printer.Type,
		DevicePath: cfg.Printer.USBPath,
		Address:    cfg.Printer.Address,
	})
	if err != nil {
		log.Fatalf("Failed to initialize printer: %v", err)
	}
	defer prn.Close()

	// Initialize session token manager
	tokens := utils.NewTokenManager(cfg.Session.Secret, cfg.Session.Expiry)

	// Initialize services
	catalogService := service.NewCatalogService(store, zlog)
	stockService := service.NewStockService(store, cfg.Stock.LowStockThreshold, zlog)
	salesService := service.NewSalesService(store, zlog)
	settingsService := service.NewSettingsService(store, zlog)
	userService := service.NewUserService(store, tokens, zlog)
	reportService := service.NewReportService(store, zlog)
	receiptService := service.NewReceiptService(store, prn, zlog)

	// First run: seed the default admin so the terminal is usable
	if len(userService.Users()) == 0 {
		if _, err := userService.AddUser(service.AddUserInput{
			Name:     "Administrator",
			Username: "admin",
			PIN:      "1234",
			Role:     entity.RoleAdmin,
		}); err != nil {
			zlog.Warn("failed to seed default admin", zap.Error(err))
		} else {
			zlog.Info("seeded default admin user (admin / 1234), change the PIN")
		}
	}

	app := &application{
		catalog:  catalogService,
		stock:    stockService,
		sales:    salesService,
		settings: settingsService,
		reports:  reportService,
		receipts: receiptService,
	}
	if err := app.run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type application struct {
	catalog  *service.CatalogService
	stock    *service.StockService
	sales    *service.SalesService
	settings *service.SettingsService
	reports  *service.ReportService
	receipts *service.ReceiptService
}

func (a *application) run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "products":
		for _, p := range a.catalog.Products() {
			fmt.Printf("%-36s %-30s %-15s %10s  stock %d\n",
				p.ID, p.Name, p.Category, money.Format(p.Price), p.TotalStock())
		}
	case "low-stock":
		for _, p := range a.stock.LowStockProducts() {
			fmt.Printf("%-30s stock %d\n", p.Name, p.TotalStock())
		}
		for _, p := range a.stock.OutOfStockProducts() {
			fmt.Printf("%-30s OUT OF STOCK\n", p.Name)
		}
	case "sales-today":
		for _, s := range a.sales.TodaySales() {
			fmt.Printf("%-20s %-10s %12s  %s\n",
				s.ReceiptNumber, s.PaymentMethod, money.Format(s.Total),
				s.Timestamp.Format("03:04 PM"))
		}
		summary := a.reports.DailySalesTotal(time.Now())
		fmt.Printf("\n%d transactions, net sales %s\n",
			summary.TransactionCount, money.Format(summary.NetSales))
	case "settings":
		s := a.settings.Settings()
		fmt.Printf("%s\n%s\nTIN %s  VAT %s\n",
			s.BusinessName, s.Address, s.TIN, s.VATRate.String())
	case "printer-status":
		if a.receipts.Status() {
			fmt.Println("Printer: connected")
		} else {
			fmt.Println("Printer: not connected")
		}
	case "test-print":
		return a.receipts.TestPrint(context.Background())
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func usage() {
	fmt.Println(`tindahan-pos <command>

Commands:
  products        list the catalog
  low-stock       list low and out-of-stock products
  sales-today     list today's sales with the daily summary
  settings        show the business settings
  printer-status  check the receipt printer connection
  test-print      print a printer test page`)
}
