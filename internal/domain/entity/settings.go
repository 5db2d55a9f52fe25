package entity

import "github.com/shopspring/decimal"

// BusinessSettings is the singleton store identity and receipt
// configuration. It is persisted as a whole object and mutated via
// partial updates.
type BusinessSettings struct {
	BusinessName    string          `json:"businessName"`
	Address         string          `json:"address"`
	TIN             string          `json:"tin"`
	BIRPermitNumber string          `json:"birPermitNumber"`
	ContactNumber   string          `json:"contactNumber"`
	Email           string          `json:"email"`
	VATEnabled      bool            `json:"vatEnabled"`
	VATRate         decimal.Decimal `json:"vatRate"`

	ReceiptHeader string `json:"receiptHeader,omitempty"`
	ReceiptFooter string `json:"receiptFooter"`
	ReceiptWidth  int    `json:"receiptWidth"`

	ShowBusinessName  bool `json:"showBusinessName"`
	ShowAddress       bool `json:"showAddress"`
	ShowTIN           bool `json:"showTIN"`
	ShowBIRPermit     bool `json:"showBIRPermit"`
	ShowContactNumber bool `json:"showContactNumber"`
}

// DefaultReceiptWidth is the character width used when settings carry
// no explicit width.
const DefaultReceiptWidth = 80

// DefaultBusinessSettings returns the settings seeded on first run.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		BusinessName:      "BALANDZXC POS",
		Address:           "123 Barangay Street, Gabao, Irosin",
		TIN:               "123-456-789-000",
		BIRPermitNumber:   "FP-12345678",
		ContactNumber:     "+63 912 345 6789",
		Email:             "store@example.com",
		VATEnabled:        true,
		VATRate:           decimal.NewFromFloat(0.12),
		ReceiptFooter:     "Salamat sa inyong pagbili!",
		ReceiptWidth:      DefaultReceiptWidth,
		ShowBusinessName:  true,
		ShowAddress:       true,
		ShowTIN:           true,
		ShowBIRPermit:     true,
		ShowContactNumber: true,
	}
}

// DefaultCategories returns the category list seeded on first run.
func DefaultCategories() []string {
	return []string{
		"Beverages",
		"Snacks",
		"Instant Noodles",
		"Seasonings",
		"Personal Care",
		"Household",
		"Canned Goods",
		"Dairy",
		"Frozen",
		"Others",
	}
}
