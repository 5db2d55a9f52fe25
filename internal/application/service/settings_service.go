package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
)

// SettingsService manages the store's business settings.
type SettingsService struct {
	store    *repository.DataStore
	validate *validator.Validate
	log      *zap.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store *repository.DataStore, log *zap.Logger) *SettingsService {
	return &SettingsService{
		store:    store,
		validate: validator.New(),
		log:      log.Named("settings"),
	}
}

// Settings returns the current business settings.
func (s *SettingsService) Settings() entity.BusinessSettings {
	return s.store.Settings()
}

// UpdateSettingsInput carries a partial settings edit; nil fields keep
// their current values.
type UpdateSettingsInput struct {
	BusinessName    *string
	Address         *string
	TIN             *string
	BIRPermitNumber *string
	ContactNumber   *string
	Email           *string `validate:"omitempty,email"`
	VATEnabled      *bool
	VATRate         *float64 `validate:"omitempty,gte=0,lte=1"`

	ReceiptHeader *string
	ReceiptFooter *string
	ReceiptWidth  *int `validate:"omitempty,gte=20,lte=120"`

	ShowBusinessName  *bool
	ShowAddress       *bool
	ShowTIN           *bool
	ShowBIRPermit     *bool
	ShowContactNumber *bool
}

// UpdateSettings applies a partial edit and returns the merged result.
// The VAT rate is a fraction (0.12 for 12%), not a percentage.
func (s *SettingsService) UpdateSettings(input UpdateSettingsInput) (entity.BusinessSettings, error) {
	if err := s.validate.Struct(input); err != nil {
		return entity.BusinessSettings{}, asValidationError(err)
	}
	if input.VATRate != nil && *input.VATRate < 0 {
		return entity.BusinessSettings{}, apperror.ErrInvalidRate
	}

	updated := s.store.UpdateSettings(func(bs *entity.BusinessSettings) {
		if input.BusinessName != nil {
			bs.BusinessName = *input.BusinessName
		}
		if input.Address != nil {
			bs.Address = *input.Address
		}
		if input.TIN != nil {
			bs.TIN = *input.TIN
		}
		if input.BIRPermitNumber != nil {
			bs.BIRPermitNumber = *input.BIRPermitNumber
		}
		if input.ContactNumber != nil {
			bs.ContactNumber = *input.ContactNumber
		}
		if input.Email != nil {
			bs.Email = *input.Email
		}
		if input.VATEnabled != nil {
			bs.VATEnabled = *input.VATEnabled
		}
		if input.VATRate != nil {
			bs.VATRate = decimal.NewFromFloat(*input.VATRate)
		}
		if input.ReceiptHeader != nil {
			bs.ReceiptHeader = *input.ReceiptHeader
		}
		if input.ReceiptFooter != nil {
			bs.ReceiptFooter = *input.ReceiptFooter
		}
		if input.ReceiptWidth != nil {
			bs.ReceiptWidth = *input.ReceiptWidth
		}
		if input.ShowBusinessName != nil {
			bs.ShowBusinessName = *input.ShowBusinessName
		}
		if input.ShowAddress != nil {
			bs.ShowAddress = *input.ShowAddress
		}
		if input.ShowTIN != nil {
			bs.ShowTIN = *input.ShowTIN
		}
		if input.ShowBIRPermit != nil {
			bs.ShowBIRPermit = *input.ShowBIRPermit
		}
		if input.ShowContactNumber != nil {
			bs.ShowContactNumber = *input.ShowContactNumber
		}
	})

	s.log.Info("settings updated", zap.String("business", updated.BusinessName))
	return updated, nil
}
