package apperror

import "errors"

// AppError is an application error with a stable machine-readable code.
type AppError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches AppErrors by code, so errors.Is works against the
// sentinels below even when the message was customized.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Common errors
var (
	ErrNotFound            = &AppError{Code: "NOT_FOUND", Message: "Resource not found"}
	ErrValidation          = &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	ErrEmptyCart           = &AppError{Code: "EMPTY_CART", Message: "Cart is empty"}
	ErrInvalidDiscount     = &AppError{Code: "INVALID_DISCOUNT", Message: "Discount exceeds subtotal"}
	ErrInvalidRate         = &AppError{Code: "INVALID_RATE", Message: "VAT rate cannot be negative"}
	ErrInsufficientPayment = &AppError{Code: "INSUFFICIENT_PAYMENT", Message: "Amount received is less than the total"}
	ErrReferenceRequired   = &AppError{Code: "REFERENCE_REQUIRED", Message: "Payment reference number is required"}
	ErrInvalidCredentials  = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or PIN"}
	ErrConflict            = &AppError{Code: "CONFLICT", Message: "Resource already exists"}
	ErrStorage             = &AppError{Code: "STORAGE_ERROR", Message: "Persistence failure"}
)

// NewAppError creates a new application error
func NewAppError(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    ErrValidation.Code,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound.Code,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrConflict.Code,
		Message: message,
	}
}

// NewBadRequestError creates a validation error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrValidation.Code,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    "INTERNAL",
		Message: err.Error(),
	}
}
