package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/balandzxc/tindahan-pos/pkg/apperror"
)

// asValidationError converts validator output into the application's
// field-level validation error.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewBadRequestError(err.Error())
	}
	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: "failed on " + fe.Tag(),
		})
	}
	return apperror.NewValidationError(fields)
}
