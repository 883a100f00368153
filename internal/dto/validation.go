package dto

import (
	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// YearMonthValidatorTag is the binding tag for "YYYY-MM" strings.
const YearMonthValidatorTag = "yearmonth"

// ValidateYearMonth accepts strict "YYYY-MM" strings.
func ValidateYearMonth(fl validator.FieldLevel) bool {
	_, err := domain.ParseYearMonth(fl.Field().String())
	return err == nil
}

// RegisterValidators adds the custom binding validators to v.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation(YearMonthValidatorTag, ValidateYearMonth)
}
