package validation

import (
	"reflect"
	"regexp"
	"strings"

	"ledgerview/internal/models"
	"ledgerview/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("nonzero_amount", validateNonZeroAmount)
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("row_type_filter", validateRowTypeFilter)
	_ = v.RegisterValidation("sort_field", validateSortField)
	_ = v.RegisterValidation("sort_order", validateSortOrder)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateNonZeroAmount validates that a string amount parses to a non-zero
// decimal. Zero-amount transactions are rejected before reaching the backend.
func validateNonZeroAmount(fl validator.FieldLevel) bool {
	text := strings.TrimSpace(fl.Field().String())
	if text == "" {
		return false
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return false
	}

	return !amount.IsZero()
}

// validateCurrencyCode validates an ISO-4217 style three-letter code
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	matched, _ := regexp.MatchString(`^[A-Za-z]{3}$`, code)
	return matched
}

// validateRowTypeFilter validates a dashboard type filter: a row type tag or "all"
func validateRowTypeFilter(fl validator.FieldLevel) bool {
	filter := fl.Field().String()
	return filter == "all" || models.IsValidRowType(filter)
}

// validateSortField validates a dashboard sort field
func validateSortField(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case services.SortByName, services.SortByType, services.SortByBalance, services.SortByUpdated:
		return true
	default:
		return false
	}
}

// validateSortOrder validates a sort direction
func validateSortOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case services.SortAsc, services.SortDesc:
		return true
	default:
		return false
	}
}
