package handlers

import (
	"fmt"

	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeTag validates a currency code: at least three ASCII letters, any case.
const currencyCodeTag = "currency_code"

// RegisterValidators installs the custom binding validations used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation(currencyCodeTag, validateCurrencyCode)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) < domain.MinCurrencyCodeLength {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
