package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeTag validates a three-letter currency code, case-insensitively.
const currencyCodeTag = "currency_code"

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by request DTOs to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation(currencyCodeTag, func(fl validator.FieldLevel) bool {
			return domain.NormalizeCurrencyCode(fl.Field().String()).Valid()
		})
	})
}

// describeBindingError turns validator failures into short per-field messages.
func describeBindingError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case currencyCodeTag:
			msgs = append(msgs, fmt.Sprintf("%s must be a 3-letter currency code", field))
		case "numeric":
			msgs = append(msgs, fmt.Sprintf("%s must be a decimal number", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
