package handlers

import (
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator:
// dgt0 and dgte0 for decimal amounts, reason for free-text justifications.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("dgt0", decimalGreaterThanZero)
		_ = v.RegisterValidation("dgte0", decimalNotNegative)
		_ = v.RegisterValidation("reason", validReason)
	})
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(field.String())
	return d, err == nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && d.IsPositive()
}

func decimalNotNegative(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && !d.IsNegative()
}

func validReason(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= domain.MinReasonLength
}
