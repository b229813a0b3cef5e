package model

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimals are compared as floats so numeric tags such as gte apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// Price limits. Prices are money: at most MaxPriceDigits before the decimal
// point and two after it, matching the postgres NUMERIC(12, 2) column.
const (
	MaxPriceDigits = 10
	PriceScale     = 2
)

// WithinDigits reports whether d has at most maxInt digits before the decimal
// point and at most maxScale after it. Only the representation is inspected,
// so values such as 1e20000000 are rejected without being expanded.
func WithinDigits(d decimal.Decimal, maxInt, maxScale int) bool {
	exp := int(d.Exponent())
	if d.NumDigits()+exp > maxInt {
		return false
	}
	if exp >= -maxScale {
		return true
	}
	// Trailing zeros such as 10.500 are fine; bound the work for long tails.
	if exp < -(maxScale + 18) {
		return false
	}
	return d.Equal(d.Truncate(int32(maxScale)))
}

// Validate checks the product fields and returns a validation domain error
// describing the first failing field.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Validation("product name is required")
	}
	if !WithinDigits(p.Price, MaxPriceDigits, PriceScale) {
		return Validation("price must have at most %d digits before and %d after the decimal point", MaxPriceDigits, PriceScale)
	}

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Field() {
		case "Price":
			return Validation("price must not be negative")
		case "Stock":
			return Validation("stock must not be negative")
		default:
			return Validation("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag())
		}
	}

	return Validation("invalid product: %v", err)
}
