package dto

import (
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	mustRegister(v, "max_digits", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		limit, perr := strconv.Atoi(fl.Param())
		return err == nil && perr == nil && digits(d) <= limit
	})
	mustRegister(v, "max_places", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		limit, perr := strconv.Atoi(fl.Param())
		return err == nil && perr == nil && places(d) <= limit
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// places counts significant fractional digits, so 12.50 has one.
func places(d decimal.Decimal) int {
	_, frac, found := strings.Cut(d.String(), ".")
	if !found {
		return 0
	}
	return len(frac)
}

// digits counts whole digits plus significant fractional digits.
func digits(d decimal.Decimal) int {
	whole := d.Abs().Truncate(0).String()
	if whole == "0" {
		return places(d)
	}
	return len(whole) + places(d)
}

// structValidate runs the tag rules and converts the first failure into an
// apperrors validation error keyed by the JSON field name.
func structValidate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	fe := verrs[0]
	return apperrors.NewValidationError(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "positive":
		return "must be greater than zero"
	case "max_digits":
		return fmt.Sprintf("must have no more than %s digits in total", fe.Param())
	case "max_places":
		return fmt.Sprintf("must have no more than %s decimal places", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
