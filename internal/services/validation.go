package services

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationErrors maps an input field name to the rule it violated.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidator returns a validator that reports fields by their json name and
// compares decimals as numbers.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// collectViolations turns validator output into ValidationErrors. Errors
// other than field violations are returned as is.
func collectViolations(err error) (ValidationErrors, error) {
	if err == nil {
		return ValidationErrors{}, nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	violations := make(ValidationErrors, len(validationErrors))
	for _, e := range validationErrors {
		violations[e.Field()] = violationMessage(e)
	}
	return violations, nil
}

func violationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This value should not be blank."
	case "min", "notblank":
		return "This value should not be blank."
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", e.Param())
	case "gte":
		return fmt.Sprintf("This value should be greater than or equal to %s.", e.Param())
	case "gt":
		return fmt.Sprintf("This value should be greater than %s.", e.Param())
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
