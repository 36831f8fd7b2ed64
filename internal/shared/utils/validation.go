package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

var (
	validate *validator.Validate

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	prefixRegex   = regexp.MustCompile(`^[A-Z]{2,10}$`)
)

func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("keyprefix", func(fl validator.FieldLevel) bool {
		return prefixRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String(), true)
	})
}

// ValidateStruct validates a struct and returns every failing field,
// one validation error per field, collected in an ErrorList.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("Validation failed", err.Error())
	}

	var list errors.ErrorList
	for _, fieldError := range validationErrors {
		list.Add(errors.NewFieldValidationError(fieldError.Field(), getFieldErrorMessage(fieldError)))
	}
	return list.OrNil()
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, param)
	case "hexcolor6":
		return fmt.Sprintf("%s must be a valid hex color (#RRGGBB)", field)
	case "keyprefix":
		return fmt.Sprintf("%s must be 2 to 10 uppercase letters", field)
	case "strongpassword":
		return fmt.Sprintf("%s must contain upper and lower case letters, a digit and a special character", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

// IsStrongPassword reports whether p mixes upper case, lower case and digits,
// and a special character when requireSpecial is set.
func IsStrongPassword(p string, requireSpecial bool) bool {
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && (special || !requireSpecial)
}
