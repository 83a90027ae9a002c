package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// tagParts is the number of parts when splitting a json/form tag by comma.
const tagParts = 2

// Validation errors.
var (
	// ErrValidation indicates a validation failure occurred.
	ErrValidation = errors.New("validation failed")

	// ErrBinding indicates query binding failed.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the singleton validator instance.
// It initializes the validator with custom validations on first call.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// Report query parameters by their wire name.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", tagParts)[0]
				if name == "-" {
					return ""
				}

				if name != "" {
					return name
				}
			}

			return fld.Name
		})

		_ = validate.RegisterValidation("nocontrol", validateNoControl)
	})

	return validate
}

// Validate validates a struct using the validator instance.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindQueryAndValidate binds query parameters and validates.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors extracts field-level error messages from a validator error.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// validationMessages maps validation tags to message templates.
// Use {param} as placeholder for the validation parameter.
var validationMessages = map[string]string{
	"required":  "this field is required",
	"nocontrol": "must not contain control characters",
	"oneof":     "must be one of: {param}",
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, param, fe.Type().Kind())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// minMaxMessage returns the appropriate message for min/max validation.
func minMaxMessage(tag, param string, kind reflect.Kind) string {
	suffix := ""
	if kind == reflect.String {
		suffix = " characters"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

// validateNoControl rejects strings containing control characters.
func validateNoControl(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
}
