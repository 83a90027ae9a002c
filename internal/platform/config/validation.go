package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const tagRenderWithinWrite = "render_within_write"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateTimeouts, Config{})

	return v
}

// validateTimeouts rejects a render timeout the server would cut off
// before a screen could render from cache.
func validateTimeouts(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}

	render, write := cfg.Screens.RenderTimeout, cfg.Server.WriteTimeout
	if render > 0 && write > 0 && render >= write {
		sl.ReportError(render, "Screens.RenderTimeout", "RenderTimeout", tagRenderWithinWrite, write.String())
	}
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

// Validate checks the configuration. The service refuses to start on error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}

	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	field := formatFieldPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "alphanum":
		return field + " must contain only letters and digits"
	case tagRenderWithinWrite:
		return fmt.Sprintf("%s must be shorter than server.writetimeout (%s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// formatFieldPath turns "Config.Server.Port" into "server.port".
func formatFieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}

	return strings.ToLower(rest)
}
