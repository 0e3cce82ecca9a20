package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewValidationError("config", nil, "config cannot be nil")
	}

	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", oneOf("", "debug", "info", "warn", "error", "fatal", "panic"))
	_ = validate.RegisterValidation("logformat", oneOf("", "console", "text", "json"))
	_ = validate.RegisterValidation("mode", oneOf(ModeServe, ModeOnetime))
	_ = validate.RegisterValidation("renderer", oneOf("", RendererHeadless, RendererStatic))

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("%w:\n  %s", common.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
}

func oneOf(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := strings.ToLower(fl.Field().String())
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}
