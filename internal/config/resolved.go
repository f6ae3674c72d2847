package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/tuispell/internal/model"
)

// ValidateResolved checks the settings merged from flags and the config file.
// Errors name the CLI flag of the offending field.
func ValidateResolved(cfg model.Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required", "required_unless":
			return fmt.Errorf("--%s must not be empty", fe.Field())
		case "oneof":
			return fmt.Errorf("--%s: invalid value %q (want one of: %s)", fe.Field(), fmt.Sprint(fe.Value()), fe.Param())
		}
		return fmt.Errorf("--%s: failed %q check", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("failed to validate settings: %w", err)
}
