// Package validate provides input validation helpers for workreport.
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/manav03panchal/workreport/internal/errors"
)

const (
	// MaxNameLength is the maximum length for a registry name.
	MaxNameLength = 128
	// MaxLabelLength is the maximum length for a report's project or worksite label.
	MaxLabelLength = 256
)

var (
	once     sync.Once
	instance *validator.Validate
)

// engine returns the shared validator. Field names in errors are the JSON
// names so messages match what users see in exports.
func engine() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return lowerFirst(fld.Name)
			}
			return name
		})
	})
	return instance
}

// Struct validates the `validate` tags of v and converts the first failure
// into a UserError naming the offending field.
func Struct(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewSystemError("validation failed", err)
	}

	fe := verrs[0]
	field := fe.Field()
	value := fmt.Sprint(fe.Value())
	switch fe.Tag() {
	case "required":
		return errors.NewUserErrorWithField(field, "", field+" is required", "Provide a value for "+field)
	case "email":
		return errors.NewUserErrorWithField(field, value, "Invalid email address", "Use an address like name@example.com")
	case "hexcolor":
		e := errors.NewUserErrorWithField(field, value, "Invalid color format", "Use hex format like '#FF5733'")
		e.Cause = errors.ErrInvalidColor
		return e
	case "gte", "min":
		return errors.NewUserErrorWithField(field, value, field+" must be at least "+fe.Param(), "")
	case "lte":
		return errors.NewUserErrorWithField(field, value, field+" must be at most "+fe.Param(), "")
	case "max":
		return errors.NewUserErrorWithField(field, "", field+" is too long", fmt.Sprintf("Keep %s to %s characters or fewer", field, fe.Param()))
	case "oneof":
		return errors.NewUserErrorWithField(field, value, "Invalid "+field, "Use one of: "+strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return errors.NewUserErrorWithField(field, value, "Invalid "+field, "")
	}
}

// Var validates a single value against a tag expression.
func Var(field string, v any, tag string) error {
	if err := engine().Var(v, tag); err != nil {
		return errors.NewUserErrorWithField(field, fmt.Sprint(v), "Invalid "+field, "")
	}
	return nil
}

// NonEmpty validates that a string holds more than whitespace.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &errors.UserError{
			Message:    field + " cannot be empty",
			Suggestion: "Provide a value for " + field,
			Field:      field,
			Cause:      errors.ErrNameRequired,
		}
	}
	return nil
}

// Name validates a registry record's primary name.
func Name(name string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Name too long",
			fmt.Sprintf("Names must be %d characters or fewer", MaxNameLength))
	}
	return nil
}

// HexColor validates a hex color code like "#1A2B3C".
func HexColor(color string) error {
	if err := engine().Var(color, "required,hexcolor"); err != nil {
		e := errors.NewUserErrorWithField("color", color,
			"Invalid color format",
			"Use hex format like '#FF5733'")
		e.Cause = errors.ErrInvalidColor
		return e
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
