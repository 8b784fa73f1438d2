package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared draft validator. Field names in its errors
// are JSON names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name := jsonName(sf)
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
			return model.IsPermission(fl.Field().String())
		})
	})
	return validate
}

// FieldError is one failed rule on a draft field.
type FieldError struct {
	Field string
	Label string
	Rule  string
	Param string
}

// Message renders the error for display next to the field.
func (e FieldError) Message() string {
	switch e.Rule {
	case "required":
		return e.Label + " is required"
	case "email":
		return e.Label + " must be a valid email"
	case "datetime":
		return e.Label + " must be a date (YYYY-MM-DD)"
	case "oneof":
		return e.Label + " must be one of " + e.Param
	case "hexcolor":
		return e.Label + " must be a hex color"
	case "permission":
		return e.Label + " contains an unknown permission"
	default:
		return fmt.Sprintf("%s failed %s", e.Label, e.Rule)
	}
}

// ValidationError lists every invalid draft field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrInvalidInput
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks draft against its validate tags.
func Validate(draft any, fields []Field) error {
	err := Validator().Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate draft: %w", err)
	}

	labels := make(map[string]string, len(fields))
	for _, f := range fields {
		labels[f.Name] = f.Label
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		name := fieldPath(fe.Namespace())
		label := labels[name]
		if label == "" {
			if base, _, found := strings.Cut(name, "["); found {
				label = labels[base]
				name = base
			}
		}
		if label == "" {
			label = name
		}
		out.Fields = append(out.Fields, FieldError{Field: name, Label: label, Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// fieldPath strips the struct type from a validator namespace.
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}
