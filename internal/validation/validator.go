package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// keywords: a list may be empty but must not contain blank entries.
	v.RegisterValidation("keywords", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < fl.Field().Len(); i++ {
			s, ok := fl.Field().Index(i).Interface().(string)
			if !ok {
				return false
			}
			if strings.TrimSpace(s) == "" {
				return false
			}
		}
		return true
	})

	return &Validator{v: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// Var validates a single value against a rule, e.g. an email address
// before an addAdmin round-trip.
func (v *Validator) Var(value interface{}, tag string) error {
	return v.v.Var(value, tag)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}
