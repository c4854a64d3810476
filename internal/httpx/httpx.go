package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// ValidationMessage flattens validator errors into the single-line
// message the response envelope carries.
func ValidationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Field()+": "+err.Tag())
	}
	return "validation error: " + strings.Join(parts, ", ")
}
