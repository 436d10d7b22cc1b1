package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "portagees/backend/internal/errors"
)

// A single validator instance is shared by all handlers; constructing one
// per request would recompile the struct rules every time.
var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks payload against its `validate` field tags and
// returns a wrapped apperrors.ErrValidation with a readable message on
// failure.
func validateRequest(payload interface{}) error {
	err := getValidator().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: unexpected error during validation: %s", apperrors.ErrValidation, err.Error())
	}

	var messages []string
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(messages, "; "))
}
