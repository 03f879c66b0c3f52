package item

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error codes.
const (
	ErrCodeEmptyKey        = "E_EMPTY_KEY"
	ErrCodeFloatProp       = "E_FLOAT_PROP"
	ErrCodeNullProp        = "E_NULL_PROP"
	ErrCodeUnsupportedProp = "E_UNSUPPORTED_PROP"
)

// ValidationError describes one invalid item.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every problem found in one list.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// IsValidationError reports whether err carries item validation errors.
func IsValidationError(err error) bool {
	var ves ValidationErrors
	if errors.As(err, &ves) {
		return true
	}
	var ve ValidationError
	return errors.As(err, &ve)
}

// Validate checks every item and returns all problems found, or nil.
// Duplicate keys are allowed.
func Validate(items []Item) error {
	var errs ValidationErrors
	for i, it := range items {
		if it.Key == "" {
			errs = append(errs, ValidationError{
				Code:    ErrCodeEmptyKey,
				Field:   fmt.Sprintf("[%d].key", i),
				Message: "key must not be empty",
			})
		}
		for _, name := range sortedKeys(it.Props) {
			errs = validateValue(errs, fmt.Sprintf("[%d].props.%s", i, name), it.Props[name])
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateValue(errs ValidationErrors, field string, v any) ValidationErrors {
	switch val := v.(type) {
	case string, int, int64, bool:
		return errs
	case nil:
		return append(errs, ValidationError{Code: ErrCodeNullProp, Field: field, Message: "null values are not allowed"})
	case float32, float64:
		return append(errs, ValidationError{
			Code:    ErrCodeFloatProp,
			Field:   field,
			Message: fmt.Sprintf("float %v is not allowed, use an integer or string", val),
		})
	case []any:
		for i, elem := range val {
			errs = validateValue(errs, fmt.Sprintf("%s[%d]", field, i), elem)
		}
		return errs
	case map[string]any:
		for _, k := range sortedKeys(val) {
			errs = validateValue(errs, field+"."+k, val[k])
		}
		return errs
	default:
		return append(errs, ValidationError{
			Code:    ErrCodeUnsupportedProp,
			Field:   field,
			Message: fmt.Sprintf("unsupported type %T", v),
		})
	}
}
