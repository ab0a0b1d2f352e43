package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidValue is the sentinel wrapped by every coercion failure.
var ErrInvalidValue = errors.New("invalid value")

// Coerce validates and normalizes a raw JSON value against the declared field
// type. The omit return is true when the value is null/absent and the field
// should be excluded from the write entirely; omit never accompanies an error.
//
// Coercion is deliberately strict on shape: a number supplied for a string
// field fails rather than being stringified.
func Coerce(f Field, value interface{}) (coerced interface{}, omit bool, err error) {
	if value == nil {
		return nil, true, nil
	}

	switch f.Type {
	case String:
		s, ok := value.(string)
		if !ok {
			return nil, false, invalidValue(f, value)
		}
		return strings.TrimSpace(s), false, nil

	case Number:
		n, err := toNumber(value)
		if err != nil {
			return nil, false, invalidValue(f, value)
		}
		return n, false, nil

	case StringArray:
		switch v := value.(type) {
		case []string:
			return v, false, nil
		case []interface{}:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, false, invalidValue(f, value)
				}
				out = append(out, s)
			}
			return out, false, nil
		case string:
			terms := strings.Split(v, ",")
			out := make([]string, 0, len(terms))
			for _, term := range terms {
				out = append(out, strings.TrimSpace(term))
			}
			return out, false, nil
		default:
			return nil, false, invalidValue(f, value)
		}

	default:
		return nil, false, fmt.Errorf("unhandled field type %v for %s", f.Type, f.ExternalName)
	}
}

func toNumber(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", value)
	}
}

func invalidValue(f Field, value interface{}) error {
	return fmt.Errorf("%w for %s: expected %s, got %T", ErrInvalidValue, f.ExternalName, f.Type, value)
}
