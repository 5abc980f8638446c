// pkg/input/validators.go

package input

import (
	"fmt"
)

// Range returns a validator enforcing an inclusive numeric interval.
func Range(min, max float64) Validator {
	return func(value interface{}) error {
		var f float64
		switch n := value.(type) {
		case int:
			f = float64(n)
		case float64:
			f = n
		default:
			return validationf("Value must be between %v and %v", min, max)
		}
		if f < min || f > max {
			return validationf("Value must be between %v and %v", min, max)
		}
		return nil
	}
}

// MinLength returns a validator enforcing a minimum text length.
func MinLength(n int) Validator {
	return func(value interface{}) error {
		if len(fmt.Sprint(value)) < n {
			return validationf("Value must be at least %d characters", n)
		}
		return nil
	}
}

// StringSlice converts a multi-select result to []string. Non-slice
// values yield a single-element slice; nil yields nil.
func StringSlice(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}
