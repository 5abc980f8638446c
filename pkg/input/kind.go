// pkg/input/kind.go

package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of value kinds a Spec can carry. Coercion is
// resolved by exhaustive switch; adding a kind without extending
// coerce is a programmer error surfaced by the default branch.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PathKind refines KindPath existence checks.
type PathKind int

const (
	PathAny PathKind = iota
	PathFile
	PathDir
)

var trueLiterals = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true,
}

var falseLiterals = map[string]bool{
	"false": true, "f": true, "no": true, "n": true, "0": true,
}

// parseBool accepts the usual console spellings, case-insensitively.
func parseBool(token string) (bool, error) {
	folded := strings.ToLower(token)
	if trueLiterals[folded] {
		return true, nil
	}
	if falseLiterals[folded] {
		return false, nil
	}
	return false, fmt.Errorf("not a boolean literal: %q", token)
}

// coerce converts one trimmed token to the kind's native type.
func coerce(k Kind, token string) (interface{}, error) {
	switch k {
	case KindText, KindPath:
		return token, nil
	case KindInteger:
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindBoolean:
		return parseBool(token)
	default:
		return nil, fmt.Errorf("unhandled kind %v", k)
	}
}
