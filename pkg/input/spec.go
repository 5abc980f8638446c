// pkg/input/spec.go
//
// Spec is a fluent descriptor for one validated console field. Builder
// steps return new values, so a partially built Spec can be shared and
// specialized without aliasing surprises:
//
//	count := input.Integer("Number of epochs").Default(100).Range(1, 1000)
//
// Resolve applies the full pipeline to one raw line; Prompt loops it
// against a terminal until a value passes or the read is cancelled.

package input

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Validator checks a coerced value. A nil return means valid; the
// error message drives the re-prompt.
type Validator func(value interface{}) error

type Spec struct {
	label         string
	kind          Kind
	pathKind      PathKind
	def           interface{}
	hasDefault    bool
	allowEmpty    bool
	choices       []string
	caseSensitive bool
	multiple      bool
	validators    []Validator
	errMessage    string
}

// New starts a text field with the given prompt label.
func New(label string) Spec {
	return Spec{label: label, kind: KindText}
}

// Convenience constructors for the common field shapes.

func Text(label string) Spec    { return New(label) }
func Integer(label string) Spec { return New(label).Kind(KindInteger) }
func Float(label string) Spec   { return New(label).Kind(KindFloat) }
func Boolean(label string) Spec { return New(label).Kind(KindBoolean) }

func FilePath(label string) Spec { return New(label).Path(PathFile) }
func DirPath(label string) Spec  { return New(label).Path(PathDir) }

func Choice(label string, options ...string) Spec {
	return New(label).Choices(options...)
}

// Kind selects the value kind.
func (s Spec) Kind(k Kind) Spec {
	s.kind = k
	return s
}

// Path selects KindPath with an existence refinement.
func (s Spec) Path(pk PathKind) Spec {
	s.kind = KindPath
	s.pathKind = pk
	return s
}

// Default sets the value returned on empty input. Setting a default
// implies allow-empty. The default is returned exactly as configured:
// it is neither coerced nor validated.
func (s Spec) Default(v interface{}) Spec {
	s.def = v
	s.hasDefault = true
	s.allowEmpty = true
	return s
}

// AllowEmpty permits empty input without a default; empty then
// resolves to nil.
func (s Spec) AllowEmpty() Spec {
	s.allowEmpty = true
	return s
}

// Choices restricts input to a permitted set. Matching is
// case-insensitive unless CaseSensitive is applied; on an insensitive
// match the canonically-cased stored option is substituted.
func (s Spec) Choices(options ...string) Spec {
	s.choices = append([]string(nil), options...)
	return s
}

// CaseSensitive makes choice matching exact.
func (s Spec) CaseSensitive() Spec {
	s.caseSensitive = true
	return s
}

// Multiple accepts comma-separated selections, resolving to a slice.
func (s Spec) Multiple() Spec {
	s.multiple = true
	return s
}

// Validate appends a validator. Validators run in declaration order
// against the coerced value; the first failure re-prompts.
func (s Spec) Validate(fn Validator) Spec {
	vs := make([]Validator, len(s.validators), len(s.validators)+1)
	copy(vs, s.validators)
	s.validators = append(vs, fn)
	return s
}

// Range constrains numeric values to an inclusive interval.
func (s Spec) Range(min, max float64) Spec {
	return s.Validate(Range(min, max))
}

// Pattern constrains text to match a regular expression. The
// expression is compiled eagerly; an invalid one is a programmer
// error and panics at build time.
func (s Spec) Pattern(expr string) Spec {
	re := regexp.MustCompile(expr)
	return s.Validate(func(v interface{}) error {
		if re.MatchString(fmt.Sprint(v)) {
			return nil
		}
		return validationf("Value must match pattern: %s", expr)
	})
}

// ErrorMessage overrides the message reported for validator failures.
func (s Spec) ErrorMessage(msg string) Spec {
	s.errMessage = msg
	return s
}

// Label returns the prompt label.
func (s Spec) Label() string {
	return s.label
}

// promptLabel renders the full prompt line: label, default hint,
// multi-select hint, trailing separator.
func (s Spec) promptLabel() string {
	var b strings.Builder
	b.WriteString(s.label)
	if s.hasDefault {
		fmt.Fprintf(&b, " [%v]", s.def)
	}
	if s.multiple {
		b.WriteString(" (comma-separated for multiple selections)")
	}
	b.WriteString(": ")
	return b.String()
}

// Resolve runs the validation pipeline against one raw input line and
// returns the typed value. Every returned error is locally
// recoverable: its message is shown and the field is re-prompted.
func (s Spec) Resolve(raw string) (interface{}, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		if s.hasDefault {
			return s.def, nil
		}
		if s.allowEmpty {
			return nil, nil
		}
		return nil, validationf("Input cannot be empty.")
	}

	if s.multiple && len(s.choices) > 0 {
		return s.resolveSelection(trimmed)
	}

	value, err := coerce(s.kind, trimmed)
	if err != nil {
		return nil, &CoercionError{Kind: s.kind, Token: trimmed}
	}

	if s.kind == KindPath {
		if err := s.checkPath(value.(string)); err != nil {
			return nil, err
		}
	}

	if len(s.choices) > 0 {
		canonical, ok := s.matchChoice(value)
		if !ok {
			return nil, validationf("Must be one of: %s", strings.Join(s.choices, ", "))
		}
		value = canonical
	}

	if err := s.runValidators(value); err != nil {
		return nil, err
	}
	return value, nil
}

// resolveSelection handles comma-separated multi-select input. The
// whole input is rejected when any token fails to coerce or to match
// the permitted set.
func (s Spec) resolveSelection(trimmed string) (interface{}, error) {
	var values []interface{}
	for _, part := range strings.Split(trimmed, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		value, err := coerce(s.kind, token)
		if err != nil {
			return nil, &CoercionError{Kind: s.kind, Token: token, InSelection: true}
		}
		canonical, ok := s.matchChoice(value)
		if !ok {
			return nil, validationf("Selection '%v' must be one of: %s", value, strings.Join(s.choices, ", "))
		}
		values = append(values, canonical)
	}
	if len(values) == 0 {
		return nil, validationf("Input cannot be empty.")
	}

	if err := s.runValidators(values); err != nil {
		return nil, err
	}
	return values, nil
}

// matchChoice checks set membership and returns the canonical value.
// Text kinds fold case unless the Spec is case-sensitive; other kinds
// compare their rendered form exactly.
func (s Spec) matchChoice(value interface{}) (interface{}, bool) {
	rendered := fmt.Sprint(value)
	for _, opt := range s.choices {
		if s.caseSensitive || s.kind != KindText {
			if rendered == opt {
				return value, true
			}
			continue
		}
		if strings.EqualFold(rendered, opt) {
			return opt, true
		}
	}
	return nil, false
}

func (s Spec) checkPath(path string) error {
	info, err := os.Stat(path)
	switch s.pathKind {
	case PathFile:
		if err != nil || info.IsDir() {
			return validationf("Path must be an existing file")
		}
	case PathDir:
		if err != nil || !info.IsDir() {
			return validationf("Path must be an existing directory")
		}
	default:
		if err != nil {
			return validationf("Path does not exist")
		}
	}
	return nil
}

func (s Spec) runValidators(value interface{}) error {
	for _, fn := range s.validators {
		if err := fn(value); err != nil {
			if s.errMessage != "" {
				return validationf("%s", s.errMessage)
			}
			return err
		}
	}
	return nil
}
