// pkg/input/prompt.go

package input

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"go.uber.org/zap"
)

// Prompt asks for the field until one line survives the full pipeline,
// returning the typed value. Rejections are reported on the terminal
// and re-prompted; read errors (EOF, cancellation) propagate
// immediately and are never swallowed.
func Prompt(rc *vision_io.RuntimeContext, spec Spec) (interface{}, error) {
	label := spec.promptLabel()
	for {
		line, err := rc.Term.ReadLine(rc.Ctx, label)
		if err != nil {
			return nil, err
		}

		value, rerr := spec.Resolve(line)
		if rerr != nil {
			rc.Log.Debug("input rejected",
				zap.String("field", spec.label),
				zap.String("reason", rerr.Error()),
			)
			rc.Term.Print(rerr.Error() + "\n")
			continue
		}
		return value, nil
	}
}

// PromptInt is Prompt for integer fields, with the type assertion done.
func PromptInt(rc *vision_io.RuntimeContext, spec Spec) (int, error) {
	v, err := Prompt(rc, spec)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, cerr.AssertionFailedf("field %q did not resolve to an integer", spec.label)
	}
	return n, nil
}

// PromptString is Prompt for text and path fields.
func PromptString(rc *vision_io.RuntimeContext, spec Spec) (string, error) {
	v, err := Prompt(rc, spec)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", cerr.AssertionFailedf("field %q did not resolve to text", spec.label)
	}
	return s, nil
}

// PromptBool is Prompt for boolean fields.
func PromptBool(rc *vision_io.RuntimeContext, spec Spec) (bool, error) {
	v, err := Prompt(rc, spec)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, cerr.AssertionFailedf("field %q did not resolve to a boolean", spec.label)
	}
	return b, nil
}

// PromptFloat is Prompt for float fields.
func PromptFloat(rc *vision_io.RuntimeContext, spec Spec) (float64, error) {
	v, err := Prompt(rc, spec)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, cerr.AssertionFailedf("field %q did not resolve to a float", spec.label)
	}
	return f, nil
}
