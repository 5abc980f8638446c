// pkg/console/action.go

package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"go.uber.org/zap"
)

// Action is a unit of executable work bound to a menu Option. The
// result is passed back to the menu loop: a *Menu opens nested
// navigation, nil means "done, continue", anything else is a result
// for the menu's caller.
type Action interface {
	Execute(rc *vision_io.RuntimeContext) (interface{}, error)
	fmt.Stringer
}

// Args carries positional and keyword arguments into a handler.
type Args struct {
	Positional []interface{}
	Keyword    map[string]interface{}
}

// String returns the keyword value under key, or def when absent or
// not a string.
func (a Args) String(key, def string) string {
	if v, ok := a.Keyword[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the keyword value under key, or def.
func (a Args) Bool(key string, def bool) bool {
	if v, ok := a.Keyword[key].(bool); ok {
		return v
	}
	return def
}

// Int returns the keyword value under key, or def.
func (a Args) Int(key string, def int) int {
	if v, ok := a.Keyword[key].(int); ok {
		return v
	}
	return def
}

// Float returns the keyword value under key, or def.
func (a Args) Float(key string, def float64) float64 {
	if v, ok := a.Keyword[key].(float64); ok {
		return v
	}
	return def
}

// Strings returns the keyword value under key as a string slice, nil
// when absent. A comma-separated string splits.
func (a Args) Strings(key string) []string {
	switch v := a.Keyword[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	default:
		return nil
	}
}

// render joins positional values and sorted k=v pairs for diagnostics.
func (a Args) render() string {
	parts := make([]string, 0, len(a.Positional)+len(a.Keyword))
	for _, p := range a.Positional {
		parts = append(parts, fmt.Sprint(p))
	}
	keys := make([]string, 0, len(a.Keyword))
	for k := range a.Keyword {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, a.Keyword[k]))
	}
	return strings.Join(parts, ", ")
}

// ScriptAction defers work to a registry target. Nothing is resolved
// at construction: the identifier is looked up on every Execute, so
// options can be wired before their targets exist.
type ScriptAction struct {
	registry *Registry
	target   string
	entry    string
	args     Args
}

// Script builds a deferred action for a registry target with the
// default entry point "run".
func Script(registry *Registry, target string) *ScriptAction {
	return &ScriptAction{registry: registry, target: target, entry: "run"}
}

// Entry selects a non-default entry point.
func (a *ScriptAction) Entry(name string) *ScriptAction {
	a.entry = name
	return a
}

// WithArgs sets positional arguments passed to the handler.
func (a *ScriptAction) WithArgs(args ...interface{}) *ScriptAction {
	a.args.Positional = args
	return a
}

// WithKwargs sets keyword arguments passed to the handler.
func (a *ScriptAction) WithKwargs(kwargs map[string]interface{}) *ScriptAction {
	a.args.Keyword = kwargs
	return a
}

func (a *ScriptAction) Execute(rc *vision_io.RuntimeContext) (interface{}, error) {
	target, err := a.registry.Resolve(a.target)
	if err != nil {
		a.reportFailure(rc, err)
		return nil, err
	}

	handler, ok := target[a.entry]
	if !ok {
		contractErr := &ContractError{Target: a.target, Entry: a.entry, Candidates: target.EntryPoints()}
		a.reportFailure(rc, contractErr)
		return nil, contractErr
	}

	result, err := handler(rc, a.args)
	if err != nil {
		// Cancellation belongs to the top-level driver, not the
		// dispatch taxonomy. Pass it through unwrapped and silent.
		if vision_err.IsInterrupt(err) {
			return nil, err
		}
		execErr := &ExecutionError{Target: a.target, Entry: a.entry, Err: err}
		a.reportFailure(rc, execErr)
		return nil, execErr
	}
	return result, nil
}

// reportFailure writes the diagnostic line to the error stream before
// the error travels up to the menu loop.
func (a *ScriptAction) reportFailure(rc *vision_io.RuntimeContext, err error) {
	rc.Term.Errorf("Error executing action '%s': %v\n", a, err)
	rc.Log.Error("action dispatch failed",
		zap.String("target", a.target),
		zap.String("entry", a.entry),
		zap.Error(err),
	)
}

func (a *ScriptAction) String() string {
	return fmt.Sprintf("Action(%s.%s(%s))", a.target, a.entry, a.args.render())
}

// FuncAction wraps a callable directly, for options whose work lives
// in process rather than behind the registry.
type FuncAction struct {
	name string
	fn   Handler
	args Args
}

// Func builds a direct action. The name is only for diagnostics.
func Func(name string, fn Handler) *FuncAction {
	return &FuncAction{name: name, fn: fn}
}

// WithArgs sets positional arguments passed to the callable.
func (a *FuncAction) WithArgs(args ...interface{}) *FuncAction {
	a.args.Positional = args
	return a
}

// WithKwargs sets keyword arguments passed to the callable.
func (a *FuncAction) WithKwargs(kwargs map[string]interface{}) *FuncAction {
	a.args.Keyword = kwargs
	return a
}

func (a *FuncAction) Execute(rc *vision_io.RuntimeContext) (interface{}, error) {
	result, err := a.fn(rc, a.args)
	if err != nil {
		if vision_err.IsInterrupt(err) {
			return nil, err
		}
		execErr := &ExecutionError{Target: a.name, Err: err}
		rc.Term.Errorf("Error executing action '%s': %v\n", a, err)
		rc.Log.Error("action failed", zap.String("target", a.name), zap.Error(err))
		return nil, execErr
	}
	return result, nil
}

func (a *FuncAction) String() string {
	return fmt.Sprintf("Action(%s(%s))", a.name, a.args.render())
}

// OpenMenu returns an action that opens m as a nested menu.
func OpenMenu(m *Menu) Action {
	return Func("menu:"+m.Title, func(rc *vision_io.RuntimeContext, args Args) (interface{}, error) {
		return m, nil
	})
}
