// pkg/console/errors.go
//
// Dispatch failures carry the identity of what failed so the menu loop
// can report them without losing the cause. All four types are
// non-fatal at the menu layer: they are printed, acknowledged, and the
// menu re-renders. Read cancellation is never represented here.

package console

import (
	"fmt"
	"strings"
)

// ResolutionError reports a deferred action whose target identifier is
// not present in the registry.
type ResolutionError struct {
	Target string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no action target registered for %q", e.Target)
}

// ContractError reports a resolved target that lacks the requested
// entry point. Candidates lists the target's public entry points,
// sorted, so the operator can see what the target actually offers.
type ContractError struct {
	Target     string
	Entry      string
	Candidates []string
}

func (e *ContractError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("entry point %q not found in target %q. No public entry points available", e.Entry, e.Target)
	}
	return fmt.Sprintf("entry point %q not found in target %q. Available entry points: %s",
		e.Entry, e.Target, strings.Join(e.Candidates, ", "))
}

// ExecutionError wraps a failure from inside a handler, carrying the
// target and entry identity. Unwrap exposes the original error.
type ExecutionError struct {
	Target string
	Entry  string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("executing %s.%s: %v", e.Target, e.Entry, e.Err)
	}
	return fmt.Sprintf("executing %s: %v", e.Target, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// DisabledOptionError reports an Execute on a disabled Option.
type DisabledOptionError struct {
	Name string
}

func (e *DisabledOptionError) Error() string {
	return fmt.Sprintf("Cannot execute disabled option: %s", e.Name)
}
