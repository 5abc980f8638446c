package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"go.uber.org/zap/zaptest"
)

// consoleRC wires a RuntimeContext over canned stdin with split
// stdout/stderr capture. Non-interactive, so ClearScreen is inert and
// prompts land in the out buffer.
func consoleRC(t *testing.T, in string) (*vision_io.RuntimeContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	return &vision_io.RuntimeContext{
		Ctx:        context.Background(),
		Log:        zaptest.NewLogger(t),
		Term:       vision_io.NewTerminal(strings.NewReader(in), &out, &errOut),
		Attributes: map[string]string{},
	}, &out, &errOut
}

func constAction(value interface{}) Action {
	return Func("const", func(rc *vision_io.RuntimeContext, args Args) (interface{}, error) {
		return value, nil
	})
}

func TestMenuRenderContract(t *testing.T) {
	t.Parallel()

	m := NewMenu("Tools")
	m.Header = "Pick a tool"
	m.Footer = "Ctrl-D aborts"
	beta := NewOption("beta", "second thing", nil)
	beta.SetEnabled(false)
	m.Add(NewOption("alpha", "first thing", nil), beta)

	rc, out, _ := consoleRC(t, "0\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	want := "\nTools\n" +
		"=====\n" +
		"\nPick a tool\n" +
		"1. alpha: first thing\n" +
		"2. beta: second thing (disabled)\n" +
		"\nCtrl-D aborts\n" +
		"\n0. Exit program\n" +
		"\nEnter your choice: " +
		"\nExiting program...\n"
	assert.Equal(t, want, out.String())
}

func TestSubmenuRendersBackEntryAndPops(t *testing.T) {
	t.Parallel()

	parent := NewMenu("Root")
	sub := parent.Submenu("Sub")
	sub.Add(NewOption("x", "y", nil))

	rc, out, _ := consoleRC(t, "back\n")
	result, err := sub.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	want := "\nSub\n" +
		"===\n" +
		"1. x: y\n" +
		"\n0. Exit program\n" +
		"back. Return to previous menu\n" +
		"\nEnter your choice: " +
		"\nReturning to previous menu...\n"
	assert.Equal(t, want, out.String())
}

func TestExitEndsNavigationAtAnyDepth(t *testing.T) {
	t.Parallel()

	root := NewMenu("Root")
	mid := root.Submenu("Mid")
	leaf := mid.Submenu("Leaf")
	leaf.Add(NewOption("noop", "do nothing", nil))
	mid.Add(NewOption("deeper", "Open leaf", OpenMenu(leaf)))
	root.Add(NewOption("tools", "Open mid", OpenMenu(mid)))

	rc, out, _ := consoleRC(t, "1\n1\n0\n")
	result, err := root.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	rendered := out.String()
	assert.Equal(t, 1, strings.Count(rendered, "\nRoot\n"))
	assert.Equal(t, 1, strings.Count(rendered, "\nMid\n"))
	assert.Equal(t, 1, strings.Count(rendered, "\nLeaf\n"))
	assert.Equal(t, 1, strings.Count(rendered, "\nExiting program...\n"))
	assert.Contains(t, rendered, "\nExecuting: Open mid...\n")
	assert.Contains(t, rendered, "\nExecuting: Open leaf...\n")
}

func TestBackReturnsToParentMenu(t *testing.T) {
	t.Parallel()

	root := NewMenu("Root")
	sub := root.Submenu("Sub")
	sub.Add(NewOption("noop", "do nothing", nil))
	root.Add(NewOption("open", "Open sub", OpenMenu(sub)))

	rc, out, _ := consoleRC(t, "1\nback\n0\n")
	result, err := root.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	rendered := out.String()
	assert.Contains(t, rendered, "\nReturning to previous menu...\n")
	// Root renders once on entry and once after the submenu pops.
	assert.Equal(t, 2, strings.Count(rendered, "\nRoot\n"))
	assert.Equal(t, 1, strings.Count(rendered, "\nSub\n"))
}

func TestBackWithoutParentIsInvalidChoice(t *testing.T) {
	t.Parallel()

	m := NewMenu("Root")
	m.Add(NewOption("noop", "do nothing", nil))

	rc, out, _ := consoleRC(t, "back\n0\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	rendered := out.String()
	assert.Contains(t, rendered, "\nPlease enter a number corresponding to your choice.\n")
	assert.NotContains(t, rendered, "Returning to previous menu")
	assert.NotContains(t, rendered, "back. Return to previous menu")
}

func TestDisabledOptionReportsAndRerenders(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(
		NewOption("A", "produce the answer", constAction(42)),
		newDisabled("B", "do nothing yet"),
	)

	rc, out, _ := consoleRC(t, "2\n\n1\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	rendered := out.String()
	assert.Contains(t, rendered, "1. A: produce the answer\n")
	assert.Contains(t, rendered, "2. B: do nothing yet (disabled)\n")
	assert.Contains(t, rendered, "\nThis option is currently disabled.\n")
	assert.Contains(t, rendered, "Press Enter to continue...")
	assert.Contains(t, rendered, "\nExecuting: produce the answer...\n")
	// Disabled report acknowledges, then the menu shows again.
	assert.Equal(t, 2, strings.Count(rendered, "\nMain\n"))
}

func newDisabled(name, description string) *Option {
	opt := NewOption(name, description, nil)
	opt.SetEnabled(false)
	return opt
}

func TestInvalidChoicesRerenderWithoutAcknowledge(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("noop", "do nothing", nil))

	rc, out, _ := consoleRC(t, "7\nzap\n0\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	rendered := out.String()
	assert.Contains(t, rendered, "\nInvalid choice. Please enter a valid number.\n")
	assert.Contains(t, rendered, "\nPlease enter a number corresponding to your choice.\n")
	assert.NotContains(t, rendered, "Press Enter to continue...")
	assert.Equal(t, 3, strings.Count(rendered, "\nMain\n"))
}

func TestRootResultStopsMenu(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("answer", "produce the answer", constAction(42)))

	rc, out, _ := consoleRC(t, "1\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.NotContains(t, out.String(), "Exiting program")
}

func TestNestedMenuResultIsDiscarded(t *testing.T) {
	t.Parallel()

	root := NewMenu("Root")
	sub := root.Submenu("Sub")
	sub.Add(NewOption("make", "produce an artifact", constAction("artifact")))
	root.Add(NewOption("open", "Open sub", OpenMenu(sub)))

	rc, out, _ := consoleRC(t, "1\n1\n0\n")
	result, err := root.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	rendered := out.String()
	// Sub produced a value, the frame popped, root rendered again.
	assert.Equal(t, 2, strings.Count(rendered, "\nRoot\n"))
	assert.Equal(t, 1, strings.Count(rendered, "\nSub\n"))
}

func TestNilResultAcknowledgesAndContinues(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("noop", "do nothing", constAction(nil)))

	rc, out, _ := consoleRC(t, "1\n\n0\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	rendered := out.String()
	assert.Contains(t, rendered, "\nPress Enter to continue...")
	assert.Equal(t, 2, strings.Count(rendered, "\nMain\n"))
}

func TestActionFailureReportsOnErrorStreamAndSurvives(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("broken", "always fail", Func("broken", func(rc *vision_io.RuntimeContext, args Args) (interface{}, error) {
		return nil, cerr.New("boom")
	})))

	rc, out, errOut := consoleRC(t, "1\n\n0\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Contains(t, errOut.String(), "Error executing action 'Action(broken())': boom\n")
	assert.Contains(t, errOut.String(), "\nError executing option: executing broken: boom\n")
	assert.NotContains(t, out.String(), "Error executing")
	assert.Contains(t, out.String(), "Press Enter to continue...")
	assert.Equal(t, 2, strings.Count(out.String(), "\nMain\n"))
}

func TestClosedInputAbortsRun(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("noop", "do nothing", nil))

	rc, _, _ := consoleRC(t, "")
	result, err := m.Run(rc)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, vision_err.IsInterrupt(err))
}

func TestInterruptFromActionPropagatesSilently(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("form", "collect a field", Func("form", func(rc *vision_io.RuntimeContext, args Args) (interface{}, error) {
		return nil, cerr.Wrap(vision_err.ErrInterrupted, "field aborted")
	})))

	rc, out, errOut := consoleRC(t, "1\n")
	result, err := m.Run(rc)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, vision_err.IsInterrupt(err))
	assert.NotContains(t, errOut.String(), "Error executing")
	assert.NotContains(t, out.String(), "Error executing")
}

func TestNumberingTracksVisibilityPerRender(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	hideMe := NewOption("b", "hide target", nil)
	m.Add(
		NewOption("a", "hide the middle entry", Func("hide", func(rc *vision_io.RuntimeContext, args Args) (interface{}, error) {
			hideMe.SetVisible(false)
			return nil, nil
		})),
		hideMe,
		NewOption("c", "produce the result", constAction("picked-c")),
	)

	rc, out, _ := consoleRC(t, "1\n\n2\n")
	result, err := m.Run(rc)
	require.NoError(t, err)
	assert.Equal(t, "picked-c", result)

	rendered := out.String()
	assert.Equal(t, 1, strings.Count(rendered, "2. b: hide target\n"))
	assert.Equal(t, 1, strings.Count(rendered, "3. c: produce the result\n"))
	assert.Equal(t, 1, strings.Count(rendered, "2. c: produce the result\n"))
}

func TestUppercaseBackIsAccepted(t *testing.T) {
	t.Parallel()

	root := NewMenu("Root")
	sub := root.Submenu("Sub")
	sub.Add(NewOption("noop", "do nothing", nil))
	root.Add(NewOption("open", "Open sub", OpenMenu(sub)))

	rc, out, _ := consoleRC(t, "1\nBACK\n0\n")
	_, err := root.Run(rc)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\nReturning to previous menu...\n")
}

func TestRunLoopServesUntilExit(t *testing.T) {
	t.Parallel()

	m := NewMenu("Main")
	m.Add(NewOption("answer", "produce the answer", constAction(42)))

	rc, out, _ := consoleRC(t, "1\n0\n")
	err := m.RunLoop(rc)
	require.NoError(t, err)

	// The loop re-enters after the result, so the menu shows twice.
	assert.Equal(t, 2, strings.Count(out.String(), "\nMain\n"))
	assert.Contains(t, out.String(), "\nExiting program...\n")
}
