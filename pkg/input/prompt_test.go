package input

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"go.uber.org/zap/zaptest"
)

func testRC(t *testing.T, in string) (*vision_io.RuntimeContext, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &vision_io.RuntimeContext{
		Ctx:        context.Background(),
		Log:        zaptest.NewLogger(t),
		Term:       vision_io.NewTerminal(strings.NewReader(in), &out, &out),
		Attributes: map[string]string{},
	}, &out
}

func TestPromptRepromptsUntilValid(t *testing.T) {
	t.Parallel()

	rc, out := testRC(t, "abc\n0\n5\n")

	got, err := Prompt(rc, Integer("Pick a number").Range(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	rendered := out.String()
	assert.Equal(t, 3, strings.Count(rendered, "Pick a number: "))
	assert.Contains(t, rendered, "Invalid integer value.\n")
	assert.Contains(t, rendered, "Value must be between 1 and 10\n")
}

func TestPromptReturnsDefaultOnEmpty(t *testing.T) {
	t.Parallel()

	rc, out := testRC(t, "\n")

	got, err := PromptInt(rc, Integer("Patience").Default(30).Range(100, 200))
	require.NoError(t, err)
	assert.Equal(t, 30, got)
	assert.Contains(t, out.String(), "Patience [30]: ")
}

func TestPromptPropagatesClosedInput(t *testing.T) {
	t.Parallel()

	rc, _ := testRC(t, "")

	_, err := Prompt(rc, Text("Name"))
	require.Error(t, err)
	assert.True(t, vision_err.IsInterrupt(err))
}

func TestPromptClosedInputMidReprompt(t *testing.T) {
	t.Parallel()

	// One invalid line, then EOF: the loop must not spin.
	rc, out := testRC(t, "not-a-number\n")

	_, err := Prompt(rc, Integer("Epochs"))
	require.Error(t, err)
	assert.True(t, vision_err.IsInterrupt(err))
	assert.Contains(t, out.String(), "Invalid integer value.\n")
}

func TestPromptTypedHelpers(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		rc, _ := testRC(t, "yolov8n.pt\n")
		got, err := PromptString(rc, Text("Model"))
		require.NoError(t, err)
		assert.Equal(t, "yolov8n.pt", got)
	})

	t.Run("bool", func(t *testing.T) {
		t.Parallel()
		rc, _ := testRC(t, "YES\n")
		got, err := PromptBool(rc, Boolean("Simplify"))
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("float", func(t *testing.T) {
		t.Parallel()
		rc, _ := testRC(t, "0.4\n")
		got, err := PromptFloat(rc, Float("Confidence").Range(0, 1))
		require.NoError(t, err)
		assert.Equal(t, 0.4, got)
	})

	t.Run("allow-empty string resolves to empty", func(t *testing.T) {
		t.Parallel()
		rc, _ := testRC(t, "\n")
		got, err := PromptString(rc, Text("Log directory").AllowEmpty())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPromptMultipleSelection(t *testing.T) {
	t.Parallel()

	rc, out := testRC(t, "export,DEV\n")

	got, err := Prompt(rc, Choice("Extras", "export", "dev", "solutions").Multiple())
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"export", "dev"}, got)
	assert.Contains(t, out.String(), "Extras (comma-separated for multiple selections): ")
}
