package vision_io

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastevision/visionctl/pkg/vision_err"
)

func TestReadLineTrimsAndEchoesPrompt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("  yolov8n.pt  \n"), &out, &out)

	line, err := term.ReadLine(context.Background(), "Model: ")
	require.NoError(t, err)
	assert.Equal(t, "yolov8n.pt", line)
	assert.Equal(t, "Model: ", out.String())
}

func TestReadLineUnterminatedFinalLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("back"), &out, &out)

	line, err := term.ReadLine(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "back", line)
}

func TestReadLineClosedInputIsInterrupt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, &out)

	_, err := term.ReadLine(context.Background(), "Enter your choice: ")
	require.Error(t, err)
	assert.True(t, vision_err.IsInterrupt(err))
}

func TestReadLineCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("1\n"), &out, &out)

	_, err := term.ReadLine(ctx, "")
	require.Error(t, err)
	assert.True(t, vision_err.IsInterrupt(err))
}

func TestAcknowledge(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("\n"), &out, &out)

	require.NoError(t, term.Acknowledge(context.Background()))
	assert.Equal(t, "\nPress Enter to continue...", out.String())

	// Closed input during the pause unwinds like any other read.
	term = NewTerminal(strings.NewReader(""), &out, &out)
	err := term.Acknowledge(context.Background())
	assert.True(t, vision_err.IsInterrupt(err))
}

func TestClearScreenSilentWhenNotInteractive(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, &out)
	term.ClearScreen()
	assert.Zero(t, out.Len())
}

func TestNewContextPopulatesIdentity(t *testing.T) {
	t.Parallel()

	rc := NewContext(context.Background(), "train")
	require.NotNil(t, rc.Term)
	assert.Equal(t, "train", rc.Command)
	assert.Len(t, rc.RunID, 8)
	assert.NotNil(t, rc.Attributes)
}
