package execute

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX tooling required")
	}

	out, err := Run(context.Background(), Options{
		Command: "echo",
		Args:    []string{"hello"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimSpace(out))
}

func TestRunWithoutCaptureReturnsEmpty(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX tooling required")
	}

	out, err := Run(context.Background(), Options{
		Command: "echo",
		Args:    []string{"hidden"},
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunFailureWrapsAttemptCount(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{
		Command: "false",
		Retries: 2,
		Delay:   time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed after 2 attempts")
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	out, err := Run(context.Background(), Options{
		Command: "definitely-not-a-binary",
		DryRun:  true,
		Capture: true,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunAppendsEnv(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX tooling required")
	}

	out, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "printf %s \"$VENV_NAME\""},
		Env:     []string{"VENV_NAME=yolo"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "yolo", out)
}

func TestBuildCommandString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "yolo", buildCommandString("yolo"))
	assert.Equal(t, `yolo train "data=my set.yaml"`, buildCommandString("yolo", "train", "data=my set.yaml"))
}
