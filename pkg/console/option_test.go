package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionDefaultsEnabledAndVisible(t *testing.T) {
	t.Parallel()

	opt := NewOption("train", "Train a model", nil)
	assert.True(t, opt.Enabled())
	assert.True(t, opt.Visible())
}

func TestOptionStringMarksDisabled(t *testing.T) {
	t.Parallel()

	opt := NewOption("train", "Train a model", nil)
	assert.Equal(t, "train: Train a model", opt.String())

	opt.SetEnabled(false)
	assert.Equal(t, "train: Train a model (disabled)", opt.String())
}

func TestOptionExecuteDisabled(t *testing.T) {
	t.Parallel()

	opt := NewOption("train", "Train a model", constAction(1))
	opt.SetEnabled(false)

	rc, _, _ := consoleRC(t, "")
	_, err := opt.Execute(rc)
	require.Error(t, err)

	var disabled *DisabledOptionError
	require.True(t, errors.As(err, &disabled))
	assert.Equal(t, "Cannot execute disabled option: train", err.Error())
}

func TestOptionExecuteWithoutAction(t *testing.T) {
	t.Parallel()

	opt := NewOption("spacer", "no-op entry", nil)
	rc, _, _ := consoleRC(t, "")

	result, err := opt.Execute(rc)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestHiddenOptionStillExecutes(t *testing.T) {
	t.Parallel()

	opt := NewOption("secret", "hidden but callable", constAction("ran"))
	opt.SetVisible(false)

	rc, _, _ := consoleRC(t, "")
	result, err := opt.Execute(rc)
	require.NoError(t, err)
	assert.Equal(t, "ran", result)
}
