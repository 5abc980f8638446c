package vision_err

import (
	"errors"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedUserError(t *testing.T) {
	t.Parallel()

	base := errors.New("workspace already initialized")
	expected := NewExpectedError(base)

	require.Error(t, expected)
	assert.True(t, IsExpectedUserError(expected))
	assert.Equal(t, "workspace already initialized", expected.Error())
	assert.Equal(t, base, errors.Unwrap(expected))

	assert.False(t, IsExpectedUserError(base))
	assert.Nil(t, NewExpectedError(nil))
}

func TestExpectedUserErrorSurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := NewExpectedError(errors.New("nothing to do"))
	wrapped := cerr.Wrap(err, "setup")

	assert.True(t, IsExpectedUserError(wrapped))
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "expected user error",
			err:  NewExpectedError(errors.New("already set up")),
			want: 0,
		},
		{
			name: "interrupt sentinel",
			err:  ErrInterrupted,
			want: 130,
		},
		{
			name: "wrapped interrupt",
			err:  cerr.Wrap(ErrInterrupted, "reading choice"),
			want: 130,
		},
		{
			name: "validation error",
			err:  NewValidationError("epochs out of range"),
			want: 2,
		},
		{
			name: "internal error",
			err:  NewInternalError("generated script failed to parse", errors.New("syntax error")),
			want: 3,
		},
		{
			name: "dependency error",
			err:  NewDependencyError("no usable python interpreter", nil, "install python3"),
			want: 3,
		},
		{
			name: "wrapped dependency error",
			err:  cerr.Wrap(NewDependencyError("python too old", nil), "setup"),
			want: 3,
		},
		{
			name: "generic error",
			err:  errors.New("boom"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestClassifiedErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewDependencyError("no usable python interpreter found", errors.New("exec: python3: not found"),
		"install python 3.9 or newer",
		"re-run visionctl setup",
	)

	msg := err.Error()
	assert.Contains(t, msg, "no usable python interpreter found")
	assert.Contains(t, msg, "Cause: exec: python3: not found")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. install python 3.9 or newer")
	assert.Contains(t, msg, "2. re-run visionctl setup")

	var classified *ClassifiedError
	require.True(t, errors.As(err, &classified))
	assert.Equal(t, CategoryDependency, classified.Category)
}

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		output        string
		maxCandidates int
		want          string
	}{
		{
			name:          "empty output",
			output:        "",
			maxCandidates: 3,
			want:          "No output provided.",
		},
		{
			name:          "single error line",
			output:        "ERROR: torch not compiled with CUDA enabled",
			maxCandidates: 3,
			want:          "ERROR: torch not compiled with CUDA enabled",
		},
		{
			name:          "candidates joined and capped",
			output:        "loading model\nError: weights missing\nFailed to open dataset\nfatal: cannot continue",
			maxCandidates: 2,
			want:          "Error: weights missing - Failed to open dataset",
		},
		{
			name:          "no keyword falls back to first line",
			output:        "epoch 1/100\nepoch 2/100",
			maxCandidates: 3,
			want:          "epoch 1/100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractSummary(tt.output, tt.maxCandidates))
		})
	}
}
