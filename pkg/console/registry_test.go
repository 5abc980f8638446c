package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

func noopHandler(rc *vision_io.RuntimeContext, args Args) (interface{}, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("workspace.setup", Target{"run": noopHandler})

	target, err := reg.Resolve("workspace.setup")
	require.NoError(t, err)
	assert.Contains(t, target, "run")

	_, err = reg.Resolve("workspace.teardown")
	require.Error(t, err)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "workspace.teardown", resErr.Target)
}

func TestRegistryDuplicateTargetPanics(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("pipeline.train", Target{"run": noopHandler})
	assert.Panics(t, func() {
		reg.Register("pipeline.train", Target{"run": noopHandler})
	})
}

func TestRegistryTargetsSorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("workspace.setup", Target{"run": noopHandler})
	reg.Register("pipeline.train", Target{"run": noopHandler})
	reg.Register("pipeline.detect", Target{"run": noopHandler})

	assert.Equal(t, []string{"pipeline.detect", "pipeline.train", "workspace.setup"}, reg.Targets())
}

func TestTargetEntryPointsSkipInternal(t *testing.T) {
	t.Parallel()

	target := Target{
		"run":      noopHandler,
		"describe": noopHandler,
		"_probe":   noopHandler,
	}
	assert.Equal(t, []string{"describe", "run"}, target.EntryPoints())
}
