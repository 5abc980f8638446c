// pkg/execute/types.go

package execute

import (
	"io"
	"time"

	"go.uber.org/zap"
)

// Options describes one external command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// Env entries are appended to the current environment, e.g. the
	// VIRTUAL_ENV/PATH pair for venv-scoped invocations.
	Env     []string
	Timeout time.Duration
	Retries int
	Delay   time.Duration
	// Capture returns combined output to the caller.
	Capture bool
	// Stream receives live combined output while the command runs.
	// Nil keeps output in the capture buffer only.
	Stream io.Writer
	DryRun bool
	Logger *zap.Logger
}
