// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"go.uber.org/zap"
)

// Run executes a command with structured logging, retries and optional
// output capture. Shell execution is not supported; arguments are
// always passed as a vector.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	if opts.DryRun {
		logger.Info("Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	logger.Debug("Starting execution", zap.String("command", cmdStr), zap.String("dir", opts.Dir))

	attempts := opts.Retries
	if attempts < 1 {
		attempts = 1
	}

	var output string
	var err error

	for i := 1; i <= attempts; i++ {
		cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
		if opts.Dir != "" {
			cmd.Dir = opts.Dir
		}
		if len(opts.Env) > 0 {
			cmd.Env = append(os.Environ(), opts.Env...)
		}

		var buf bytes.Buffer
		var writer io.Writer = &buf
		if opts.Stream != nil {
			writer = io.MultiWriter(opts.Stream, &buf)
		}
		cmd.Stdout = writer
		cmd.Stderr = writer

		err = cmd.Run()
		output = buf.String()

		if err == nil {
			logger.Debug("Execution succeeded", zap.String("command", cmdStr), zap.Int("attempt", i))
			break
		}

		logger.Error("Execution failed", zap.Error(err),
			zap.Int("attempt", i),
			zap.String("command", cmdStr),
			zap.String("summary", vision_err.ExtractSummary(output, 2)),
		)

		if i < attempts {
			time.Sleep(opts.Delay)
		}
	}

	if err != nil {
		return output, cerr.Wrapf(err, "command failed after %d attempts", attempts)
	}

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// Cmd returns a function that executes the given command and args with default options
func Cmd(ctx context.Context, cmd string, args ...string) func() error {
	return func() error {
		_, err := Run(ctx, Options{
			Command: cmd,
			Args:    args,
		})
		return err
	}
}

// RunSimple executes a command with minimal options and structured logging
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{
		Command: cmd,
		Args:    args,
	})
	return err
}
