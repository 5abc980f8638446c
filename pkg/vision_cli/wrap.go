// pkg/vision_cli/wrap.go

package vision_cli

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/logger"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// Wrap adapts an rc-style handler to cobra's RunE signature, putting
// logging setup, panic recovery and runtime bookkeeping around every
// command the same way.
func Wrap(fn func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.EnsureInitialized()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rc := vision_io.NewContext(ctx, cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !vision_err.IsExpectedUserError(err) && !vision_err.IsInterrupt(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
