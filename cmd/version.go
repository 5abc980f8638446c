// cmd/version.go

package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// Build metadata, stamped via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Term.Printf("visionctl %s\n", Version)
		rc.Term.Printf("  commit: %s\n", Commit)
		rc.Term.Printf("  built:  %s\n", Date)
		rc.Term.Printf("  go:     %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	}),
}
