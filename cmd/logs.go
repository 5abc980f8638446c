// cmd/logs.go

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/logger"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// LogsCmd prints the JSON log file, colorized by level when the
// terminal is interactive.
var LogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the visionctl log file",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		path := cli.GetStringOrEmpty(cmd, "file")

		candidates := logger.PlatformLogPaths()
		if path != "" {
			candidates = []string{path}
		}

		for _, candidate := range candidates {
			contents, err := logger.TryReadLogFile(candidate)
			if err != nil {
				continue
			}
			rc.Term.Printf("Log file: %s\n\n", candidate)
			for _, line := range strings.Split(strings.TrimRight(contents, "\n"), "\n") {
				if rc.Term.Interactive() {
					line = logger.ColorizeLogLine(line)
				}
				rc.Term.Print(line + "\n")
			}
			return nil
		}

		return vision_err.NewValidationError("no readable log file found",
			"Run a command first, or pass --file with an explicit path")
	}),
}

func init() {
	cli.AddStringFlag(LogsCmd, "file", "f", "", "Read this log file instead of the platform defaults", false)
}
