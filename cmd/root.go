// cmd/root.go

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/logger"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// RootCmd is the base command for visionctl.
var RootCmd = &cobra.Command{
	Use:   "visionctl",
	Short: "Console manager for a YOLO vision toolchain",
	Long: `visionctl manages a YOLO training workspace: virtual environment
setup, toolchain installation, model training, detection runs and
weight export, either through an interactive console menu or through
non-interactive subcommands.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Term.Print("No subcommand provided. Try `visionctl menu` or `visionctl help`.\n")
		return cmd.Help()
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, sub := range []*cobra.Command{
		MenuCmd,
		SetupCmd,
		TrainCmd,
		DetectCmd,
		ExportCmd,
		InstallCmd,
		LogsCmd,
		VersionCmd,
	} {
		RootCmd.AddCommand(sub)
	}
}

// Execute runs the root command and maps the outcome to a process
// exit code: 0 for success and expected user errors, 130 for
// interrupts, the classified category code otherwise.
func Execute() {
	defer logger.Sync()

	handler := vision_cli.NewSignalHandler(context.Background())

	RegisterCommands()

	err := RootCmd.ExecuteContext(handler.Context())
	if err == nil {
		return
	}

	code := vision_err.GetExitCode(err)
	switch {
	case vision_err.IsInterrupt(err):
		fmt.Fprintln(os.Stderr, "\nInterrupted.")
		logger.GetLogger().Warn("CLI interrupted", zap.Error(err))
	case vision_err.IsExpectedUserError(err):
		fmt.Fprintln(os.Stderr, err.Error())
		logger.GetLogger().Warn("CLI completed with user error", zap.Error(err))
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.GetLogger().Error("CLI command failed", zap.Error(err))
	}
	logger.Sync()
	os.Exit(code)
}
