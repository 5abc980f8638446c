// cmd/setup.go

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// SetupCmd scaffolds the workspace: managed directories, virtual
// environment and maintenance scripts.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Scaffold the workspace, virtual environment and scripts",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v, err := commandViper(cmd)
		if err != nil {
			return err
		}
		_, err = console.Script(buildRegistry(), "workspace.setup").WithKwargs(kwargs(map[string]interface{}{
			"config":  v.GetString("config"),
			"confirm": !v.GetBool("yes"),
		})).Execute(rc)
		return err
	}),
}

func init() {
	cli.AddStringFlag(SetupCmd, "config", "c", "", "Path to an explicit workspace config file", false)
	cli.AddBoolFlag(SetupCmd, "yes", "y", false, "Create directories without asking for confirmation")
}
