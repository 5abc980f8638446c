// cmd/install.go

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// InstallCmd pip-installs the toolchain checkout into the managed
// virtual environment.
var InstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the detection toolchain into the environment",
	Long:  "Installs the toolchain source checkout (plus any optional extras) into the managed virtual environment with pip. The pyproject path is auto-discovered under third_party/ultralytics when not given.",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v, err := commandViper(cmd)
		if err != nil {
			return err
		}
		kw := kwargs(map[string]interface{}{
			"interactive": false,
			"config":      v.GetString("config"),
			"pyproject":   v.GetString("pyproject"),
			"quiet":       v.GetBool("quiet"),
		})
		if extras := v.GetStringSlice("extras"); len(extras) > 0 {
			kw["extras"] = extras
		}
		_, err = console.Script(buildRegistry(), "pipeline.install").WithKwargs(kw).Execute(rc)
		return err
	}),
}

func init() {
	cli.AddStringFlag(InstallCmd, "config", "c", "", "Path to an explicit workspace config file", false)
	cli.AddStringFlag(InstallCmd, "pyproject", "p", "", "Path to the toolchain's pyproject.toml", false)
	cli.AddStringSliceFlag(InstallCmd, "extras", "x", nil, "Optional extras to install (export, dev, solutions, logging, extras)")
	cli.AddBoolFlag(InstallCmd, "quiet", "q", false, "Quiet pip output")
}
