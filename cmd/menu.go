// cmd/menu.go

package cmd

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/pipeline"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/workspace"
)

var buildRegistry = sync.OnceValue(func() *console.Registry {
	reg := console.NewRegistry()
	for _, m := range []console.Module{
		pipeline.Module{},
		workspace.Module{},
	} {
		m.Register(reg)
	}
	return reg
})

// buildRootMenu assembles the interactive console. Every entry
// dispatches through the same registry targets the non-interactive
// subcommands use.
func buildRootMenu(reg *console.Registry, configPath string) *console.Menu {
	kw := map[string]interface{}{"config": configPath}

	root := console.NewMenu("YOLO Venv Manager")
	root.Header = "Welcome to the YOLO Venv Management System"
	root.Footer = "Select an option to continue"

	root.Add(
		console.NewOption("Install", "Install the detection toolchain into the environment",
			console.Script(reg, "pipeline.install").WithKwargs(kw)),
		console.NewOption("Train", "Train a model on a dataset",
			console.Script(reg, "pipeline.train").WithKwargs(kw)),
		console.NewOption("Detect", "Run detection over a directory of images",
			console.Script(reg, "pipeline.detect").WithKwargs(kw)),
		console.NewOption("Export", "Export model weights to a deployment format",
			console.Script(reg, "pipeline.export").WithKwargs(kw)),
	)

	setup := root.Submenu("Workspace Setup")
	setup.Header = "Scaffold the workspace and virtual environment"
	setup.Add(
		console.NewOption("Run setup", "Create directories, environment and scripts",
			console.Script(reg, "workspace.setup").WithKwargs(kw)),
		console.NewOption("Show plan", "Describe what setup would do",
			console.Func("workspace.describe", func(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
				plan, err := console.Script(reg, "workspace.setup").Entry("describe").WithKwargs(kw).Execute(rc)
				if err != nil {
					return nil, err
				}
				rc.Term.Printf("%v\n", plan)
				return nil, nil
			})),
	)
	root.Add(console.NewOption("Setup", "Workspace and environment setup", console.OpenMenu(setup)))

	return root
}

// MenuCmd runs the interactive console.
var MenuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive console",
	Long:  "Opens the hierarchical console menu. All menu entries call the same pipeline targets as the non-interactive subcommands.",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		configPath := cli.GetStringOrEmpty(cmd, "config")
		root := buildRootMenu(buildRegistry(), configPath)
		return root.RunLoop(rc)
	}),
}

func init() {
	cli.AddStringFlag(MenuCmd, "config", "c", "", "Path to an explicit workspace config file", false)
}
