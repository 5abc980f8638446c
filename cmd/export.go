// cmd/export.go

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// ExportCmd converts model weights into a deployment format.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export model weights to a deployment format",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v, err := commandViper(cmd)
		if err != nil {
			return err
		}
		_, err = console.Script(buildRegistry(), "pipeline.export").WithKwargs(kwargs(map[string]interface{}{
			"interactive": false,
			"config":      v.GetString("config"),
			"model":       v.GetString("model"),
			"format":      v.GetString("format"),
			"imgsz":       v.GetInt("imgsz"),
			"simplify":    v.GetBool("simplify"),
		})).Execute(rc)
		return err
	}),
}

func init() {
	cli.AddStringFlag(ExportCmd, "config", "c", "", "Path to an explicit workspace config file", false)
	cli.AddStringFlag(ExportCmd, "model", "m", "", "Model weights to convert", false)
	cli.AddStringFlag(ExportCmd, "format", "f", "ncnn", "Export format", false)
	cli.AddIntFlag(ExportCmd, "imgsz", "", 640, "Export image size (64-2048)")
	cli.AddBoolFlag(ExportCmd, "simplify", "", true, "Simplify the model graph during export")
}
