// cmd/detect.go

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// DetectCmd runs batch inference over a directory of images.
var DetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run detection over a directory of images",
	Long:  "Runs the detection toolchain over every image under --source. Annotated images land under <output>/overlays and per-image detection text files under <output>/detections.",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v, err := commandViper(cmd)
		if err != nil {
			return err
		}
		_, err = console.Script(buildRegistry(), "pipeline.detect").WithKwargs(kwargs(map[string]interface{}{
			"interactive": false,
			"config":      v.GetString("config"),
			"model":       v.GetString("model"),
			"source":      v.GetString("source"),
			"output":      v.GetString("output"),
			"conf":        v.GetFloat64("conf"),
			"save-txt":    v.GetBool("save-txt"),
		})).Execute(rc)
		return err
	}),
}

func init() {
	cli.AddStringFlag(DetectCmd, "config", "c", "", "Path to an explicit workspace config file", false)
	cli.AddStringFlag(DetectCmd, "model", "m", "", "Model weights to run", false)
	cli.AddStringFlag(DetectCmd, "source", "s", "", "Directory of images to process", true)
	cli.AddStringFlag(DetectCmd, "output", "o", "", "Output directory (default: a fresh runs/detect directory)", false)
	cli.AddFloat64Flag(DetectCmd, "conf", "", 0.25, "Confidence threshold (0-1)")
	cli.AddBoolFlag(DetectCmd, "save-txt", "", true, "Write per-image detection text files")
}
