// cmd/train.go

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/vision_cli"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// TrainCmd launches a non-interactive training run. Flags mirror the
// interactive form's fields; unset values fall back to the same
// defaults the form suggests.
var TrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model on a dataset",
	Long:  "Runs one training job inside the managed virtual environment. Results land under a fresh runs/train directory.",
	RunE: vision_cli.Wrap(func(rc *vision_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v, err := commandViper(cmd)
		if err != nil {
			return err
		}
		_, err = console.Script(buildRegistry(), "pipeline.train").WithKwargs(kwargs(map[string]interface{}{
			"interactive": false,
			"config":      v.GetString("config"),
			"data":        v.GetString("data"),
			"model":       v.GetString("model"),
			"epochs":      v.GetInt("epochs"),
			"batch":       v.GetInt("batch"),
			"imgsz":       v.GetInt("imgsz"),
			"patience":    v.GetInt("patience"),
			"workers":     v.GetInt("workers"),
			"device":      v.GetString("device"),
		})).Execute(rc)
		return err
	}),
}

func init() {
	cli.AddStringFlag(TrainCmd, "config", "c", "", "Path to an explicit workspace config file", false)
	cli.AddStringFlag(TrainCmd, "data", "d", "", "Dataset descriptor (data.yaml)", true)
	cli.AddStringFlag(TrainCmd, "model", "m", "", "Model weights to start from", false)
	cli.AddIntFlag(TrainCmd, "epochs", "e", 100, "Training epochs (1-1000)")
	cli.AddIntFlag(TrainCmd, "batch", "b", 16, "Batch size (1-128)")
	cli.AddIntFlag(TrainCmd, "imgsz", "", 640, "Training image size (64-2048)")
	cli.AddIntFlag(TrainCmd, "patience", "", 50, "Early stopping patience (1-100)")
	cli.AddIntFlag(TrainCmd, "workers", "", 8, "Dataloader workers (1-32)")
	cli.AddStringFlag(TrainCmd, "device", "", "cpu", "Compute device: cpu, cuda or mps", false)
}
