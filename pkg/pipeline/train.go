// pkg/pipeline/train.go

package pipeline

import (
	"path/filepath"
	"strconv"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/input"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/workspace"
)

// TrainSettings parameterizes one training run. Ranges mirror what
// the toolchain accepts.
type TrainSettings struct {
	Data      string `mapstructure:"data" validate:"required"`
	Model     string `mapstructure:"model" validate:"required"`
	Epochs    int    `mapstructure:"epochs" validate:"min=1,max=1000"`
	Batch     int    `mapstructure:"batch" validate:"min=1,max=128"`
	ImageSize int    `mapstructure:"imgsz" validate:"min=64,max=2048"`
	Patience  int    `mapstructure:"patience" validate:"min=1,max=100"`
	Workers   int    `mapstructure:"workers" validate:"min=1,max=32"`
	Device    string `mapstructure:"device" validate:"required,oneof=cpu cuda mps"`
}

func defaultTrainSettings(cfg *workspace.Config) *TrainSettings {
	return &TrainSettings{
		Model:     cfg.ModelWeight,
		Epochs:    100,
		Batch:     16,
		ImageSize: 640,
		Patience:  50,
		Workers:   8,
		Device:    "cpu",
	}
}

func promptTrainSettings(rc *vision_io.RuntimeContext, cfg *workspace.Config) (*TrainSettings, error) {
	s := defaultTrainSettings(cfg)

	data, err := input.PromptString(rc, input.FilePath("Dataset descriptor (data.yaml)"))
	if err != nil {
		return nil, err
	}
	s.Data = data

	if s.Model, err = input.PromptString(rc, input.FilePath("Model weights").Default(s.Model)); err != nil {
		return nil, err
	}
	if s.Epochs, err = input.PromptInt(rc, input.Integer("Epochs").Range(1, 1000).Default(s.Epochs)); err != nil {
		return nil, err
	}
	if s.Batch, err = input.PromptInt(rc, input.Integer("Batch size").Range(1, 128).Default(s.Batch)); err != nil {
		return nil, err
	}
	if s.ImageSize, err = input.PromptInt(rc, input.Integer("Image size").Range(64, 2048).Default(s.ImageSize)); err != nil {
		return nil, err
	}
	if s.Patience, err = input.PromptInt(rc, input.Integer("Early stopping patience").Range(1, 100).Default(s.Patience)); err != nil {
		return nil, err
	}
	if s.Workers, err = input.PromptInt(rc, input.Integer("Dataloader workers").Range(1, 32).Default(s.Workers)); err != nil {
		return nil, err
	}
	if s.Device, err = input.PromptString(rc, input.Choice("Device", "cpu", "cuda", "mps").Default(s.Device)); err != nil {
		return nil, err
	}
	return s, nil
}

func trainSettingsFromArgs(cfg *workspace.Config, args console.Args) *TrainSettings {
	s := defaultTrainSettings(cfg)
	s.Data = args.String("data", s.Data)
	s.Model = args.String("model", s.Model)
	s.Epochs = args.Int("epochs", s.Epochs)
	s.Batch = args.Int("batch", s.Batch)
	s.ImageSize = args.Int("imgsz", s.ImageSize)
	s.Patience = args.Int("patience", s.Patience)
	s.Workers = args.Int("workers", s.Workers)
	s.Device = args.String("device", s.Device)
	return s
}

// datasetDescriptor is the subset of data.yaml the preflight cares
// about: where the train and val splits live.
type datasetDescriptor struct {
	Train string `yaml:"train"`
	Val   string `yaml:"val"`
}

// checkDataset parses the dataset descriptor before any subprocess
// starts, so a missing split surfaces as a one-line validation error
// instead of a toolchain stack trace minutes into the run.
func checkDataset(rc *vision_io.RuntimeContext, path string) error {
	var desc datasetDescriptor
	if err := vision_io.ReadYAML(rc.Ctx, path, &desc); err != nil {
		return vision_err.NewValidationError(
			"dataset descriptor "+path+" is not readable YAML: "+err.Error(),
			"Point --data at a valid data.yaml",
		)
	}
	if desc.Train == "" || desc.Val == "" {
		return vision_err.NewValidationError(
			"dataset descriptor "+path+" must define train and val splits",
			"Add train: and val: entries to the descriptor",
		)
	}
	return nil
}

// Train launches one training run inside the venv. Results land in
// the first free of runs/train, runs/train2, ... so repeated runs
// never clobber earlier ones.
func Train(rc *vision_io.RuntimeContext, cfg *workspace.Config, s *TrainSettings) (string, error) {
	if err := checkSettings("training", s); err != nil {
		return "", err
	}
	if err := checkDataset(rc, s.Data); err != nil {
		return "", err
	}

	runDir := workspace.UniqueDir(filepath.Join(cfg.Root, "runs"), "train")

	otelzap.Ctx(rc.Ctx).Info("Starting training run",
		zap.String("data", s.Data),
		zap.String("model", s.Model),
		zap.Int("epochs", s.Epochs),
		zap.String("device", s.Device),
		zap.String("run_dir", runDir),
	)
	rc.Term.Printf("Training %s on %s\n", s.Model, s.Data)

	if _, err := runVenvTool(rc, cfg, trainTimeout, yoloBinary, trainArgs(s, runDir)...); err != nil {
		return "", cerr.Wrap(err, "training run failed")
	}

	rc.Term.Printf("✓ Training complete. Results under %s\n", runDir)
	return runDir, nil
}

// trainArgs renders the yolo invocation. project/name split the run
// directory so the toolchain writes exactly there.
func trainArgs(s *TrainSettings, runDir string) []string {
	return []string{
		"train",
		kv("data", s.Data),
		kv("model", s.Model),
		kv("epochs", strconv.Itoa(s.Epochs)),
		kv("batch", strconv.Itoa(s.Batch)),
		kv("imgsz", strconv.Itoa(s.ImageSize)),
		kv("patience", strconv.Itoa(s.Patience)),
		kv("workers", strconv.Itoa(s.Workers)),
		kv("device", s.Device),
		kv("project", filepath.Dir(runDir)),
		kv("name", filepath.Base(runDir)),
	}
}

func (s *TrainSettings) summary() string {
	return summarize("Training settings", [][2]string{
		{"data", s.Data},
		{"model", s.Model},
		{"epochs", strconv.Itoa(s.Epochs)},
		{"batch", strconv.Itoa(s.Batch)},
		{"imgsz", strconv.Itoa(s.ImageSize)},
		{"patience", strconv.Itoa(s.Patience)},
		{"workers", strconv.Itoa(s.Workers)},
		{"device", s.Device},
	})
}
