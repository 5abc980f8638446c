// pkg/pipeline/export.go

package pipeline

import (
	"path/filepath"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/input"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/workspace"
)

// exportFormats is the closed set of supported targets. ncnn is the
// only deployment format the downstream firmware consumes.
var exportFormats = []string{"ncnn"}

// ExportSettings parameterizes a weight conversion.
type ExportSettings struct {
	Model     string `mapstructure:"model" validate:"required"`
	Format    string `mapstructure:"format" validate:"required,oneof=ncnn"`
	ImageSize int    `mapstructure:"imgsz" validate:"min=64,max=2048"`
	Simplify  bool   `mapstructure:"simplify"`
}

func defaultExportSettings(cfg *workspace.Config) *ExportSettings {
	return &ExportSettings{
		Model:     cfg.ModelWeight,
		Format:    exportFormats[0],
		ImageSize: 640,
		Simplify:  true,
	}
}

func promptExportSettings(rc *vision_io.RuntimeContext, cfg *workspace.Config) (*ExportSettings, error) {
	s := defaultExportSettings(cfg)

	model, err := input.PromptString(rc, input.FilePath("Model weights").Default(s.Model))
	if err != nil {
		return nil, err
	}
	s.Model = model

	if s.Format, err = input.PromptString(rc, input.Choice("Export format", exportFormats...).Default(s.Format)); err != nil {
		return nil, err
	}
	if s.ImageSize, err = input.PromptInt(rc, input.Integer("Image size").Range(64, 2048).Default(s.ImageSize)); err != nil {
		return nil, err
	}
	if s.Simplify, err = input.PromptBool(rc, input.Boolean("Simplify model graph").Default(s.Simplify)); err != nil {
		return nil, err
	}
	return s, nil
}

func exportSettingsFromArgs(cfg *workspace.Config, args console.Args) *ExportSettings {
	s := defaultExportSettings(cfg)
	s.Model = args.String("model", s.Model)
	s.Format = args.String("format", s.Format)
	s.ImageSize = args.Int("imgsz", s.ImageSize)
	s.Simplify = args.Bool("simplify", s.Simplify)
	return s
}

// Export converts weights into the deployment format and reports the
// artifact location.
func Export(rc *vision_io.RuntimeContext, cfg *workspace.Config, s *ExportSettings) (string, error) {
	if err := checkSettings("export", s); err != nil {
		return "", err
	}

	otelzap.Ctx(rc.Ctx).Info("Starting export",
		zap.String("model", s.Model),
		zap.String("format", s.Format),
		zap.Int("imgsz", s.ImageSize),
	)
	rc.Term.Printf("Exporting %s to %s\n", s.Model, s.Format)

	if _, err := runVenvTool(rc, cfg, exportTimeout, yoloBinary, exportArgs(s)...); err != nil {
		return "", cerr.Wrap(err, "export failed")
	}

	artifact := s.artifactPath()
	rc.Term.Printf("✓ Export complete. Artifact: %s\n", artifact)
	return artifact, nil
}

func exportArgs(s *ExportSettings) []string {
	return []string{
		"export",
		kv("model", s.Model),
		kv("format", s.Format),
		kv("imgsz", strconv.Itoa(s.ImageSize)),
		kv("simplify", pythonBool(s.Simplify)),
	}
}

// artifactPath is where the toolchain writes the export: the weight
// basename plus "_<format>_model", next to the source weights.
func (s *ExportSettings) artifactPath() string {
	base := strings.TrimSuffix(s.Model, filepath.Ext(s.Model))
	return base + "_" + s.Format + "_model"
}

func (s *ExportSettings) summary() string {
	return summarize("Export settings", [][2]string{
		{"model", s.Model},
		{"format", s.Format},
		{"imgsz", strconv.Itoa(s.ImageSize)},
		{"simplify", strconv.FormatBool(s.Simplify)},
	})
}
