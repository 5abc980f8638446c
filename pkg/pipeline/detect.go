// pkg/pipeline/detect.go

package pipeline

import (
	"fmt"
	"os"
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
	"github.com/wastevision/visionctl/pkg/xdg"
)

// DetectSettings parameterizes batch inference over a directory of
// images. An empty Output picks a fresh run directory.
type DetectSettings struct {
	Model      string  `mapstructure:"model" validate:"required"`
	Source     string  `mapstructure:"source" validate:"required"`
	Output     string  `mapstructure:"output"`
	Confidence float64 `mapstructure:"conf" validate:"min=0,max=1"`
	SaveTxt    bool    `mapstructure:"save-txt"`
}

func defaultDetectSettings(cfg *workspace.Config) *DetectSettings {
	return &DetectSettings{
		Model:      cfg.ModelWeight,
		Confidence: 0.25,
		SaveTxt:    true,
	}
}

func promptDetectSettings(rc *vision_io.RuntimeContext, cfg *workspace.Config) (*DetectSettings, error) {
	s := defaultDetectSettings(cfg)

	model, err := input.PromptString(rc, input.FilePath("Model weights").Default(s.Model))
	if err != nil {
		return nil, err
	}
	s.Model = model

	if s.Source, err = input.PromptString(rc, input.DirPath("Image directory")); err != nil {
		return nil, err
	}
	suggested := workspace.UniqueDir(filepath.Join(cfg.Root, "runs"), "detect")
	if s.Output, err = input.PromptString(rc, input.Text("Output directory").Default(suggested)); err != nil {
		return nil, err
	}
	if s.Confidence, err = input.PromptFloat(rc, input.Float("Confidence threshold").Range(0, 1).Default(s.Confidence)); err != nil {
		return nil, err
	}
	if s.SaveTxt, err = input.PromptBool(rc, input.Boolean("Save detection text files").Default(s.SaveTxt)); err != nil {
		return nil, err
	}
	return s, nil
}

func detectSettingsFromArgs(cfg *workspace.Config, args console.Args) *DetectSettings {
	s := defaultDetectSettings(cfg)
	s.Model = args.String("model", s.Model)
	s.Source = args.String("source", s.Source)
	s.Output = args.String("output", s.Output)
	s.Confidence = args.Float("conf", s.Confidence)
	s.SaveTxt = args.Bool("save-txt", s.SaveTxt)
	return s
}

// Detect runs inference over every image under Source. Annotated
// images land in <output>/overlays, per-image detection text files in
// <output>/detections.
func Detect(rc *vision_io.RuntimeContext, cfg *workspace.Config, s *DetectSettings) (string, error) {
	if err := checkSettings("detection", s); err != nil {
		return "", err
	}
	if s.Output == "" {
		s.Output = workspace.UniqueDir(filepath.Join(cfg.Root, "runs"), "detect")
	}

	overlays := filepath.Join(s.Output, "overlays")
	detections := filepath.Join(s.Output, "detections")
	for _, dir := range []string{overlays, detections} {
		if err := xdg.EnsureDir(dir); err != nil {
			return "", cerr.Wrapf(err, "scaffolding %s", dir)
		}
	}

	otelzap.Ctx(rc.Ctx).Info("Starting detection run",
		zap.String("model", s.Model),
		zap.String("source", s.Source),
		zap.String("output", s.Output),
		zap.Float64("conf", s.Confidence),
	)
	rc.Term.Printf("Detecting objects in %s\n", s.Source)

	if _, err := runVenvTool(rc, cfg, detectTimeout, yoloBinary, detectArgs(s, overlays)...); err != nil {
		return "", cerr.Wrap(err, "detection run failed")
	}

	processed, err := collectDetections(overlays, detections)
	if err != nil {
		return "", err
	}
	rc.Term.Printf("Processed %d images.\n", processed)
	return s.Output, nil
}

func detectArgs(s *DetectSettings, overlays string) []string {
	args := []string{
		"predict",
		kv("model", s.Model),
		kv("source", s.Source),
		kv("conf", strconv.FormatFloat(s.Confidence, 'f', -1, 64)),
		kv("project", filepath.Dir(overlays)),
		kv("name", filepath.Base(overlays)),
		// overlays is scaffolded before the run; the toolchain must
		// reuse it instead of minting overlays2.
		kv("exist_ok", "True"),
		kv("save", "True"),
	}
	if s.SaveTxt {
		args = append(args, kv("save_txt", "True"), kv("save_conf", "True"))
	}
	return args
}

// collectDetections rewrites the toolchain's label files into the
// detections directory and reports how many images produced one. The
// toolchain emits "class cx cy w h [conf]" in normalized center
// coordinates; the published format is corner coordinates.
func collectDetections(overlays, detections string) (int, error) {
	labels := filepath.Join(overlays, "labels")
	entries, err := os.ReadDir(labels)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, cerr.Wrap(err, "reading label directory")
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		src := filepath.Join(labels, entry.Name())
		data, readErr := os.ReadFile(src)
		if readErr != nil {
			return count, cerr.Wrapf(readErr, "reading %s", src)
		}
		converted, convErr := convertLabelFile(string(data))
		if convErr != nil {
			return count, cerr.Wrapf(convErr, "converting %s", entry.Name())
		}
		dst := filepath.Join(detections, entry.Name())
		if writeErr := os.WriteFile(dst, []byte(converted), xdg.FilePermStandard); writeErr != nil {
			return count, cerr.Wrapf(writeErr, "writing %s", dst)
		}
		if rmErr := os.Remove(src); rmErr != nil {
			return count, cerr.Wrapf(rmErr, "removing %s", src)
		}
		count++
	}
	if count > 0 {
		// Only succeeds once empty, which is the point.
		_ = os.Remove(labels)
	}
	return count, nil
}

func convertLabelFile(content string) (string, error) {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		converted, err := convertLabelLine(line)
		if err != nil {
			return "", err
		}
		b.WriteString(converted)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// convertLabelLine turns "class cx cy w h [conf]" into
// "class conf x1 y1 x2 y2". A missing confidence (save_conf off)
// reports as 1.00.
func convertLabelLine(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 && len(fields) != 6 {
		return "", cerr.Newf("malformed label line %q", line)
	}

	vals := make([]float64, 0, 5)
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return "", cerr.Wrapf(err, "malformed label line %q", line)
		}
		vals = append(vals, v)
	}

	cx, cy, w, h := vals[0], vals[1], vals[2], vals[3]
	conf := 1.0
	if len(vals) == 5 {
		conf = vals[4]
	}
	return fmt.Sprintf("%s %.2f %.6f %.6f %.6f %.6f",
		fields[0], conf, cx-w/2, cy-h/2, cx+w/2, cy+h/2), nil
}

func (s *DetectSettings) summary() string {
	output := s.Output
	if output == "" {
		output = "(next free runs/detect directory)"
	}
	return summarize("Detection settings", [][2]string{
		{"model", s.Model},
		{"source", s.Source},
		{"output", output},
		{"conf", strconv.FormatFloat(s.Confidence, 'f', 2, 64)},
		{"save-txt", strconv.FormatBool(s.SaveTxt)},
	})
}
