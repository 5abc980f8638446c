// pkg/pipeline/install.go

package pipeline

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/input"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/workspace"
)

// installExtras are the optional dependency groups the vendored
// toolchain publishes. "none" is an explicit opt-out.
var installExtras = []string{"export", "dev", "solutions", "logging", "extras", "none"}

const defaultPyprojectRel = "third_party/ultralytics/pyproject.toml"

// InstallSettings parameterizes installing the toolchain into the
// managed venv from a source checkout.
type InstallSettings struct {
	Pyproject string   `mapstructure:"pyproject" validate:"required"`
	Extras    []string `mapstructure:"extras" validate:"dive,oneof=export dev solutions logging extras none"`
	Quiet     bool     `mapstructure:"quiet"`
}

// InstallProbe reports what an install would use, for preflight
// diagnostics.
type InstallProbe struct {
	VenvPython string
	VenvReady  bool
	Pyproject  string
}

// discoverPyproject suggests the vendored checkout when it exists
// under the workspace root.
func discoverPyproject(cfg *workspace.Config) string {
	candidate := filepath.Join(cfg.Root, filepath.FromSlash(defaultPyprojectRel))
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

func probeInstall(cfg *workspace.Config) InstallProbe {
	probe := InstallProbe{
		VenvPython: cfg.VenvPython(),
		Pyproject:  discoverPyproject(cfg),
	}
	if _, err := os.Stat(probe.VenvPython); err == nil {
		probe.VenvReady = true
	}
	return probe
}

func promptInstallSettings(rc *vision_io.RuntimeContext, cfg *workspace.Config) (*InstallSettings, error) {
	s := &InstallSettings{}

	pathSpec := input.FilePath("Path to pyproject.toml")
	if suggested := discoverPyproject(cfg); suggested != "" {
		pathSpec = pathSpec.Default(suggested)
	}
	pyproject, err := input.PromptString(rc, pathSpec)
	if err != nil {
		return nil, err
	}
	s.Pyproject = pyproject

	extras, err := input.Prompt(rc, input.Choice("Optional extras", installExtras...).Multiple().AllowEmpty())
	if err != nil {
		return nil, err
	}
	s.Extras = input.StringSlice(extras)

	if s.Quiet, err = input.PromptBool(rc, input.Boolean("Quiet pip output").Default(false)); err != nil {
		return nil, err
	}
	return s, nil
}

func installSettingsFromArgs(cfg *workspace.Config, args console.Args) *InstallSettings {
	return &InstallSettings{
		Pyproject: args.String("pyproject", discoverPyproject(cfg)),
		Extras:    args.Strings("extras"),
		Quiet:     args.Bool("quiet", false),
	}
}

// Install pip-installs the toolchain checkout (with any extras) into
// the managed venv.
func Install(rc *vision_io.RuntimeContext, cfg *workspace.Config, s *InstallSettings) error {
	if err := checkSettings("install", s); err != nil {
		return err
	}

	probe := probeInstall(cfg)
	if !probe.VenvReady {
		return vision_err.NewDependencyError(
			"venv python not found at "+probe.VenvPython, nil,
			"Run `visionctl setup` to create the environment first",
		)
	}

	target := installTarget(s)
	otelzap.Ctx(rc.Ctx).Info("Installing toolchain",
		zap.String("target", target),
		zap.String("python", probe.VenvPython),
		zap.Bool("quiet", s.Quiet),
	)
	rc.Term.Printf("Installing %s\n", target)

	args := []string{"-m", "pip", "install"}
	if s.Quiet {
		args = append(args, "-q")
	}
	args = append(args, target)

	if _, err := runVenvTool(rc, cfg, installTimeout, probe.VenvPython, args...); err != nil {
		return cerr.Wrap(err, "toolchain install failed")
	}

	rc.Term.Printf("✓ Installed %s into %s\n", target, cfg.EnvName())
	return nil
}

// installTarget renders the pip requirement: the checkout directory,
// plus extras as dir[a,b]. "none" entries are dropped.
func installTarget(s *InstallSettings) string {
	dir := filepath.Dir(s.Pyproject)
	extras := make([]string, 0, len(s.Extras))
	for _, e := range s.Extras {
		if e == "" || e == "none" {
			continue
		}
		extras = append(extras, e)
	}
	if len(extras) == 0 {
		return dir
	}
	return dir + "[" + strings.Join(extras, ",") + "]"
}

func (s *InstallSettings) summary() string {
	extras := strings.Join(s.Extras, ",")
	if extras == "" {
		extras = "(none)"
	}
	return summarize("Install settings", [][2]string{
		{"pyproject", s.Pyproject},
		{"extras", extras},
		{"quiet", strconv.FormatBool(s.Quiet)},
	})
}
