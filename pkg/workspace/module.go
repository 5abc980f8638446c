// pkg/workspace/module.go

package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/shared"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// Module exposes the workspace lifecycle as the console target
// "workspace.setup". The same handlers back the setup command and the
// Setup menu entry.
type Module struct{}

// Register implements console.Module.
func (Module) Register(r *console.Registry) {
	r.Register("workspace.setup", console.Target{
		"run":      runSetup,
		"describe": describeSetup,
	})
}

// runSetup scaffolds directories, provisions the venv and generates
// the maintenance scripts. Recognized kwargs: "config" (explicit
// config file path) and "confirm" (ask before creating directories,
// default true).
func runSetup(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := Load(rc, args.String("config", ""))
	if err != nil {
		return nil, err
	}

	if err := Setup(rc, cfg, args.Bool("confirm", true)); err != nil {
		return nil, err
	}

	configFile := filepath.Join(cfg.Root, shared.DefaultConfigFilename)
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := WriteDefault(rc, configFile); err != nil {
			return nil, err
		}
		rc.Term.Printf("✓ Wrote starter config: %s\n", configFile)
	}

	python, _, err := FindPython(rc, cfg.PythonSpec)
	if err != nil {
		return nil, err
	}

	if err := CreateVenv(rc, cfg, python); err != nil {
		return nil, err
	}

	scripts, err := GenerateScripts(rc, cfg)
	if err != nil {
		return nil, err
	}

	rc.Term.Print("\n=== Setup Summary ===\n")
	rc.Term.Printf("✓ Virtual environment created: %s\n", cfg.EnvName())
	rc.Term.Printf("✓ Scripts: %s\n", strings.Join(scripts, ", "))
	rc.Term.Print("\nSetup completed successfully!\n")
	return nil, nil
}

func describeSetup(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := Load(rc, args.String("config", ""))
	if err != nil {
		return nil, err
	}
	return "workspace.setup: scaffold " + strings.Join(cfg.Directories, ", ") +
		" under " + cfg.Root + ", provision venv " + cfg.EnvName() +
		" (python " + cfg.PythonSpec + "), generate maintenance scripts", nil
}
