// pkg/workspace/venv.go

package workspace

import (
	"os"
	"path/filepath"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/execute"
	"github.com/wastevision/visionctl/pkg/shared"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/xdg"
)

// Packages every managed venv gets, independent of model extras.
// tomli backs pyproject parsing on pythons older than 3.11.
var bootstrapPackages = []string{"wheel", "tomli"}

// CreateVenv provisions the managed venv with the given interpreter.
// Idempotent: an existing venv is reported and left alone. After
// creation the activate script exports VENV_NAME/VENV_PATH/VENV_MAIN
// and sources a post-activate hook that drops the operator into the
// console manager.
func CreateVenv(rc *vision_io.RuntimeContext, cfg *Config, python string) error {
	logger := otelzap.Ctx(rc.Ctx)
	envPath := cfg.VenvPath()

	rc.Term.Print("\n=== Creating Virtual Environment ===\n")
	rc.Term.Printf("\nCreating environment: %s\n", cfg.EnvName())

	if dirExists(envPath) {
		rc.Term.Printf("✓ Environment '%s' already exists at %s\n", cfg.EnvName(), envPath)
		return nil
	}

	if err := xdg.EnsureDir(cfg.VenvHome()); err != nil {
		return cerr.Wrapf(err, "creating venv home %s", cfg.VenvHome())
	}

	if _, err := execute.Run(rc.Ctx, execute.Options{
		Command: python,
		Args:    []string{"-m", "venv", envPath, "--prompt=" + cfg.EnvName()},
		Capture: true,
		Timeout: 5 * time.Minute,
		Logger:  rc.Log,
	}); err != nil {
		return cerr.Wrapf(err, "creating venv %s", cfg.EnvName())
	}

	if err := wireActivation(rc, cfg); err != nil {
		return err
	}

	installBootstrapPackages(rc, cfg)

	rc.Term.Printf("✓ Successfully created: %s at %s\n", cfg.EnvName(), envPath)
	logger.Info("Venv created",
		zap.String("env", cfg.EnvName()),
		zap.String("path", envPath),
		zap.String("python", python))
	return nil
}

// wireActivation appends the identity exports to bin/activate and
// installs the post-activate hook. Both snippets go through the shell
// parser first so a templating mistake cannot corrupt the venv.
func wireActivation(rc *vision_io.RuntimeContext, cfg *Config) error {
	activate := filepath.Join(cfg.VenvPath(), "bin", "activate")
	hook := filepath.Join(cfg.VenvPath(), "bin", "post_activate")

	exports := "\nexport " + shared.EnvVenvName + "=\"" + cfg.EnvName() + "\"\n" +
		"export " + shared.EnvVenvPath + "=\"" + cfg.VenvPath() + "\"\n" +
		"export " + shared.EnvVenvMain + "=\"" + cfg.Root + "\"\n"

	hookBody := "#!/bin/bash\n" +
		"cd \"" + cfg.Root + "\"\n" +
		"exec " + shared.AppID + " menu\n"

	for name, body := range map[string]string{
		"activate exports": exports,
		"post_activate":    hookBody,
	} {
		if err := validateShell(name, body); err != nil {
			return err
		}
	}

	if err := os.WriteFile(hook, []byte(hookBody), xdg.FilePermExecutable); err != nil {
		return cerr.Wrap(err, "writing post-activate hook")
	}

	return appendToFile(activate, exports+"\nsource \""+hook+"\"\n")
}

// installBootstrapPackages best-effort installs the baseline packages.
// Failures are reported but do not fail venv creation, matching pip's
// own "warn and move on" posture for optional tooling.
func installBootstrapPackages(rc *vision_io.RuntimeContext, cfg *Config) {
	logger := otelzap.Ctx(rc.Ctx)
	pip := filepath.Join(cfg.VenvPath(), "bin", "pip")

	for _, pkg := range bootstrapPackages {
		if _, err := execute.Run(rc.Ctx, execute.Options{
			Command: pip,
			Args:    []string{"install", pkg},
			Capture: true,
			Timeout: 2 * time.Minute,
			Logger:  rc.Log,
		}); err != nil {
			rc.Term.Errorf("⚠️  Could not install %s into %s: %v\n", pkg, cfg.EnvName(), err)
			logger.Warn("Bootstrap package install failed", zap.String("package", pkg), zap.Error(err))
		}
	}
}

// VenvEnv returns the environment entries that scope a subprocess to
// the managed venv. PATH is prefixed with the venv's bin so `yolo` and
// `pip` resolve inside it.
func VenvEnv(cfg *Config) []string {
	venv := cfg.VenvPath()
	return []string{
		"VIRTUAL_ENV=" + venv,
		"PATH=" + filepath.Join(venv, "bin") + string(os.PathListSeparator) + os.Getenv("PATH"),
		shared.EnvVenvName + "=" + cfg.EnvName(),
		shared.EnvVenvPath + "=" + venv,
		shared.EnvVenvMain + "=" + cfg.Root,
	}
}

func appendToFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return cerr.Wrapf(err, "opening %s for append", path)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return cerr.Wrapf(err, "appending to %s", path)
	}
	return nil
}
