// pkg/workspace/scripts.go
//
// Generated maintenance scripts for the workspace: an activation menu,
// a cache cleaner, and a dependency updater. Each rendered script is
// run through the shell parser before it is written, so a bad template
// substitution surfaces as an internal error instead of a broken file
// in the operator's workspace.

package workspace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"

	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/xdg"
)

type scriptData struct {
	Root     string
	VenvHome string
	VenvName string
	EnvName  string
	VenvPath string
	Activate string
	RunsDir  string
}

var scriptFuncs = template.FuncMap{
	"upper": strings.ToUpper,
}

var activationTemplate = template.Must(template.New("activate_env.sh").Funcs(scriptFuncs).Parse(`#!/bin/bash
cd "$(dirname "$0")"

# Set environment variables
export WORKON_HOME="{{ .VenvHome }}"

echo "Select the virtual environment to activate:"
echo "1. {{ upper .VenvName }} Environment"
echo "2. Exit"

read -p "Enter your choice (1-2): " choice

if [ "$choice" -eq 1 ]; then
    echo "Activating {{ .EnvName }}..."
    if [ -f "{{ .Activate }}" ]; then
        source "{{ .Activate }}"
        exec bash --norc
    else
        echo "[ERROR] Environment {{ .EnvName }} not found at {{ .VenvPath }}"
        read -p "Press enter to continue..."
        exit 1
    fi
fi

if [ "$choice" -eq 2 ]; then
    echo "Exiting..."
    exit 0
fi

echo "Invalid choice: $choice"
read -p "Press enter to continue..."
exit 1
`))

var cleanTemplate = template.Must(template.New("clean_project.sh").Funcs(scriptFuncs).Parse(`#!/bin/bash
# Clean project cache and temporary files
echo "Cleaning project at: {{ .Root }}"

# Python cache files
echo "Removing __pycache__ directories..."
find "{{ .Root }}" -type d -name "__pycache__" -exec rm -rf {} +

# Python compiled files
echo "Removing .pyc and .pyo files..."
find "{{ .Root }}" -type f -name "*.pyc" -delete
find "{{ .Root }}" -type f -name "*.pyo" -delete

# Jupyter notebook checkpoints
echo "Removing .ipynb_checkpoints..."
find "{{ .Root }}" -type d -name ".ipynb_checkpoints" -exec rm -rf {} +

# Training outputs
echo "Cleaning training outputs..."
if [ -d "{{ .RunsDir }}" ]; then
    find "{{ .RunsDir }}" -mindepth 1 -delete
fi

echo "Cleanup complete!"
read -p "Press enter to continue..."
`))

var updateTemplate = template.Must(template.New("update_deps.sh").Funcs(scriptFuncs).Parse(`#!/bin/bash
cd "$(dirname "$0")"

export WORKON_HOME="{{ .VenvHome }}"

echo "==================================="
echo "        ENVIRONMENT UPDATER"
echo "==================================="

echo "Select the environment to update:"
echo "1. {{ upper .VenvName }} Environment"
echo "2. Exit"

read -p "Enter your choice (1-2): " choice

if [ "$choice" -eq 1 ]; then
    echo ""
    echo "[INFO] Updating {{ .EnvName }} environment..."
    if [ -f "{{ .Activate }}" ]; then
        source "{{ .Activate }}"
        echo "[INFO] Upgrading pip..."
        python -m pip install --upgrade pip
        echo "[INFO] Upgrading setuptools..."
        pip install --upgrade setuptools
        echo "[INFO] Environment updated successfully."
        exit 0
    else
        echo "[ERROR] Environment {{ .EnvName }} not found."
        echo "[INFO] Expected location: {{ .Activate }}"
        exit 1
    fi
fi

if [ "$choice" -eq 2 ]; then
    echo "Exiting without updates..."
    exit 0
fi

echo "[ERROR] Invalid choice: $choice"
exit 1
`))

// GenerateScripts renders the maintenance scripts into cfg.ScriptsDir
// and returns their paths.
func GenerateScripts(rc *vision_io.RuntimeContext, cfg *Config) ([]string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	data := scriptData{
		Root:     cfg.Root,
		VenvHome: cfg.VenvHome(),
		VenvName: cfg.VenvName,
		EnvName:  cfg.EnvName(),
		VenvPath: cfg.VenvPath(),
		Activate: filepath.Join(cfg.VenvPath(), "bin", "activate"),
		RunsDir:  filepath.Join(cfg.Root, "runs"),
	}

	if err := xdg.EnsureDir(cfg.ScriptsDir()); err != nil {
		return nil, cerr.Wrapf(err, "creating scripts dir %s", cfg.ScriptsDir())
	}

	var written []string
	for _, tmpl := range []*template.Template{activationTemplate, cleanTemplate, updateTemplate} {
		name := tmpl.Name()
		path := filepath.Join(cfg.ScriptsDir(), name)
		rc.Term.Printf("Creating script at: %s\n", path)

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, vision_err.NewInternalError("rendering script "+name, err)
		}
		if err := validateShell(name, buf.String()); err != nil {
			return written, err
		}
		if err := os.WriteFile(path, buf.Bytes(), xdg.FilePermExecutable); err != nil {
			return written, cerr.Wrapf(err, "writing %s", path)
		}

		rc.Term.Printf("✓ Script created at %s\n", path)
		written = append(written, path)
	}

	logger.Info("Generated workspace scripts", zap.Strings("paths", written))
	return written, nil
}

// validateShell parses a rendered script and rejects anything the
// shell itself would choke on. Only syntax is checked; runtime
// failures (missing binaries, bad paths) surface when the script runs.
func validateShell(name, content string) error {
	parser := syntax.NewParser()
	if _, err := parser.Parse(strings.NewReader(content), name); err != nil {
		return vision_err.NewInternalError("generated script "+name+" failed shell validation", err)
	}
	return nil
}
