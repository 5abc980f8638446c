package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastevision/visionctl/pkg/shared"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	rc, _ := wsRC(t, "")

	cfg, err := Load(rc, "")
	require.NoError(t, err)

	assert.Equal(t, shared.DefaultVenvName, cfg.VenvName)
	assert.Equal(t, shared.DefaultVenvSuffix, cfg.VenvSuffix)
	assert.Equal(t, shared.DefaultPythonSpec, cfg.PythonSpec)
	assert.Equal(t, shared.DefaultModelWeight, cfg.ModelWeight)
	assert.Equal(t, shared.DefaultWorkspaceDirs, cfg.Directories)
	assert.NotEmpty(t, cfg.Root)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "root: " + dir + "\n" +
		"venv_name: waste\n" +
		"venv_suffix: _env\n" +
		"python_spec: \">= 3.10\"\n" +
		"model_weight: custom.pt\n" +
		"directories:\n  - data\n  - out\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	rc, _ := wsRC(t, "")
	cfg, err := Load(rc, path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, "waste", cfg.VenvName)
	assert.Equal(t, "waste_env", cfg.EnvName())
	assert.Equal(t, ">= 3.10", cfg.PythonSpec)
	assert.Equal(t, "custom.pt", cfg.ModelWeight)
	assert.Equal(t, []string{"data", "out"}, cfg.Directories)
	assert.Equal(t, filepath.Join(dir, "venvs", "waste_env"), cfg.VenvPath())
	assert.Equal(t, filepath.Join(dir, "venvs", "waste_env", "bin", "python"), cfg.VenvPython())
	assert.Equal(t, filepath.Join(dir, "scripts"), cfg.ScriptsDir())
}

func TestLoadRejectsEmptyDirectoryList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: "+dir+"\ndirectories: []\n"), 0o644))

	rc, _ := wsRC(t, "")
	_, err := Load(rc, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid workspace config")
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	rc, _ := wsRC(t, "")
	_, err := Load(rc, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWriteDefaultProducesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	rc, _ := wsRC(t, "")

	require.NoError(t, WriteDefault(rc, path))

	cfg, err := Load(rc, path)
	require.NoError(t, err)
	assert.Equal(t, shared.DefaultVenvName, cfg.VenvName)
	assert.Equal(t, shared.DefaultWorkspaceDirs, cfg.Directories)
}
