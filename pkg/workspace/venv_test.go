package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastevision/visionctl/pkg/shared"
)

// fakeVenv scaffolds just enough of a venv layout for the activation
// wiring to operate on, without invoking a real interpreter.
func fakeVenv(t *testing.T, cfg *Config) string {
	t.Helper()
	bin := filepath.Join(cfg.VenvPath(), "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	activate := filepath.Join(bin, "activate")
	require.NoError(t, os.WriteFile(activate, []byte("# stock venv activate\n"), 0o644))
	return activate
}

func TestWireActivation(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	activate := fakeVenv(t, cfg)
	rc, _ := wsRC(t, "")

	require.NoError(t, wireActivation(rc, cfg))

	data, err := os.ReadFile(activate)
	require.NoError(t, err)
	script := string(data)
	assert.Contains(t, script, "# stock venv activate")
	assert.Contains(t, script, `export `+shared.EnvVenvName+`="yolo_venv"`)
	assert.Contains(t, script, `export `+shared.EnvVenvPath+`="`+cfg.VenvPath()+`"`)
	assert.Contains(t, script, shared.EnvVenvMain)

	hook := filepath.Join(cfg.VenvPath(), "bin", "post_activate")
	assert.Contains(t, script, `source "`+hook+`"`)

	info, err := os.Stat(hook)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "hook should be executable")

	body, err := os.ReadFile(hook)
	require.NoError(t, err)
	assert.Contains(t, string(body), "exec visionctl menu")
	assert.Contains(t, string(body), `cd "`+cfg.Root+`"`)
}

func TestVenvEnv(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	env := VenvEnv(cfg)

	joined := strings.Join(env, "\n")
	assert.Contains(t, joined, "VIRTUAL_ENV="+cfg.VenvPath())
	assert.Contains(t, joined, shared.EnvVenvName+"=yolo_venv")
	assert.Contains(t, joined, shared.EnvVenvPath+"="+cfg.VenvPath())

	var path string
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			path = kv
		}
	}
	require.NotEmpty(t, path, "PATH should be rewritten")
	assert.True(t, strings.HasPrefix(path, "PATH="+filepath.Join(cfg.VenvPath(), "bin")),
		"venv bin must shadow the system PATH")
}

func TestAppendToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "activate")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))
	require.NoError(t, appendToFile(path, "second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}
