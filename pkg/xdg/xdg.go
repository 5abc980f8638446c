// pkg/xdg/xdg.go
//
// XDG base-directory resolution for visionctl's own files. Every path
// is scoped under the visionctl app directory, so callers only name
// the leaf file.

package xdg

import (
	"os"
	"path/filepath"

	"github.com/wastevision/visionctl/pkg/shared"
)

func envOr(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

// ConfigPath resolves file under $XDG_CONFIG_HOME/visionctl
// (~/.config/visionctl by default). Pass "" for the directory itself.
func ConfigPath(file string) string {
	base := envOr("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config"))
	return filepath.Join(base, shared.AppID, file)
}

// DataPath resolves file under $XDG_DATA_HOME/visionctl.
func DataPath(file string) string {
	base := envOr("XDG_DATA_HOME", filepath.Join(os.Getenv("HOME"), ".local", "share"))
	return filepath.Join(base, shared.AppID, file)
}

// CachePath resolves file under $XDG_CACHE_HOME/visionctl.
func CachePath(file string) string {
	base := envOr("XDG_CACHE_HOME", filepath.Join(os.Getenv("HOME"), ".cache"))
	return filepath.Join(base, shared.AppID, file)
}

// StatePath resolves file under $XDG_STATE_HOME/visionctl. Logs and
// other runtime state belong here.
func StatePath(file string) string {
	base := envOr("XDG_STATE_HOME", filepath.Join(os.Getenv("HOME"), ".local", "state"))
	return filepath.Join(base, shared.AppID, file)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, DirPermStandard)
}
