/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/wastevision/visionctl/pkg/shared"
	"github.com/wastevision/visionctl/pkg/xdg"
)

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			xdg.StatePath("visionctl.log"),
			shared.LogFilePWD,
			"/tmp/visionctl/visionctl.log",
		}
	case "linux":
		return []string{
			shared.LogFile, // best if writable (root or dedicated service user)
			xdg.StatePath("visionctl.log"), // user-local fallback (e.g., ~/.local/state/visionctl/visionctl.log)
			shared.LogFilePWD,              // current working dir, ideal for devs
			"/tmp/visionctl/visionctl.log", // ephemeral
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("ProgramData"), shared.AppID, "visionctl.log"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), shared.AppID, "visionctl.log"),
			".\\visionctl.log",
		}
	default:
		return []string{shared.LogFilePWD}
	}
}
