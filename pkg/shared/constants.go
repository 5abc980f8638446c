// pkg/shared/constants.go

package shared

const (
	AppID     = "visionctl"
	EnvPrefix = "VISIONCTL"

	LogDir  = "/var/log/visionctl/"
	LogFile = LogDir + "visionctl.log"
	// Log file in the working directory, for development runs.
	LogFilePWD = "./visionctl.log"
)

const (
	DefaultConfigFilename = "config.yaml"
	DefaultEnvFilename    = ".env"
)

const (
	// Venv lifecycle defaults, overridable through workspace config.
	DefaultVenvName    = "yolo"
	DefaultVenvSuffix  = "_venv"
	DefaultPythonSpec  = ">= 3.9"
	DefaultModelWeight = "yolov8n.pt"

	// Environment variables exported by generated activation scripts.
	EnvVenvName = "VENV_NAME"
	EnvVenvPath = "VENV_PATH"
	EnvVenvMain = "VENV_MAIN"
)

// Managed workspace directories, scaffolded by setup.
var DefaultWorkspaceDirs = []string{
	"datasets",
	"models",
	"runs",
	"exports",
	"scripts",
}
