// pkg/workspace/config.go

package workspace

import (
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/shared"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/xdg"
)

// Config describes one managed workspace: where it lives, how its venv
// is named, which python satisfies it and which directories setup
// scaffolds. Values come from config.yaml, VISIONCTL_ env vars and
// flags, in that order of increasing precedence.
type Config struct {
	Root        string   `mapstructure:"root" yaml:"root" validate:"required"`
	VenvName    string   `mapstructure:"venv_name" yaml:"venv_name" validate:"required"`
	VenvSuffix  string   `mapstructure:"venv_suffix" yaml:"venv_suffix"`
	PythonSpec  string   `mapstructure:"python_spec" yaml:"python_spec" validate:"required"`
	ModelWeight string   `mapstructure:"model_weight" yaml:"model_weight" validate:"required"`
	Directories []string `mapstructure:"directories" yaml:"directories" validate:"required,min=1,dive,required"`
}

// VenvHome returns the directory holding managed venvs.
func (c *Config) VenvHome() string {
	return filepath.Join(c.Root, "venvs")
}

// EnvName returns the venv directory name, e.g. "yolo_venv".
func (c *Config) EnvName() string {
	return c.VenvName + c.VenvSuffix
}

// VenvPath returns the venv's absolute location under VenvHome.
func (c *Config) VenvPath() string {
	return filepath.Join(c.VenvHome(), c.EnvName())
}

// VenvPython returns the interpreter inside the venv.
func (c *Config) VenvPython() string {
	return filepath.Join(c.VenvPath(), "bin", "python")
}

// ScriptsDir returns where generated maintenance scripts land.
func (c *Config) ScriptsDir() string {
	return filepath.Join(c.Root, "scripts")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("venv_name", shared.DefaultVenvName)
	v.SetDefault("venv_suffix", shared.DefaultVenvSuffix)
	v.SetDefault("python_spec", shared.DefaultPythonSpec)
	v.SetDefault("model_weight", shared.DefaultModelWeight)
	v.SetDefault("directories", shared.DefaultWorkspaceDirs)
}

// Load resolves the workspace config. A non-empty path pins the config
// file; otherwise config.yaml is searched in the working directory and
// the XDG config dir. A missing file is fine, defaults apply.
func Load(rc *vision_io.RuntimeContext, path string) (*Config, error) {
	logger := otelzap.Ctx(rc.Ctx)

	// .env is optional developer convenience, same as the viper env
	// layer but checked into nothing.
	if err := godotenv.Load(shared.DefaultEnvFilename); err == nil {
		logger.Debug("Loaded environment overrides", zap.String("file", shared.DefaultEnvFilename))
	}

	v := viper.New()
	setDefaults(v)
	cli.SetViperEnvPrefix(v, shared.EnvPrefix)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(xdg.ConfigPath(""))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !cerr.As(err, &notFound) {
			if path != "" {
				return nil, cerr.Wrapf(err, "reading config %s", path)
			}
			return nil, cerr.Wrap(err, "reading workspace config")
		}
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Debug("Loaded workspace config", zap.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cerr.Wrap(err, "decoding workspace config")
	}

	if cfg.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, cerr.Wrap(err, "resolving workspace root")
		}
		cfg.Root = cwd
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, cerr.Wrap(err, "invalid workspace config")
	}
	return &cfg, nil
}

// WriteDefault scaffolds a config.yaml with the stock defaults so the
// operator has something to edit.
func WriteDefault(rc *vision_io.RuntimeContext, path string) error {
	cfg := Config{
		VenvName:    shared.DefaultVenvName,
		VenvSuffix:  shared.DefaultVenvSuffix,
		PythonSpec:  shared.DefaultPythonSpec,
		ModelWeight: shared.DefaultModelWeight,
		Directories: shared.DefaultWorkspaceDirs,
	}
	cwd, err := os.Getwd()
	if err != nil {
		return cerr.Wrap(err, "resolving workspace root")
	}
	cfg.Root = cwd
	return vision_io.WriteYAML(rc.Ctx, path, &cfg)
}
