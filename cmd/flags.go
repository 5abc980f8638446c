// cmd/flags.go

package cmd

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wastevision/visionctl/pkg/cli"
	"github.com/wastevision/visionctl/pkg/shared"
)

// commandViper binds a command's flags into a fresh viper instance
// with the VISIONCTL_ env prefix, so every flag is also settable via
// environment (e.g. VISIONCTL_EPOCHS=200).
func commandViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	cli.SetViperEnvPrefix(v, shared.EnvPrefix)
	if err := cli.BindFlagsToViper(cmd, v); err != nil {
		return nil, cerr.Wrap(err, "binding command flags")
	}
	return v, nil
}

// kwargs drops empty-string values so unset flags fall back to the
// handler's own defaults instead of overriding them with "".
func kwargs(pairs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(pairs))
	for key, value := range pairs {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		out[key] = value
	}
	return out
}
