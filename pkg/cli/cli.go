// pkg/cli/cli.go
//
// Small bridge between cobra flags and viper so every pipeline setting
// can come from a flag, a VISIONCTL_ environment variable, or the
// config file with one binding call. Interactive prompts read their
// defaults from the same viper instance, which keeps the flag and menu
// surfaces in agreement.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AddStringFlag adds a string flag and optionally marks it required.
// Env/config resolution is handled by viper once BindFlagsToViper runs.
func AddStringFlag(cmd *cobra.Command, name, shorthand, def, help string, required bool) {
	cmd.Flags().StringP(name, shorthand, def, help)
	if required {
		if err := cmd.MarkFlagRequired(name); err != nil {
			// Cobra still validates required flags at runtime.
			fmt.Fprintf(os.Stderr, "warning: failed to mark flag %s as required: %v\n", name, err)
		}
	}
}

// AddBoolFlag adds a boolean flag.
func AddBoolFlag(cmd *cobra.Command, name, shorthand string, def bool, help string) {
	cmd.Flags().BoolP(name, shorthand, def, help)
}

// AddIntFlag adds an int flag.
func AddIntFlag(cmd *cobra.Command, name, shorthand string, def int, help string) {
	cmd.Flags().IntP(name, shorthand, def, help)
}

// AddFloat64Flag adds a float64 flag.
func AddFloat64Flag(cmd *cobra.Command, name, shorthand string, def float64, help string) {
	cmd.Flags().Float64P(name, shorthand, def, help)
}

// AddStringSliceFlag adds a string slice flag.
func AddStringSliceFlag(cmd *cobra.Command, name, shorthand string, def []string, help string) {
	cmd.Flags().StringSliceP(name, shorthand, def, help)
}

// BindFlagsToViper binds all flags on a command to a viper instance.
func BindFlagsToViper(cmd *cobra.Command, v *viper.Viper) error {
	var result error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// SetViperEnvPrefix lets viper read env vars with the given prefix,
// mapping flag-style dashes to underscores.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// GetStringOrEmpty returns the flag value or "" when the flag is
// missing. Required flags should rely on cobra's own validation.
func GetStringOrEmpty(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to get flag %s: %v\n", name, err)
		return ""
	}
	return val
}

// GetRequiredString returns the flag value, erroring when unset.
func GetRequiredString(cmd *cobra.Command, name string) (string, error) {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("flag error for --%s: %w", name, err)
	}
	if val == "" {
		return "", fmt.Errorf("required flag --%s is empty", name)
	}
	return val, nil
}
