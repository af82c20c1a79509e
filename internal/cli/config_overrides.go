package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mithrel/eventwizard/internal/config"
)

// applyConfigFlagOverrides copies explicitly set flags into v. Flags named
// after a config key map to it directly; extra maps other flag names.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, extra map[string]string) {
	keys := make(map[string]string, len(extra))
	for _, opt := range config.GetConfigOptions() {
		keys[opt.Key] = opt.Key
	}
	for flagName, key := range extra {
		keys[flagName] = key
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			setFromFlag(cmd, v, f, key)
		}
	})
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, f *pflag.Flag, key string) {
	switch f.Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(f.Name); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := cmd.Flags().GetInt(f.Name); err == nil {
			v.Set(key, val)
		}
	case "stringSlice":
		if val, err := cmd.Flags().GetStringSlice(f.Name); err == nil {
			v.Set(key, val)
		}
	default:
		v.Set(key, f.Value.String())
	}
}
