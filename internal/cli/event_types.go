package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/eventwizard/internal/config"
	"github.com/mithrel/eventwizard/internal/util"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

func newEventTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event-types [input]",
		Short: "List configured event types, fuzzy-matched against input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			for _, t := range util.ScoreCompletions(input, getApp(cmd).EventTypes(), 20) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

// completionConfig loads configuration for shell completion, where the
// persistent pre-run hook may not have wired the app.
func completionConfig(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	if p, err := cmd.Flags().GetString("config"); err == nil && p != "" {
		v.SetConfigFile(p)
	}
	_ = config.Load(cmd.Context(), v)
	return v
}

func completeEventTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	types := completionConfig(cmd).GetStringSlice("event_types")
	return util.ScoreCompletions(toComplete, types, 20), cobra.ShellCompDirectiveNoFileComp
}

func completeVariants(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return util.ScoreCompletions(toComplete, api.VariantNames(), 0), cobra.ShellCompDirectiveNoFileComp
}

func completeLocales(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return util.ScoreCompletions(toComplete, wizard.Locales(), 0), cobra.ShellCompDirectiveNoFileComp
}

func completeOutputModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return util.ScoreCompletions(toComplete, config.OutputModes, 0), cobra.ShellCompDirectiveNoFileComp
}
