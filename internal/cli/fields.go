package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/eventwizard/pkg/api"
)

type fieldFlag struct {
	name  string
	short string
	field string
	usage string
}

var fieldFlags = []fieldFlag{
	{"event-name", "n", api.FieldEventName, "event name"},
	{"event-type", "t", api.FieldEventType, "event type, e.g. corporate or wedding"},
	{"guests", "g", api.FieldGuestCount, "expected number of guests"},
	{"budget", "b", api.FieldBudget, "available budget"},
	{"date", "d", api.FieldEventDate, "event date"},
	{"objective", "m", api.FieldEventObjective, "main objective of the event"},
	{"theme-idea", "", api.FieldThemeIdea, "theme idea (themes variant only)"},
}

func addSubmissionFlags(cmd *cobra.Command) {
	for _, ff := range fieldFlags {
		cmd.Flags().StringP(ff.name, ff.short, "", ff.usage)
	}
	_ = cmd.RegisterFlagCompletionFunc("event-type", completeEventTypes)
}

// initialFromFlags collects field values given on the command line. Values
// are taken verbatim; commands without field flags yield an empty record.
func initialFromFlags(cmd *cobra.Command) api.Submission {
	var s api.Submission
	for _, ff := range fieldFlags {
		if cmd.Flags().Lookup(ff.name) == nil {
			continue
		}
		if val, err := cmd.Flags().GetString(ff.name); err == nil {
			s.Set(ff.field, val)
		}
	}
	return s
}
