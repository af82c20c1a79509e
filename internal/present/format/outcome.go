package format

import "github.com/mithrel/eventwizard/pkg/api"

// Outcome is the settled result of one submission, as shown to the user.
type Outcome struct {
	Variant     api.Variant
	Endpoint    string
	Submission  api.Submission
	Fingerprint string
	State       string
	// Output holds literal text, or rendered markup when Markup is set.
	Output string
	Markup bool
	Error  string
}

// Failed reports whether the submission ended in the error state.
func (o Outcome) Failed() bool { return o.State == "error" }
