package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/eventwizard/pkg/api"
)

type jsonOutcome struct {
	Variant     string            `json:"variant"`
	Endpoint    string            `json:"endpoint"`
	Fingerprint string            `json:"submission_id"`
	State       string            `json:"state"`
	Submission  map[string]string `json:"submission"`
	Output      string            `json:"output,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// WriteJSON writes the outcome as a single JSON document. Output is the raw
// response text; Markdown is not rendered in this mode.
func WriteJSON(w io.Writer, o Outcome, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonOutcome{
		Variant:     o.Variant.Name,
		Endpoint:    o.Endpoint,
		Fingerprint: o.Fingerprint,
		State:       o.State,
		Submission:  payload(o.Variant, o.Submission),
		Output:      o.Output,
		Error:       o.Error,
	})
}

func payload(v api.Variant, s api.Submission) map[string]string {
	if len(v.Fields) == 0 {
		return map[string]string{}
	}
	return v.Payload(s)
}
