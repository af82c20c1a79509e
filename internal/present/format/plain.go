package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// WriteSubmission prints the submitted fields as an aligned field/value table.
func WriteSubmission(w io.Writer, o Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range o.Variant.Fields {
		val, _ := o.Submission.Get(f)
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f, esc(val))
	}
	return tw.Flush()
}

// WritePlain writes the response text to w, or the error notice to errW.
// With echo set, the submitted fields are printed first.
func WritePlain(w, errW io.Writer, o Outcome, echo bool) error {
	if echo {
		if err := WriteSubmission(w, o); err != nil {
			return err
		}
		_, _ = io.WriteString(w, "\n")
	}
	if o.Failed() {
		_, err := fmt.Fprintln(errW, o.Error)
		return err
	}
	out := o.Output
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}
