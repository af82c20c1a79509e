package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

// WritePretty renders a glamour header describing the event, followed by the
// response. Rendered markup is written as is; literal text is never
// interpreted as Markdown.
func WritePretty(w, errW io.Writer, o Outcome, style string, wrap int) error {
	md := fmt.Sprintf(`# %s

> **Type:** %s | **Guests:** %s | **Budget:** %s | **Date:** %s

---
`, orDash(o.Submission.EventName), orDash(o.Submission.EventType), orDash(o.Submission.GuestCount),
		orDash(o.Submission.Budget), orDash(o.Submission.EventDate))

	if style == "" {
		style = "dracula"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	header, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	if o.Failed() {
		_, err := fmt.Fprintln(errW, errorStyle.Render(o.Error))
		return err
	}
	out := o.Output
	if !o.Markup {
		out = "  " + strings.ReplaceAll(strings.TrimRight(out, "\n"), "\n", "\n  ") + "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
