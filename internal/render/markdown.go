package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns Markdown source into display markup.
type Renderer interface {
	Render(markdown string) (string, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(string) (string, error)

func (f RendererFunc) Render(s string) (string, error) { return f(s) }

// fencedDoc matches a response wrapped whole in a ```markdown fence.
var fencedDoc = regexp.MustCompile("(?s)^```(markdown|md)?[ \t]*\n(.*?)\n?```$")

var fenceLine = regexp.MustCompile("(?m)^[ \t]*```")

// Clean normalizes line endings and unwraps a response that the model
// returned inside a single code fence. A bare fence is only unwrapped when
// no other fence occurs inside it, so a response opening and closing with
// two separate code blocks stays intact.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSpace(s)
	if m := fencedDoc.FindStringSubmatch(s); m != nil && (m[1] != "" || !fenceLine.MatchString(m[2])) {
		s = strings.TrimSpace(m[2])
	}
	return s
}

// HTML renders GitHub-flavored Markdown to sanitized HTML.
type HTML struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewHTML() *HTML {
	return &HTML{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (h *HTML) Render(s string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(Clean(s)), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return h.policy.Sanitize(buf.String()), nil
}

// Terminal renders Markdown with ANSI styling via glamour.
type Terminal struct {
	r *glamour.TermRenderer
}

// NewTerminal builds a glamour renderer. style is a glamour standard style
// name ("dark", "light", "dracula", "notty", ...); wrap <= 0 disables wrapping.
func NewTerminal(style string, wrap int) (*Terminal, error) {
	if style == "" {
		style = "dracula"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Terminal{r: r}, nil
}

func (t *Terminal) Render(s string) (string, error) {
	out, err := t.r.Render(Clean(s))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
