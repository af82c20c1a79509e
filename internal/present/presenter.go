package present

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mithrel/eventwizard/internal/present/format"
	"github.com/mithrel/eventwizard/internal/render"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeHTML
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	// Echo prints the submitted fields before the response in plain mode.
	Echo     bool
	Style    string
	WordWrap int
}

// ParseMode parses a string like "plain", "pretty", "json", "html", "tui".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "html":
		return ModeHTML, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

// ResolveMode maps "auto" to pretty on a terminal and plain otherwise.
func ResolveMode(s string, tty bool) (Mode, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") || strings.TrimSpace(s) == "" {
		if tty {
			return ModePretty, nil
		}
		return ModePlain, nil
	}
	m, ok := ParseMode(s)
	if !ok {
		return ModePlain, fmt.Errorf("unknown output mode %q (want auto, plain, pretty, json, html or tui)", s)
	}
	return m, nil
}

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	case ModeHTML:
		return "html"
	case ModeTUI:
		return "tui"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// RendererFor returns the Markdown renderer matching an output mode.
// Plain and JSON keep the source text, only cleaned up.
func RendererFor(m Mode, style string, wrap int) (render.Renderer, error) {
	switch m {
	case ModePretty, ModeTUI:
		return render.NewTerminal(style, wrap)
	case ModeHTML:
		return render.NewHTML(), nil
	default:
		return render.RendererFunc(func(s string) (string, error) { return render.Clean(s), nil }), nil
	}
}

// Capture is a non-interactive view: field values are fixed up front and
// everything the controller shows is recorded for later rendering.
type Capture struct {
	values wizard.Values
	// Progress, when set, receives a line whenever a loading indicator appears.
	Progress io.Writer

	mu      sync.Mutex
	visible map[wizard.Region]bool
	text    map[wizard.Region]string
	markup  map[wizard.Region]bool
	enabled map[wizard.Control]bool
}

func NewCapture(values wizard.Values, progress io.Writer) *Capture {
	return &Capture{
		values:   values,
		Progress: progress,
		visible:  make(map[wizard.Region]bool),
		text:     make(map[wizard.Region]string),
		markup:   make(map[wizard.Region]bool),
		enabled:  map[wizard.Control]bool{wizard.ControlSubmit: true},
	}
}

// CaptureFor builds a capture view holding every field the variant sends.
func CaptureFor(v api.Variant, s api.Submission, progress io.Writer) *Capture {
	values := make(wizard.Values, len(v.Fields))
	for _, f := range v.Fields {
		values[f], _ = s.Get(f)
	}
	return NewCapture(values, progress)
}

func (c *Capture) Field(name string) string  { return c.values.Field(name) }
func (c *Capture) HasField(name string) bool { return c.values.HasField(name) }

func (c *Capture) SetVisible(r wizard.Region, visible bool) {
	c.mu.Lock()
	c.visible[r] = visible
	c.mu.Unlock()
	if visible && c.Progress != nil {
		switch r {
		case wizard.RegionLoading:
			_, _ = fmt.Fprintln(c.Progress, "Generating suggestions…")
		case wizard.RegionOverlay:
			_, _ = fmt.Fprintln(c.Progress, "Compiling responses…")
		}
	}
}

func (c *Capture) SetText(r wizard.Region, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text[r] = text
	c.markup[r] = false
}

func (c *Capture) SetMarkup(r wizard.Region, markup string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text[r] = markup
	c.markup[r] = true
}

func (c *Capture) SetEnabled(ctl wizard.Control, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled[ctl] = enabled
}

// Visible reports whether a region is currently shown.
func (c *Capture) Visible(r wizard.Region) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible[r]
}

// Content returns a region's content and whether it is rendered markup.
func (c *Capture) Content(r wizard.Region) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text[r], c.markup[r]
}

func (c *Capture) Enabled(ctl wizard.Control) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled[ctl]
}

// Submission returns the field values as a submission record.
func (c *Capture) Submission() api.Submission {
	var s api.Submission
	for f, v := range c.values {
		s.Set(f, v)
	}
	return s
}

// OutcomeOf summarizes a finished controller run captured by view.
func OutcomeOf(ctrl *wizard.Controller, view *Capture, endpoint string) format.Outcome {
	v := ctrl.Variant()
	sub := view.Submission()
	o := format.Outcome{
		Variant:     v,
		Endpoint:    endpoint,
		Submission:  sub,
		Fingerprint: v.Fingerprint(sub),
		State:       ctrl.State().String(),
	}
	if view.Visible(wizard.RegionError) {
		o.Error, _ = view.Content(wizard.RegionError)
		return o
	}
	o.Output, o.Markup = view.Content(wizard.RegionOutput)
	return o
}

// RenderOutcome writes a settled outcome according to options.
func RenderOutcome(w, errW io.Writer, o format.Outcome, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, o, opts.JSONIndent)
	case ModeHTML:
		return format.WriteHTML(w, o)
	case ModePretty:
		return format.WritePretty(w, errW, o, opts.Style, opts.WordWrap)
	case ModePlain:
		return format.WritePlain(w, errW, o, opts.Echo)
	case ModeTUI:
		return errors.New("tui output is interactive; use the form command")
	default:
		return format.WritePlain(w, errW, o, opts.Echo)
	}
}
