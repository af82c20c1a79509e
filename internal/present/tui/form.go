package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/mithrel/eventwizard/internal/editor"
	"github.com/mithrel/eventwizard/internal/render"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

// Options configures the interactive form.
type Options struct {
	Variant    api.Variant
	Submitter  wizard.Submitter
	Renderer   render.Renderer
	Messages   wizard.Messages
	Logger     zerolog.Logger
	EventTypes []string
	Initial    api.Submission
	// Out receives the last response after the program exits. Optional.
	Out io.Writer
}

const submitSlot = "submit"

var placeholders = map[string]string{
	api.FieldEventName:      "Summer Gala",
	api.FieldEventType:      "corporate, wedding, birthday…",
	api.FieldGuestCount:     "150",
	api.FieldBudget:         "20000 EUR",
	api.FieldEventDate:      "2025-07-12",
	api.FieldEventObjective: "Describe the main objective of the event",
	api.FieldThemeIdea:      "optional",
}

var buttonLabels = map[string]string{
	"themes":  "Suggest themes",
	"compile": "Compile plan",
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("245"))
	focusLabel   = labelStyle.Foreground(lipgloss.Color("212"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	buttonFocus  = buttonStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).BorderForeground(lipgloss.Color("57"))
	buttonIdle   = buttonStyle.Faint(true)
	resultsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("240"))
)

// Run opens the interactive form and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := newModel(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.view.send = p.Send

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && opts.Out != nil {
		switch {
		case fm.visible[wizard.RegionError] && fm.errText != "":
			_, _ = fmt.Fprintln(opts.Out, errorStyle.Render(fm.errText))
		case fm.output != "":
			_, _ = fmt.Fprintln(opts.Out, fm.output)
		}
	}
	return nil
}

type model struct {
	ctx        context.Context
	ctrl       *wizard.Controller
	view       *programView
	variant    api.Variant
	slots      []string
	inputs     map[string]textinput.Model
	objective  textarea.Model
	focus      int
	eventTypes []string

	spinner       spinner.Model
	vp            viewport.Model
	visible       map[wizard.Region]bool
	output        string
	markup        bool
	errText       string
	submitEnabled bool
	modal         *resultModal

	width  int
	height int
}

func newModel(ctx context.Context, opts Options) (model, error) {
	view := newProgramView(opts.Variant.Fields)
	copts := []wizard.Option{wizard.WithRenderer(opts.Renderer), wizard.WithLogger(opts.Logger)}
	if opts.Messages != (wizard.Messages{}) {
		copts = append(copts, wizard.WithMessages(opts.Messages))
	}
	ctrl, err := wizard.New(view, opts.Submitter, opts.Variant, copts...)
	if err != nil {
		return model{}, err
	}

	m := model{
		ctx:           ctx,
		ctrl:          ctrl,
		view:          view,
		variant:       opts.Variant,
		inputs:        make(map[string]textinput.Model),
		eventTypes:    opts.EventTypes,
		visible:       make(map[wizard.Region]bool),
		submitEnabled: true,
	}
	for _, f := range opts.Variant.Fields {
		m.slots = append(m.slots, f)
		val, _ := opts.Initial.Get(f)
		if f == api.FieldEventObjective {
			ta := textarea.New()
			ta.Placeholder = placeholders[f]
			ta.ShowLineNumbers = false
			ta.CharLimit = 0
			ta.SetHeight(4)
			ta.SetValue(val)
			m.objective = ta
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[f]
		ti.SetValue(val)
		m.inputs[f] = ti
	}
	m.slots = append(m.slots, submitSlot)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.vp = viewport.New(76, 8)
	m.setFocus(0)
	return m, nil
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) loading() bool {
	return m.visible[wizard.RegionLoading] || m.visible[wizard.RegionOverlay]
}

func (m model) focused() string { return m.slots[m.focus] }

func (m *model) setFocus(idx int) {
	n := len(m.slots)
	m.focus = ((idx % n) + n) % n
	for f, in := range m.inputs {
		if f == m.focused() {
			in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[f] = in
	}
	if m.focused() == api.FieldEventObjective {
		m.objective.Focus()
	} else {
		m.objective.Blur()
	}
}

func (m *model) setValue(field, value string) {
	if field == api.FieldEventObjective {
		m.objective.SetValue(value)
		return
	}
	if in, ok := m.inputs[field]; ok {
		in.SetValue(value)
		in.CursorEnd()
		m.inputs[field] = in
	}
}

func (m model) values() map[string]string {
	out := make(map[string]string, len(m.variant.Fields))
	for _, f := range m.variant.Fields {
		if f == api.FieldEventObjective {
			out[f] = m.objective.Value()
			continue
		}
		out[f] = m.inputs[f].Value()
	}
	return out
}

func (m model) hint() string {
	if m.focused() != api.FieldEventType {
		return ""
	}
	return eventTypeHint(m.inputs[api.FieldEventType].Value(), m.eventTypes)
}

func (m model) submit() (tea.Model, tea.Cmd) {
	if !m.submitEnabled || m.loading() {
		return m, nil
	}
	m.view.snapshot(m.values())
	m.submitEnabled = false
	return m, submitCmd(m.ctx, m.ctrl)
}

// submitCmd runs the controller off the event loop. View updates arrive as
// messages while it runs; submitDoneMsg follows the last of them.
func submitCmd(ctx context.Context, ctrl *wizard.Controller) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(ctx)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		if m.modal != nil {
			m.modal.resizeForTerm(msg.Width, msg.Height)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case visibleMsg:
		m.visible[msg.region] = msg.visible
		if msg.visible && (msg.region == wizard.RegionLoading || msg.region == wizard.RegionOverlay) {
			return m, m.spinner.Tick
		}
		return m, nil
	case contentMsg:
		switch msg.region {
		case wizard.RegionOutput:
			m.output, m.markup = msg.text, msg.markup
			m.refreshOutput()
		case wizard.RegionError:
			m.errText = msg.text
		}
		return m, nil
	case enabledMsg:
		if msg.control == wizard.ControlSubmit {
			m.submitEnabled = msg.enabled
		}
		return m, nil
	case submitDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, wizard.ErrBusy) {
			m.errText = msg.err.Error()
			m.visible[wizard.RegionError] = true
		}
		m.submitEnabled = true
		return m, nil
	case tea.KeyMsg:
		if m.modal != nil {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "q", "ctrl+o":
				m.modal = nil
				return m, nil
			}
			var cmd tea.Cmd
			m.modal, cmd = m.modal.update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.loading() {
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+s":
			return m.submit()
		case "ctrl+t":
			if h := m.hint(); h != "" {
				m.setValue(api.FieldEventType, h)
			}
			return m, nil
		case "ctrl+o":
			if m.output != "" {
				m.modal = newResultModal(m.resultTitle(), m.output, m.markup, m.width, m.height)
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		case "enter":
			switch m.focused() {
			case submitSlot:
				return m.submit()
			case api.FieldEventObjective:
			default:
				m.setFocus(m.focus + 1)
				return m, nil
			}
		}
	}
	return m.updateFocused(msg)
}

func (m model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch f := m.focused(); f {
	case submitSlot:
	case api.FieldEventObjective:
		m.objective, cmd = m.objective.Update(msg)
	default:
		in := m.inputs[f]
		in, cmd = in.Update(msg)
		m.inputs[f] = in
	}
	return m, cmd
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	inputW := max(12, m.width-labelStyle.GetWidth()-4)
	for f, in := range m.inputs {
		in.Width = inputW
		m.inputs[f] = in
	}
	m.objective.SetWidth(max(20, m.width-4))
	used := len(m.slots) + m.objective.Height() + 10
	m.vp.Width = max(20, m.width-2)
	m.vp.Height = max(3, m.height-used)
	m.refreshOutput()
}

func (m *model) refreshOutput() {
	m.vp.SetContent(wrapText(m.output, m.vp.Width, m.markup))
	m.vp.GotoTop()
}

func (m model) resultTitle() string {
	if m.variant.Markdown {
		return "Compiled plan"
	}
	return "Theme suggestions"
}

func (m model) buttonLabel() string {
	if l, ok := buttonLabels[m.variant.Name]; ok {
		return l
	}
	return "Submit"
}

func (m model) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Event planner · "+m.variant.Name) + "\n\n")

	for _, f := range m.slots {
		if f == submitSlot {
			continue
		}
		ls := labelStyle
		if f == m.focused() {
			ls = focusLabel
		}
		label := editor.Labels[f]
		if f == api.FieldEventObjective {
			b.WriteString(ls.Render("Main objective") + "\n")
			b.WriteString(m.objective.View() + "\n")
			continue
		}
		b.WriteString(ls.Render(label) + m.inputs[f].View() + "\n")
		if f == api.FieldEventType {
			if h := m.hint(); h != "" {
				b.WriteString(hintStyle.Render(strings.Repeat(" ", labelStyle.GetWidth())+"ctrl+t → "+h) + "\n")
			}
		}
	}

	btn := buttonStyle
	switch {
	case !m.submitEnabled:
		btn = buttonIdle
	case m.focused() == submitSlot:
		btn = buttonFocus
	}
	b.WriteString("\n" + btn.Render(m.buttonLabel()) + "\n")

	if m.visible[wizard.RegionResults] {
		var body string
		switch {
		case m.visible[wizard.RegionLoading]:
			body = m.spinner.View() + " Generating suggestions…"
		case m.visible[wizard.RegionError]:
			body = errorStyle.Render(m.errText)
		default:
			body = m.vp.View()
		}
		b.WriteString(resultsStyle.Render(body) + "\n")
	}

	b.WriteString(hintStyle.Render("tab/shift+tab=move • ctrl+s=submit • ctrl+t=accept hint • ctrl+o=expand • pgup/pgdn=scroll • esc=quit"))
	return b.String()
}

func (m model) View() string {
	base := m.formView()
	if m.visible[wizard.RegionOverlay] {
		fg, w, h := m.loadingBox()
		return m.renderOverlay(base, fg, w, h)
	}
	if m.modal != nil {
		return m.renderOverlay(base, m.modal.View(), m.modal.width+2, m.modal.height+2)
	}
	return base
}
