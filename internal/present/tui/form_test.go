package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/eventwizard/internal/client"
	"github.com/mithrel/eventwizard/internal/render"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

type submitFunc func(ctx context.Context, v api.Variant, s api.Submission) (api.Result, error)

func (f submitFunc) Submit(ctx context.Context, v api.Variant, s api.Submission) (api.Result, error) {
	return f(ctx, v, s)
}

func strptr(s string) *string { return &s }

// harness collects the messages the controller sends through the view.
type harness struct {
	m    model
	sent []tea.Msg
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	m, err := newModel(context.Background(), opts)
	require.NoError(t, err)
	h := &harness{}
	m.view.send = func(msg tea.Msg) { h.sent = append(h.sent, msg) }
	h.m = m
	h.feed(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) feed(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(model)
	return cmd
}

func (h *harness) key(k tea.KeyType) tea.Cmd { return h.feed(tea.KeyMsg{Type: k}) }

// run executes a submit command and replays everything it produced.
func (h *harness) run(cmd tea.Cmd) {
	done := cmd()
	msgs := append(h.sent, done)
	h.sent = nil
	for _, msg := range msgs {
		h.feed(msg)
	}
}

func TestSubmitThemesFromForm(t *testing.T) {
	var got api.Submission
	h := newHarness(t, Options{
		Variant: api.VariantThemes,
		Submitter: submitFunc(func(_ context.Context, _ api.Variant, s api.Submission) (api.Result, error) {
			got = s
			return api.Result{ThemeSuggestions: strptr("1. Luau\n2. *Beach*")}, nil
		}),
		Initial: api.Submission{EventName: "Gala", EventType: "corporate"},
	})
	h.m.setValue(api.FieldThemeIdea, "Tropical")
	h.m.setValue(api.FieldEventObjective, "Celebrate")

	cmd := h.key(tea.KeyCtrlS)
	require.NotNil(t, cmd)
	require.False(t, h.m.submitEnabled)
	h.run(cmd)

	require.Equal(t, "Gala", got.EventName)
	require.Equal(t, "Tropical", got.ThemeIdea)
	require.Equal(t, "Celebrate", got.EventObjective)
	require.True(t, h.m.submitEnabled)
	require.True(t, h.m.visible[wizard.RegionResults])
	require.False(t, h.m.loading())
	require.False(t, h.m.markup)
	require.Equal(t, "1. Luau\n2. *Beach*", h.m.output)
	require.Contains(t, h.m.View(), "*Beach*")
}

func TestSubmitButtonWithEnter(t *testing.T) {
	calls := 0
	h := newHarness(t, Options{
		Variant: api.VariantThemes,
		Submitter: submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) {
			calls++
			return api.Result{ThemeSuggestions: strptr("ok")}, nil
		}),
	})
	// enter on a single-line input moves focus on instead of submitting
	require.Nil(t, h.key(tea.KeyEnter))
	require.Equal(t, api.FieldEventType, h.m.focused())

	h.m.setFocus(len(h.m.slots) - 1)
	require.Equal(t, submitSlot, h.m.focused())
	cmd := h.key(tea.KeyEnter)
	require.NotNil(t, cmd)

	// a second request while the first is pending is ignored
	require.Nil(t, h.key(tea.KeyCtrlS))
	h.run(cmd)
	require.Equal(t, 1, calls)
}

func TestSubmitShowsServerError(t *testing.T) {
	h := newHarness(t, Options{
		Variant:  api.VariantThemes,
		Messages: wizard.MessagesPT,
		Submitter: submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) {
			return api.Result{}, &client.StatusError{Code: 500, Status: "Internal Server Error", Result: api.Result{Error: strptr("X")}}
		}),
	})
	h.run(h.key(tea.KeyCtrlS))

	require.True(t, h.m.visible[wizard.RegionError])
	require.Equal(t, "Erro ao obter sugestões: X", h.m.errText)
	require.Contains(t, h.m.View(), "Erro ao obter sugestões: X")
	require.True(t, h.m.submitEnabled)
}

func TestCompileUsesOverlayAndMarkup(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, Options{
		Variant:  api.VariantCompile,
		Renderer: render.RendererFunc(func(s string) (string, error) { return "<<" + s + ">>", nil }),
		Submitter: submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) {
			<-release
			return api.Result{CompiledResponse: strptr("## Plan")}, nil
		}),
	})
	require.NotContains(t, h.m.slots, api.FieldThemeIdea)

	cmd := h.key(tea.KeyCtrlS)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	close(release)
	last := <-done

	// replay only the loading phase first
	for _, msg := range h.sent {
		if vm, ok := msg.(visibleMsg); ok && vm.region == wizard.RegionOverlay && vm.visible {
			h.feed(msg)
		}
	}
	require.Contains(t, h.m.View(), "Compiling responses")

	for _, msg := range append(h.sent, last) {
		h.feed(msg)
	}
	require.False(t, h.m.visible[wizard.RegionOverlay])
	require.True(t, h.m.markup)
	require.Equal(t, "<<## Plan>>", h.m.output)

	h.key(tea.KeyCtrlO)
	require.NotNil(t, h.m.modal)
	require.Contains(t, h.m.View(), "Compiled plan")
	h.key(tea.KeyEsc)
	require.Nil(t, h.m.modal)
}

func TestEventTypeHint(t *testing.T) {
	h := newHarness(t, Options{
		Variant:    api.VariantThemes,
		Submitter:  submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) { return api.Result{}, nil }),
		EventTypes: []string{"wedding", "corporate", "birthday"},
	})
	h.key(tea.KeyTab)
	require.Equal(t, api.FieldEventType, h.m.focused())
	h.feed(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wed")})
	require.Equal(t, "wedding", h.m.hint())
	require.True(t, strings.Contains(h.m.View(), "wedding"))

	h.key(tea.KeyCtrlT)
	require.Equal(t, "wedding", h.m.values()[api.FieldEventType])
	require.Empty(t, h.m.hint())
}

func TestFocusWraps(t *testing.T) {
	h := newHarness(t, Options{
		Variant:   api.VariantCompile,
		Submitter: submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) { return api.Result{}, nil }),
		Renderer:  render.RendererFunc(func(s string) (string, error) { return s, nil }),
	})
	h.key(tea.KeyShiftTab)
	require.Equal(t, submitSlot, h.m.focused())
	h.key(tea.KeyTab)
	require.Equal(t, api.FieldEventName, h.m.focused())
}

func TestEscQuitsUnlessLoading(t *testing.T) {
	h := newHarness(t, Options{
		Variant:   api.VariantThemes,
		Submitter: submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) { return api.Result{}, nil }),
	})
	h.feed(visibleMsg{region: wizard.RegionLoading, visible: true})
	require.Nil(t, h.key(tea.KeyEsc))
	h.feed(visibleMsg{region: wizard.RegionLoading, visible: false})
	cmd := h.key(tea.KeyEsc)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEventTypeHintHelper(t *testing.T) {
	known := []string{"wedding", "corporate"}
	require.Equal(t, "corporate", eventTypeHint("corp", known))
	require.Empty(t, eventTypeHint("corporate", known))
	require.Empty(t, eventTypeHint("", known))
	require.Empty(t, eventTypeHint("zzz", known))
}
