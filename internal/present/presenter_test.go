package present

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/eventwizard/internal/client"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

type submitFunc func(ctx context.Context, v api.Variant, s api.Submission) (api.Result, error)

func (f submitFunc) Submit(ctx context.Context, v api.Variant, s api.Submission) (api.Result, error) {
	return f(ctx, v, s)
}

func strptr(s string) *string { return &s }

func TestParseAndResolveMode(t *testing.T) {
	for _, name := range []string{"plain", "pretty", "json", "html", "tui"} {
		m, ok := ParseMode(name)
		require.True(t, ok, name)
		require.Equal(t, name, m.String())
	}
	_, ok := ParseMode("ndjson")
	require.False(t, ok)

	m, err := ResolveMode("auto", true)
	require.NoError(t, err)
	require.Equal(t, ModePretty, m)
	m, err = ResolveMode("", false)
	require.NoError(t, err)
	require.Equal(t, ModePlain, m)
	_, err = ResolveMode("xml", false)
	require.Error(t, err)
}

func TestCaptureThemesOutcome(t *testing.T) {
	sub := api.Submission{EventName: "Gala", EventType: "corporate", ThemeIdea: "Tropical"}
	var progress bytes.Buffer
	view := CaptureFor(api.VariantThemes, sub, &progress)

	var got api.Submission
	ctrl, err := wizard.New(view, submitFunc(func(_ context.Context, _ api.Variant, s api.Submission) (api.Result, error) {
		got = s
		return api.Result{ThemeSuggestions: strptr("1. Luau\n2. *Beach*")}, nil
	}), api.VariantThemes)
	require.NoError(t, err)
	require.NoError(t, ctrl.Submit(context.Background()))

	require.Equal(t, sub, got)
	require.Contains(t, progress.String(), "Generating suggestions")
	require.True(t, view.Enabled(wizard.ControlSubmit))
	require.False(t, view.Visible(wizard.RegionLoading))

	o := OutcomeOf(ctrl, view, "http://x/api/suggest_themes")
	require.Equal(t, "success", o.State)
	require.Equal(t, "1. Luau\n2. *Beach*", o.Output)
	require.False(t, o.Markup)
	require.Equal(t, api.VariantThemes.Fingerprint(sub), o.Fingerprint)

	var out bytes.Buffer
	require.NoError(t, RenderOutcome(&out, &out, o, Options{Mode: ModeJSON}))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, "1. Luau\n2. *Beach*", doc["output"])
}

func TestCaptureCompileHTML(t *testing.T) {
	view := CaptureFor(api.VariantCompile, api.Submission{EventName: "Gala"}, nil)
	r, err := RendererFor(ModeHTML, "", 0)
	require.NoError(t, err)
	ctrl, err := wizard.New(view, submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) {
		return api.Result{CompiledResponse: strptr("## Plan\n\n- Venue")}, nil
	}), api.VariantCompile, wizard.WithRenderer(r))
	require.NoError(t, err)
	require.NoError(t, ctrl.Submit(context.Background()))

	o := OutcomeOf(ctrl, view, "")
	require.True(t, o.Markup)
	require.Contains(t, o.Output, "<h2")
	require.Contains(t, o.Output, "<li>Venue</li>")
	require.False(t, view.HasField(api.FieldThemeIdea))
}

func TestCaptureErrorOutcome(t *testing.T) {
	view := CaptureFor(api.VariantThemes, api.Submission{}, nil)
	ctrl, err := wizard.New(view, submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) {
		return api.Result{}, &client.StatusError{Code: 500, Status: "Internal Server Error", Result: api.Result{Error: strptr("X")}}
	}), api.VariantThemes)
	require.NoError(t, err)
	require.NoError(t, ctrl.Submit(context.Background()))

	o := OutcomeOf(ctrl, view, "")
	require.True(t, o.Failed())
	require.Equal(t, wizard.MessagesEN.ServerErrorPrefix+"X", o.Error)
	require.Empty(t, o.Output)

	var out, errOut bytes.Buffer
	require.NoError(t, RenderOutcome(&out, &errOut, o, Options{Mode: ModePlain}))
	require.Empty(t, out.String())
	require.Equal(t, o.Error+"\n", errOut.String())
}

func TestRendererForPlainCleans(t *testing.T) {
	r, err := RendererFor(ModePlain, "", 0)
	require.NoError(t, err)
	out, err := r.Render("```markdown\n# Hi\n```")
	require.NoError(t, err)
	require.Equal(t, "# Hi", out)
}

func TestRenderOutcomeTUIRefused(t *testing.T) {
	err := RenderOutcome(&bytes.Buffer{}, &bytes.Buffer{}, OutcomeOf(mustController(t), NewCapture(wizard.Values{}, nil), ""), Options{Mode: ModeTUI})
	require.Error(t, err)
}

func mustController(t *testing.T) *wizard.Controller {
	t.Helper()
	ctrl, err := wizard.New(NewCapture(wizard.Values{}, nil), submitFunc(func(context.Context, api.Variant, api.Submission) (api.Result, error) {
		return api.Result{}, errors.New("unused")
	}), api.Variant{Name: "noop"})
	require.NoError(t, err)
	return ctrl
}
