package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Compile ")
	require.NoError(t, err)
	require.Equal(t, "/api/compile_responses", v.Path)
	require.True(t, v.Markdown)

	v, err = ParseVariant("themes")
	require.NoError(t, err)
	require.Equal(t, "/api/suggest_themes", v.Path)
	require.False(t, v.Markdown)

	_, err = ParseVariant("wedding")
	require.ErrorContains(t, err, "themes, compile")
}

func TestPayloadKeepsEmptyFields(t *testing.T) {
	s := Submission{EventName: "Birthday"}

	got := VariantThemes.Payload(s)
	require.Len(t, got, 7)
	require.Equal(t, "Birthday", got[FieldEventName])
	v, ok := got[FieldThemeIdea]
	require.True(t, ok)
	require.Equal(t, "", v)

	got = VariantCompile.Payload(Submission{ThemeIdea: "pirates"})
	require.Len(t, got, 6)
	_, ok = got[FieldThemeIdea]
	require.False(t, ok)
}

func TestSubmissionGetSet(t *testing.T) {
	var s Submission
	for _, f := range VariantThemes.Fields {
		require.True(t, s.Set(f, f+"-value"))
	}
	for _, f := range VariantThemes.Fields {
		got, ok := s.Get(f)
		require.True(t, ok)
		require.Equal(t, f+"-value", got)
	}
	require.False(t, s.Set("nope", "x"))
	_, ok := s.Get("nope")
	require.False(t, ok)
}

func TestResultDecoding(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"mensagem":"ok","sugestoes_temas":""}`), &r))

	_, ok := r.Text(KeyThemeSuggestions)
	require.False(t, ok, "empty text counts as absent")

	_, ok = r.Text(KeyCompiledResponse)
	require.False(t, ok)

	_, ok = r.ErrorText()
	require.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`{"compiled_response":"# Hi","erro":"boom"}`), &r))
	text, ok := r.Text(KeyCompiledResponse)
	require.True(t, ok)
	require.Equal(t, "# Hi", text)

	msg, ok := r.ErrorText()
	require.True(t, ok)
	require.Equal(t, "boom", msg)
}

func TestResultDecodingIsLenient(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"mensagem":1,"sugestoes_temas":"Tropical theme","erro":{"code":3}}`), &r))
	require.Nil(t, r.Message)
	text, ok := r.Text(KeyThemeSuggestions)
	require.True(t, ok)
	require.Equal(t, "Tropical theme", text)
	_, ok = r.ErrorText()
	require.False(t, ok, "non-string erro counts as absent")

	stale := "stale"
	for _, body := range []string{`[]`, `"Internal failure"`, `42`} {
		r = Result{Error: &stale}
		require.NoError(t, json.Unmarshal([]byte(body), &r), body)
		require.Equal(t, Result{}, r, body)
	}

	require.Error(t, json.Unmarshal([]byte(`<html>oops</html>`), &r))
	require.Error(t, json.Unmarshal([]byte(`{"erro":`), &r))
}
