package plannertest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/eventwizard/pkg/api"
)

func post(t *testing.T, url, body string) (*http.Response, api.Result) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var res api.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp, res
}

func TestDefaultReplies(t *testing.T) {
	s := New()
	base := Start(t, s)

	resp, res := post(t, base+api.VariantThemes.Path, `{"eventName":"Gala"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text, ok := res.Text(api.KeyThemeSuggestions)
	require.True(t, ok)
	require.NotEmpty(t, text)

	_, res = post(t, base+api.VariantCompile.Path, `{}`)
	_, ok = res.Text(api.KeyCompiledResponse)
	require.True(t, ok)

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "Gala", reqs[0].Body["eventName"])
	require.Equal(t, api.VariantCompile.Path, reqs[1].Path)
}

func TestCannedReply(t *testing.T) {
	s := New()
	s.Reply(api.VariantThemes.Path, Reply{Status: http.StatusBadGateway, Raw: `{"erro":"upstream"}`})
	base := Start(t, s)

	resp, res := post(t, base+api.VariantThemes.Path, `{}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	msg, ok := res.ErrorText()
	require.True(t, ok)
	require.Equal(t, "upstream", msg)
}

func TestRejectsBadRequests(t *testing.T) {
	s := New()
	base := Start(t, s)

	resp, err := http.Get(base + api.VariantThemes.Path)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, res := post(t, base+api.VariantThemes.Path, `not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, ok := res.ErrorText()
	require.True(t, ok)

	_, ok = s.Last()
	require.False(t, ok)
}
