package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("variant", "themes").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "warn", rec["level"])
	require.Equal(t, "themes", rec["variant"])
	require.Equal(t, "shown", rec["message"])
}

func TestNewAutoOnBufferIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", "auto")
	require.NoError(t, err)
	log.Info().Msg("hello")
	require.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", "console")
	require.NoError(t, err)
	log.Debug().Msg("console line")
	require.Contains(t, buf.String(), "console line")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "json")
	require.Error(t, err)
	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}
