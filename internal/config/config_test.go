package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)

	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("expected defaults to be valid, got %v", err)
	}
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("server_url", "localhost:5001")
	v.Set("variant", "wedding")
	v.Set("request_timeout", "soon")
	v.Set("output", "xml")
	v.Set("locale", " ")
	v.Set("markdown.word_wrap", -1)
	v.Set("log.level", "loud")
	v.Set("log.format", "yaml")

	err := CheckConfigValidity(v)
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}

	msg := err.Error()
	expected := []string{
		`server_url "localhost:5001" must be an absolute http(s) url`,
		`unknown variant "wedding"`,
		`request_timeout "soon" is not a duration`,
		"output must be one of",
		"locale is required",
		"markdown.word_wrap must not be negative",
		`log.level "loud" is not a valid level`,
		"log.format must be one of",
	}
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to contain %q, got %q", want, msg)
		}
	}
}

func TestRequestTimeout(t *testing.T) {
	cases := map[string]time.Duration{
		"":      0,
		"0":     0,
		"90s":   90 * time.Second,
		"2m":    2 * time.Minute,
		"15":    15 * time.Second,
		"1500ms": 1500 * time.Millisecond,
	}
	for in, want := range cases {
		v := viper.New()
		v.Set("request_timeout", in)
		got, err := RequestTimeout(v)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	v := viper.New()
	v.Set("request_timeout", "-5s")
	_, err := RequestTimeout(v)
	require.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`server_url = "http://from-file:1"
variant = "compile"
locale = "pt"
[markdown]
word_wrap = 100
`), 0o600))
	envPath := filepath.Join(dir, "planner.env")
	require.NoError(t, os.WriteFile(envPath, []byte("EVENTWIZARD_SERVER_URL=http://from-dotenv:2\nEVENTWIZARD_LOCALE=en\n"), 0o600))

	t.Setenv("EVENTWIZARD_ENV_FILE", envPath)
	t.Setenv("EVENTWIZARD_LOCALE", "pt-BR")
	t.Setenv("EVENTWIZARD_EVENT_TYPES", "gala, picnic ,")
	// godotenv sets variables it loads; make sure they are cleaned up.
	t.Setenv("EVENTWIZARD_SERVER_URL", "")
	require.NoError(t, os.Unsetenv("EVENTWIZARD_SERVER_URL"))

	v := viper.New()
	v.SetConfigFile(cfgPath)
	require.NoError(t, Load(context.Background(), v))

	require.Equal(t, "http://from-dotenv:2", v.GetString("server_url"), "dotenv beats file")
	require.Equal(t, "pt-BR", v.GetString("locale"), "environment beats dotenv")
	require.Equal(t, "compile", v.GetString("variant"), "file beats defaults")
	require.Equal(t, 100, v.GetInt("markdown.word_wrap"))
	require.Equal(t, "dracula", v.GetString("markdown.style"), "defaults fill the rest")
	require.Equal(t, []string{"gala", "picnic"}, v.GetStringSlice("event_types"))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, Load(context.Background(), v))
}

func TestLoadWithoutConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "http://localhost:5001", v.GetString("server_url"))
	require.NoError(t, CheckConfigValidity(v))
}

func TestRenderDefaultTOMLRoundTrip(t *testing.T) {
	content := RenderDefaultTOML()
	require.Contains(t, content, `server_url = "http://localhost:5001"`)
	require.Contains(t, content, "[markdown]\n")
	require.Contains(t, content, "word_wrap = 80")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "themes", v.GetString("variant"))
	require.Equal(t, "info", v.GetString("log.level"))
	require.Len(t, v.GetStringSlice("event_types"), 7)

	updated, changed := UpdateTOML(content)
	require.False(t, changed)
	require.Equal(t, content, updated)
}

func TestUpdateTOML(t *testing.T) {
	existing := `server_url = "http://planner:8000"
namespace = "old"
[log]
level = "debug"
`
	updated, changed := UpdateTOML(existing)
	require.True(t, changed)
	require.Contains(t, updated, `server_url = "http://planner:8000"`)
	require.Contains(t, updated, "# OUTDATED: option removed from config schema\n# namespace = \"old\"")
	require.Contains(t, updated, "# Added by config update")
	require.Contains(t, updated, `variant = "themes"`)
	require.Contains(t, updated, `format = "auto"`)
	require.Equal(t, 1, strings.Count(updated, "level = "), "existing keys are not duplicated")
}
