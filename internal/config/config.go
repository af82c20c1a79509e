package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/eventwizard/pkg/api"
)

const appName = "eventwizard"

// OutputModes lists the accepted values of the "output" option.
var OutputModes = []string{"auto", "plain", "pretty", "json", "html", "tui"}

var logFormats = []string{"auto", "console", "json"}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "server_url", Default: "http://localhost:5001", Comment: "Base URL of the event planner API"},
		{Key: "variant", Default: api.VariantThemes.Name, Comment: "Endpoint variant: themes (/api/suggest_themes) or compile (/api/compile_responses)"},
		{Key: "request_timeout", Default: "60s", Comment: "Deadline for one submission; 0 waits indefinitely"},
		{Key: "output", Default: "auto", Comment: "Output mode: auto|plain|pretty|json|html|tui (auto picks pretty on a terminal, plain otherwise)"},
		{Key: "locale", Default: "en", Comment: "Language of user-facing notices: en|pt"},
		{Key: "env_file", Default: ".env", Comment: "dotenv file loaded before environment variables; empty disables"},
		{Key: "event_types", Default: []string{"corporate", "casual", "birthday", "wedding", "conference", "team building", "product launch"}, Comment: "Event types offered for completion"},

		{Key: "markdown.style", Default: "dracula", Comment: "Glamour style for terminal Markdown (dark|light|dracula|notty|...)"},
		{Key: "markdown.word_wrap", Default: 80, Comment: "Wrap width for terminal Markdown; 0 disables wrapping"},

		{Key: "log.level", Default: "info", Comment: "Log level: trace|debug|info|warn|error"},
		{Key: "log.format", Default: "auto", Comment: "Log format: auto|console|json (auto uses console on a terminal)"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence:
// defaults < config file < dotenv file < environment.
// Command-line flags are applied on top by the CLI.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence;
	// these paths are harmless fallbacks.
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file is fine unless the user named it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: EVENTWIZARD_* (highest among these sources).
	// Viper reads them lazily, so variables loaded from the dotenv file
	// below are visible too.
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// godotenv never overrides variables already present in the environment.
	if envFile := strings.TrimSpace(v.GetString("env_file")); envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	// Allow comma-separated env override for event_types
	if s := strings.TrimSpace(os.Getenv("EVENTWIZARD_EVENT_TYPES")); s != "" {
		v.Set("event_types", splitCSV(s))
	}
	return nil
}

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	raw := strings.TrimSpace(v.GetString("server_url"))
	if raw == "" {
		problems = append(problems, "server_url is required")
	} else if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("server_url %q must be an absolute http(s) url", raw))
	}

	if _, err := api.ParseVariant(v.GetString("variant")); err != nil {
		problems = append(problems, err.Error())
	}

	if _, err := RequestTimeout(v); err != nil {
		problems = append(problems, err.Error())
	}

	if !contains(OutputModes, strings.ToLower(v.GetString("output"))) {
		problems = append(problems, fmt.Sprintf("output must be one of %s", strings.Join(OutputModes, "|")))
	}

	if strings.TrimSpace(v.GetString("locale")) == "" {
		problems = append(problems, "locale is required")
	}

	if v.GetInt("markdown.word_wrap") < 0 {
		problems = append(problems, "markdown.word_wrap must not be negative")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log.level"))); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is not a valid level", v.GetString("log.level")))
	}
	if !contains(logFormats, strings.ToLower(v.GetString("log.format"))) {
		problems = append(problems, fmt.Sprintf("log.format must be one of %s", strings.Join(logFormats, "|")))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
}

// RequestTimeout parses request_timeout. Bare integers are seconds.
func RequestTimeout(v *viper.Viper) (time.Duration, error) {
	s := strings.TrimSpace(v.GetString("request_timeout"))
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, fmt.Errorf("request_timeout %q is not a duration", s)
		}
		d = time.Duration(secs) * time.Second
	}
	if d < 0 {
		return 0, fmt.Errorf("request_timeout must not be negative")
	}
	return d, nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
