package wire

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/eventwizard/internal/client"
	"github.com/mithrel/eventwizard/internal/config"
	"github.com/mithrel/eventwizard/internal/logging"
	"github.com/mithrel/eventwizard/internal/present"
	"github.com/mithrel/eventwizard/internal/render"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      zerolog.Logger
	Client   *client.Client
	Variant  api.Variant
	Messages wizard.Messages
}

// BuildApp wires dependencies with the provided config. Logs go to stderr.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger, err := logging.New(os.Stderr, v.GetString("log.level"), v.GetString("log.format"))
	if err != nil {
		return nil, err
	}
	variant, err := api.ParseVariant(v.GetString("variant"))
	if err != nil {
		return nil, err
	}
	timeout, err := config.RequestTimeout(v)
	if err != nil {
		return nil, err
	}
	c, err := client.New(v.GetString("server_url"),
		client.WithTimeout(timeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("server_url", c.BaseURL()).
		Str("variant", variant.Name).
		Dur("timeout", timeout).
		Str("config", v.ConfigFileUsed()).
		Msg("app wired")
	return &App{
		Cfg:      v,
		Log:      logger,
		Client:   c,
		Variant:  variant,
		Messages: wizard.MessagesFor(v.GetString("locale")),
	}, nil
}

// Renderer returns the Markdown renderer for an output mode using the
// configured glamour style and wrap width.
func (a *App) Renderer(m present.Mode) (render.Renderer, error) {
	return present.RendererFor(m, strings.TrimSpace(a.Cfg.GetString("markdown.style")), a.Cfg.GetInt("markdown.word_wrap"))
}

// EventTypes returns the configured event types offered for completion.
func (a *App) EventTypes() []string {
	return a.Cfg.GetStringSlice("event_types")
}
