package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mithrel/eventwizard/internal/config"
	"github.com/mithrel/eventwizard/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// skipAppAnnotation marks commands that must work without a valid config.
const skipAppAnnotation = "eventwizard/skip-app"

// globalFlagKeys maps persistent flags to config keys.
var globalFlagKeys = map[string]string{
	"server-url": "server_url",
	"timeout":    "request_timeout",
	"log-level":  "log.level",
	"log-format": "log.format",
	"style":      "markdown.style",
	"wrap":       "markdown.word_wrap",
}

// ExitError carries a process exit code for failures already reported to
// the user. main exits with Code without printing anything else.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// Execute builds the root command and runs it with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "eventwizard-cli",
		Short:         "Event planner wizard: send event details, get themes or a compiled plan",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipAppAnnotation] != "" {
				return nil
			}
			v, err := loadConfig(cmd, cfgPath)
			if err != nil {
				return err
			}
			app, err := wire.BuildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(cmd.OutOrStdout()) {
				return cmd.Help()
			}
			app := getApp(cmd)
			return runForm(cmd, app, initialFromFlags(cmd))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (toml|yaml|json)")
	pf.String("server-url", "", "base URL of the planner API")
	pf.String("variant", "", "endpoint variant: themes|compile")
	pf.String("locale", "", "language of notices: en|pt")
	pf.String("timeout", "", "request deadline, e.g. 30s; 0 waits indefinitely")
	pf.String("log-level", "", "log level: trace|debug|info|warn|error")
	pf.String("log-format", "", "log format: auto|console|json")
	pf.String("style", "", "glamour style for terminal Markdown")
	pf.Int("wrap", 0, "wrap width for terminal Markdown; 0 disables wrapping")
	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)
	_ = cmd.RegisterFlagCompletionFunc("locale", completeLocales)

	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newFormCmd())
	cmd.AddCommand(newEventTypesCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDocsCmd())

	return cmd
}

// loadConfig resolves config sources, applies flag overrides and validates.
func loadConfig(cmd *cobra.Command, cfgPath string) (*viper.Viper, error) {
	v := viper.New()
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, err
	}
	applyConfigFlagOverrides(cmd, v, globalFlagKeys)
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	return v, nil
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressWriter returns stderr for progress lines, or io.Discard when it is not
// a terminal.
func progressWriter(cmd *cobra.Command) io.Writer {
	w := cmd.ErrOrStderr()
	if isTerminal(w) {
		return w
	}
	return io.Discard
}

// IsExitError reports whether err only carries an exit code.
func IsExitError(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}
