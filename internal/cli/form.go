package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mithrel/eventwizard/internal/present"
	"github.com/mithrel/eventwizard/internal/present/tui"
	"github.com/mithrel/eventwizard/internal/wire"
	"github.com/mithrel/eventwizard/pkg/api"
)

func newFormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Open the interactive event form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, getApp(cmd), initialFromFlags(cmd))
		},
	}
	addSubmissionFlags(cmd)
	return cmd
}

func runForm(cmd *cobra.Command, app *wire.App, initial api.Submission) error {
	r, err := app.Renderer(present.ModeTUI)
	if err != nil {
		return err
	}
	log, closeLog, err := tuiLogger(app.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(cmd.Context(), tui.Options{
		Variant:    app.Variant,
		Submitter:  app.Client,
		Renderer:   r,
		Messages:   app.Messages,
		Logger:     log,
		EventTypes: app.EventTypes(),
		Initial:    initial,
		Out:        cmd.OutOrStdout(),
	})
}

// tuiLogger redirects logs to a file while the alternate screen is active.
func tuiLogger(base zerolog.Logger) (zerolog.Logger, func(), error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return zerolog.Nop(), func() {}, nil
	}
	path := filepath.Join(dir, "eventwizard", "tui.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open %s: %w", path, err)
	}
	return base.Output(f), func() { _ = f.Close() }, nil
}
