package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/eventwizard/internal/editor"
	"github.com/mithrel/eventwizard/internal/present"
	"github.com/mithrel/eventwizard/internal/wire"
	"github.com/mithrel/eventwizard/internal/wizard"
	"github.com/mithrel/eventwizard/pkg/api"
)

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send the event details and print the planner's answer",
		Long: `Send the event details to the planner API and print the answer.

Field values are passed through verbatim. Use --edit to fill them in your
$VISUAL/$EDITOR, or --output tui to open the interactive form prefilled.
The command exits with status 1 when the submission fails.`,
		Args: cobra.NoArgs,
		RunE: runSubmit,
	}
	addSubmissionFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output mode: auto|plain|pretty|json|html|tui")
	cmd.Flags().BoolP("edit", "e", false, "compose the submission in $VISUAL/$EDITOR")
	cmd.Flags().Bool("echo", false, "print the submitted fields before the answer (plain output)")
	cmd.Flags().Bool("indent", false, "indent JSON output")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputModes)
	return cmd
}

func runSubmit(cmd *cobra.Command, args []string) error {
	app := getApp(cmd)

	mode, err := present.ResolveMode(app.Cfg.GetString("output"), isTerminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	sub := initialFromFlags(cmd)
	if edit, _ := cmd.Flags().GetBool("edit"); edit {
		edited, ok, err := editSubmission(cmd, app.Variant, sub)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Submission cancelled: nothing entered.")
			return nil
		}
		sub = edited
	}

	if mode == present.ModeTUI {
		return runForm(cmd, app, sub)
	}
	return submitOnce(cmd, app, mode, sub)
}

// submitOnce drives one controller run against a capture view and renders
// the outcome.
func submitOnce(cmd *cobra.Command, app *wire.App, mode present.Mode, sub api.Submission) error {
	r, err := app.Renderer(mode)
	if err != nil {
		return err
	}
	view := present.CaptureFor(app.Variant, sub, progressWriter(cmd))
	ctrl, err := wizard.New(view, app.Client, app.Variant,
		wizard.WithRenderer(r),
		wizard.WithMessages(app.Messages),
		wizard.WithLogger(app.Log),
	)
	if err != nil {
		return err
	}
	if err := ctrl.Submit(cmd.Context()); err != nil {
		return err
	}

	echo, _ := cmd.Flags().GetBool("echo")
	indent, _ := cmd.Flags().GetBool("indent")
	o := present.OutcomeOf(ctrl, view, app.Client.Endpoint(app.Variant))
	err = renderOutcome(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), o, present.Options{
		Mode:       mode,
		JSONIndent: indent,
		Echo:       echo,
		Style:      app.Cfg.GetString("markdown.style"),
		WordWrap:   app.Cfg.GetInt("markdown.word_wrap"),
	})
	if err != nil {
		return err
	}
	if o.Failed() {
		return &ExitError{Code: 1}
	}
	return nil
}

// editSubmission opens the editor on a template prefilled from sub. It
// reports false when the user left the template empty.
func editSubmission(cmd *cobra.Command, v api.Variant, sub api.Submission) (api.Submission, bool, error) {
	path, err := editor.PathFor(v.Fingerprint(sub))
	if err != nil {
		return sub, false, err
	}
	initial := []byte(editor.ComposeForm(v, sub))
	out, changed, err := editor.OpenAt(path, initial)
	if err != nil {
		return sub, false, err
	}
	_ = os.Remove(path)

	if !changed {
		return sub, sub != (api.Submission{}), nil
	}
	edited := editor.ParseForm(string(out))
	if edited == (api.Submission{}) {
		return sub, false, nil
	}
	app := getApp(cmd)
	app.Log.Debug().Str("submission", v.Fingerprint(edited)).Msg("submission composed in editor")
	return edited, true, nil
}
