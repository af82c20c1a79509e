package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/mithrel/eventwizard/internal/present"
	"github.com/mithrel/eventwizard/internal/present/format"
)

const defaultPager = "less -FRSX"

// renderOutcome writes o, piping plain and pretty output through a pager
// when stdout is a terminal. Compiled plans routinely exceed one screen.
func renderOutcome(ctx context.Context, out, errOut io.Writer, o format.Outcome, opts present.Options) error {
	if opts.Mode != present.ModePlain && opts.Mode != present.ModePretty {
		return present.RenderOutcome(out, errOut, o, opts)
	}
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderOutcome(w, errOut, o, opts)
	})
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !isTerminal(outFile) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
