//go:generate go run . docs --dir ../../docs

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mithrel/eventwizard/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err == nil {
		return
	}
	if code, ok := cli.IsExitError(err); ok {
		os.Exit(code)
	}
	fmt.Fprintln(os.Stderr, "eventwizard-cli:", err)
	os.Exit(1)
}
