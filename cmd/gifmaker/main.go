package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gifmaker/internal/failures"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "gifmaker: %v\n", err)
			if failures.IsUsage(err) {
				fmt.Fprintln(os.Stderr, "Run 'gifmaker --help' for usage.")
			}
		}
		os.Exit(failures.ExitCode(err))
	}
}
