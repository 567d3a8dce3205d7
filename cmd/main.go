package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/yap/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(os.Stderr)})
	code := runner.Run(ctx, os.Args)

	stop()
	os.Exit(code)
}
