// Package app is helper for simple cli apps.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
)

// Run calls run with a development logger and a context cancelled on interrupt.
// A returned error is printed with details and exits with status 2.
func Run(run func(ctx context.Context, lg *zap.Logger) error) {
	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, lg)
	cancel()
	_ = lg.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
}
