package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/crestline-data/revlens/app/reporter"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer cancel()

	app := reporter.Initialize(ctx)
	defer app.Stop()

	if err := app.Run(ctx); err != nil {
		app.Logger.Fatal("Report run failed", zap.Error(err))
	}
}
