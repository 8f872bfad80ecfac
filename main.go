package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/locvowork/academic_records/internal/bootstrap"
	"github.com/locvowork/academic_records/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		os.Exit(1)
	}

	if err := app.ConfigureServer(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to configure server: %v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		os.Exit(1)
	}
}
