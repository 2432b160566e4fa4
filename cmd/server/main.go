package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/bingo-server/internal/app"
	"github.com/vancomm/bingo-server/internal/config"
	"github.com/vancomm/bingo-server/migrations"
)

func main() {
	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	logger.WithField("development", config.Development()).Info("starting up")

	a := app.New(logger, migrations.FS)
	if err := a.Start(ctx); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
