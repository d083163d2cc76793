package main

import (
	"context"
	"os/signal"
	"syscall"

	"clinic-scheduler/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize clinic scheduler")
	}

	// Blocks until SIGINT/SIGTERM, then drains requests and closes connections.
	if err := app.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Clinic scheduler stopped unexpectedly")
	}
}
