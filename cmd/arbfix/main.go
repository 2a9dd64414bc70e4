package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"arbfix/internal/adapters/console"
	"arbfix/internal/config"
	"arbfix/internal/infrastructure/i18n"
	"arbfix/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := console.NewApp(cfg, log, i18n.NewTranslator(cfg.Locale, log), os.Stdout)
	if err := app.CLI().RunContext(ctx, os.Args); err != nil {
		log.Error("❌ arbfix failed", zap.Error(err))
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
}
