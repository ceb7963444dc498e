package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmorgan81/portrait/internal/config"
	"github.com/dmorgan81/portrait/internal/inject"
	"github.com/dmorgan81/portrait/internal/log"
	"github.com/dmorgan81/portrait/internal/tui"
	"github.com/samber/do"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.New(os.Stderr, log.Options{Format: log.FormatText}).Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	logger := log.New(os.Stderr, log.Options{Format: cfg.LogFormat, Level: cfg.LogLevel})
	ctx, stop := signal.NotifyContext(log.NewContext(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := inject.Setup(ctx, cfg, os.Stdout)
	defer func() { _ = injector.Shutdown() }()

	session, err := do.Invoke[*tui.Session](injector)
	if err == nil {
		err = session.Run(ctx)
	}
	if err != nil {
		logger.Error("session failed", "error", err)
		stop()
		_ = injector.Shutdown()
		os.Exit(1)
	}
}
