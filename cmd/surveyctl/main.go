package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/survey-system/surveyconsole/internal/cli"
	"github.com/survey-system/surveyconsole/internal/config"
	"github.com/survey-system/surveyconsole/internal/logger"

	// CA roots for reaching the survey API over https from minimal container images
	_ "golang.org/x/crypto/x509roots/fallback"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	// the cli talks to people, so only warnings and errors are logged unless LOG_LEVEL says otherwise
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	// stdout carries command output, so logs always use the stderr text handler
	log := logger.InitLogger(logger.ParseLogLevel(level), "dev")
	slog.SetDefault(log)

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, app, os.Args[1:])
}
