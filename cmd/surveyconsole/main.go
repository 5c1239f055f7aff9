package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/config"
	"github.com/survey-system/surveyconsole/internal/logger"
	"github.com/survey-system/surveyconsole/internal/ui/server"
	"github.com/survey-system/surveyconsole/internal/version"

	// CA roots for reaching the survey API over https from minimal container images
	_ "golang.org/x/crypto/x509roots/fallback"
)

func main() {
	cmd := &cobra.Command{
		Use:   "surveyconsole",
		Short: "Survey system web console",
		Long:  `Web console for creating, publishing and analysing surveys, backed by the survey API`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Get().String()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	serverLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	slog.SetDefault(serverLogger)

	apiBaseURL, err := cfg.ResolvedAPIBaseURL()
	if err != nil {
		return err
	}

	serverLogger.Info("Starting survey console",
		slog.String("version", version.Get().Version),
		slog.String("api_base_url", apiBaseURL),
	)

	base := client.New(apiBaseURL, cfg.RequestTimeout,
		client.WithLogger(serverLogger),
		client.WithUserAgent(version.UserAgent("surveyconsole")),
	)

	srv, err := server.NewServer(cfg, serverLogger, base)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		serverLogger.Error("survey console error", slog.String("error", err.Error()))
		return err
	}

	serverLogger.Info("survey console shutdown complete")
	return nil
}
