package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/cv-orchestrator/internal/config"
	"github.com/jonathan/cv-orchestrator/internal/fetch"
	"github.com/jonathan/cv-orchestrator/internal/orchestrator"
	"github.com/jonathan/cv-orchestrator/internal/server"
)

var (
	servePort    int
	serveCfgFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the CV generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveCfgFile, "config", "", "Path to config file (default: orchestrator.yaml in the working directory)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := config.Load(serveCfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := buildLogger(settings)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stdout sync failures are not actionable

	sugar := logger.Sugar()
	data := fetch.NewClient(settings, sugar)
	svc := orchestrator.New(settings, data, sugar)

	srv := server.New(server.Config{Port: servePort}, settings, svc, sugar)
	return srv.Start()
}

func buildLogger(settings *config.Settings) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(settings.LogLevel))); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if settings.Environment == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
