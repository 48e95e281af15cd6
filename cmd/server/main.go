package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/warehouse-atlas/pkg/config"
	"github.com/de-tools/warehouse-atlas/pkg/observability"
	"github.com/de-tools/warehouse-atlas/pkg/server"
	"github.com/de-tools/warehouse-atlas/pkg/services/source"
	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "warehouse-server",
		Short:         "Serve warehouse data over gRPC and HTTP",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, cfgPath)
		},
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults and WAREHOUSE_* env vars apply without one)")
	return rootCmd
}

func runServer(cmd *cobra.Command, cfgPath string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	level, _ := cfg.LogLevel()

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		Endpoint:   cfg.Telemetry.OTLPEndpoint,
		URLPath:    cfg.Telemetry.OTLPURLPath,
		AuthHeader: cfg.Telemetry.OTLPAuthHeader,
		Insecure:   cfg.Telemetry.OTLPInsecure,
		Version:    version,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	registry, err := source.NewDefaultRegistry(nil)
	if err != nil {
		return fmt.Errorf("failed to create source registry: %w", err)
	}

	src, err := registry.Create(ctx, source.Settings{
		Kind:         cfg.Source.Kind,
		Profile:      cfg.Source.Profile,
		ProfilesFile: cfg.Source.ProfilesFile,
		Catalog:      cfg.Source.Catalog,
		DBPath:       cfg.Source.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s source: %w", cfg.Source.Kind, err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close source")
			}
		}()
	}

	lookup, err := warehouse.NewLookupService(src, warehouse.WithRequireID(cfg.Lookup.RequireID))
	if err != nil {
		return err
	}

	logger.Info().
		Str("source", src.Kind()).
		Bool("require_id", cfg.Lookup.RequireID).
		Msg("warehouse lookup configured")

	srv := server.New(server.Config{
		GRPCAddr:        cfg.Server.GRPCAddr,
		HTTPAddr:        cfg.Server.HTTPAddr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Reflection:      cfg.Server.Reflection,
		Dependencies: server.Dependencies{
			Lookup: lookup,
			Logger: logger,
		},
	})

	return srv.Run(ctx)
}
