package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prperemyshlev/storefront-service/internal/app"
	"github.com/prperemyshlev/storefront-service/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront API: code-exchange login, catalogue and checkout",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	infra, err := app.NewInfrastructure(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	application, err := app.NewApp(ctx, infra, cfg)
	if err != nil {
		_ = infra.Shutdown(context.Background())
		return fmt.Errorf("failed to build application: %w", err)
	}

	infra.Logger().Info("Storefront starting", zap.String("version", version), zap.String("env", cfg.Env))

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("application failed: %w", err)
	}

	return nil
}
