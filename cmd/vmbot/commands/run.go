package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/celestiaorg/vmbot/internal/api"
	"github.com/celestiaorg/vmbot/internal/compute"
	"github.com/celestiaorg/vmbot/internal/config"
	"github.com/celestiaorg/vmbot/internal/discord"
	"github.com/celestiaorg/vmbot/internal/logger"
	"github.com/celestiaorg/vmbot/internal/metrics"
	"github.com/celestiaorg/vmbot/internal/router"
)

func init() {
	runCmd.Flags().String(flagHealthAddr, "", "Listen address for /health and /metrics (env: HEALTH_ADDR, \"off\" disables)")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve commands",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.NewBotConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cmd.Flags().Changed(flagHealthAddr) {
			cfg.HealthAddr, _ = cmd.Flags().GetString(flagHealthAddr)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runBot(ctx, cfg)
	},
}

func runBot(ctx context.Context, cfg *config.BotConfig) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	controller := compute.NewGCEController(cfg, m)
	r := router.New(cfg, controller, m)

	gateway, err := discord.NewGateway(cfg, r, m)
	if err != nil {
		return err
	}

	if cfg.AllowsAllChannels() {
		logger.Warnf("ALLOWED_CHANNEL_ID is not set: instance commands are accepted from every channel")
	}

	if cfg.HealthAddr != "" && cfg.HealthAddr != "off" {
		app := api.NewServer(gateway, reg)
		go func() {
			logger.Infof("Health server listening on %s", cfg.HealthAddr)
			if err := app.Listen(cfg.HealthAddr); err != nil {
				logger.Errorf("Health server stopped: %v", err)
			}
		}()
		defer func() {
			if err := app.Shutdown(); err != nil {
				logger.Errorf("Failed to shut down health server: %v", err)
			}
		}()
	}

	if err := gateway.Open(ctx); err != nil {
		return err
	}
	logger.Infof("Serving commands with prefix %q for instance %s", cfg.CommandPrefix, compute.IdentityFromConfig(cfg))

	<-ctx.Done()
	logger.Info("Shutting down")

	if err := gateway.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}
