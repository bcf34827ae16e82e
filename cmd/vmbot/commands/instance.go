package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	gcompute "google.golang.org/api/compute/v1"

	"github.com/celestiaorg/vmbot/internal/compute"
	"github.com/celestiaorg/vmbot/internal/config"
)

// newController builds the controller used by the instance subcommands
var newController = func(cfg *config.BotConfig) compute.InstanceController {
	return compute.NewGCEController(cfg, nil)
}

// GetInstanceCmd returns the instance command with its subcommands
func GetInstanceCmd() *cobra.Command {
	return instanceCmd
}

func init() {
	instanceCmd.AddCommand(startInstanceCmd)
	instanceCmd.AddCommand(stopInstanceCmd)
	instanceCmd.AddCommand(statusInstanceCmd)
}

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Control the configured instance directly, without Discord",
}

var startInstanceCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the instance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, controller, err := loadController()
		if err != nil {
			return err
		}

		op, err := controller.StartInstance(cmd.Context(), compute.IdentityFromConfig(cfg))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Start requested for %s (operation %s)\n", cfg.InstanceName, operationName(op))
		return nil
	},
}

var stopInstanceCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the instance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, controller, err := loadController()
		if err != nil {
			return err
		}

		op, err := controller.StopInstance(cmd.Context(), compute.IdentityFromConfig(cfg))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stop requested for %s (operation %s)\n", cfg.InstanceName, operationName(op))
		return nil
	},
}

var statusInstanceCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the instance status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, controller, err := loadController()
		if err != nil {
			return err
		}

		status, err := controller.GetStatus(cmd.Context(), compute.IdentityFromConfig(cfg))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", cfg.InstanceName, status.Message())
		return nil
	},
}

func loadController() (*config.BotConfig, compute.InstanceController, error) {
	cfg := config.NewBotConfig()
	if err := cfg.ValidateCloud(); err != nil {
		return nil, nil, err
	}
	return cfg, newController(cfg), nil
}

func operationName(op *gcompute.Operation) string {
	if op == nil || op.Name == "" {
		return "unknown"
	}
	return op.Name
}
