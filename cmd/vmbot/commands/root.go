package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/celestiaorg/vmbot/internal/logger"
)

// flag names
const (
	flagEnvFile    = "env-file"
	flagHealthAddr = "health-addr"
)

// Version is set at build time with -ldflags "-X .../commands.Version=..."
var Version = "dev"

// envFile holds the path given with --env-file
var envFile string

func init() {
	RootCmd.PersistentFlags().StringVarP(&envFile, flagEnvFile, "e", ".env", "File with environment variables to load; existing variables win")

	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(GetInstanceCmd())
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vmbot version",
	// Skip the env file and logger setup of the root command.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vmbot %s\n", Version)
	},
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "vmbot",
	Short: "vmbot - start, stop and check a Compute Engine VM from Discord",
	Long: `vmbot is a Discord bot that controls a single Compute Engine instance.
Users in the allowed channel can start it, stop it and ask for its status.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadEnvFile(cmd); err != nil {
			return err
		}
		logger.InitializeAndConfigure()
		return nil
	},
}

// loadEnvFile loads the env file. A missing default .env is fine; a missing
// file that the user named explicitly is not.
func loadEnvFile(cmd *cobra.Command) error {
	err := godotenv.Load(envFile)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed(flagEnvFile) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", envFile, err)
}
