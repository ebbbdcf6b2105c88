package cmd

import (
	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/kbart/internal/kbartcmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kbart",
		Short: "KBART coverage export from per-volume issue records",
		Long: `kbart turns per-volume issue records of serial titles into KBART rows.

It works out the most consistent ordering of each title's volumes and years,
splits the run into contiguous coverage ranges and writes them as TSV, CSV,
HTML or a terminal table, optionally with coverage notes.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (default ./kbart.toml or ~/.config/kbart/config.toml)")

	// Add subcommands
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(kbartcmd.NewConfigCmd())

	return cmd
}
