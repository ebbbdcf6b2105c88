package cmd

import (
	"github.com/lehigh-university-libraries/kbart/internal/kbartcmd"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "KBART export tools",
		Long: `Tools for converting issue records into KBART coverage rows.

Supports exporting rows in several formats, inspecting the ordering decision
made for each title, and listing the available coverage note styles.`,
	}

	cmd.AddCommand(kbartcmd.NewRunCmd())
	cmd.AddCommand(kbartcmd.NewScoreCmd())
	cmd.AddCommand(kbartcmd.NewStylesCmd())

	return cmd
}
