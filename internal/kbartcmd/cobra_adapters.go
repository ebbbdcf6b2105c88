package kbartcmd

import (
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command that converts issue records to KBART rows
func NewRunCmd() *cobra.Command {
	var flags exportFlags
	var output string
	var reportDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert issue records to KBART rows",
		Long: `Convert per-volume issue records into KBART title rows.

Records are grouped into titles, each title's records are put in the most
consistent order (volume first or year first), and gaps in the run split the
coverage into one row per contiguous range. Coverage reaching the current
year is left open-ended.`,
		Example: `  # Export every record under data/ as TSV
  kbart export run --input 'data/**/*.jsonl' > titles.tsv

  # One row per title with SFX threshold notes, written to a file
  kbart export run -i issues.parquet --amalgamate --style sfx -o titles.tsv

  # Render a sample as a table and keep a YAML report of the decisions
  kbart export run -i issues.sqlite --sample 500 -f table --report reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			return executeRun(cmd.Context(), cmd.OutOrStdout(), cfg, runOptions{
				inputs:    flags.inputs,
				sample:    flags.sample,
				output:    output,
				reportDir: reportDir,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&reportDir, "report", "", "Directory for a YAML report of the run")

	return cmd
}

// NewScoreCmd creates the score command that shows ordering decisions per title
func NewScoreCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show how each title's records were ordered",
		Long: `Score the volume-first and year-first orderings of each title and show
which one was chosen, how many coverage ranges it produced and the
consistency scores behind the choice.`,
		Example: `  kbart export score --input issues.jsonl
  kbart export score -i 'data/*.parquet' --max-year-gap 2 -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			return executeScore(cmd.Context(), cmd.OutOrStdout(), cfg, flags.inputs, flags.sample)
		},
	}

	flags.register(cmd)

	return cmd
}

// NewStylesCmd creates the styles command listing coverage note styles and orderings
func NewStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List coverage note styles and field orderings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeStyles(cmd.OutOrStdout())
		},
	}
}

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kbart configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Long: `Write a commented sample configuration file. Without a path it is written
to ~/.config/kbart/config.toml; use "-" to print it instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return executeConfigInit(cmd.OutOrStdout(), path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
