package kbartcmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
	"github.com/lehigh-university-libraries/kbart/internal/config"
	"github.com/lehigh-university-libraries/kbart/internal/dataset"
)

// exportFlags are the flags shared by commands that convert records.
type exportFlags struct {
	inputs      []string
	sample      int
	workers     int
	maxYearGap  int
	prefix      string
	style       string
	format      string
	fields      string
	amalgamate  bool
	omitEmpty   bool
	omitHeader  bool
	excludeNoID bool
	verbose     bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.inputs, "input", "i", nil, "Issue record files or ** globs (.jsonl, .parquet, .sqlite)")
	cmd.Flags().IntVar(&f.sample, "sample", 0, "Only read this many records (0 for all)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Titles converted in parallel")
	cmd.Flags().IntVar(&f.maxYearGap, "max-year-gap", 0, "Largest year step kept within one coverage range")
	cmd.Flags().StringVar(&f.prefix, "title-url-prefix", "", "Prefix for generated title_url values")
	cmd.Flags().StringVar(&f.style, "style", "", "Coverage note style")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: tsv, csv, html, table")
	cmd.Flags().StringVar(&f.fields, "fields", "", "Predefined ordering or comma separated field list")
	cmd.Flags().BoolVar(&f.amalgamate, "amalgamate", false, "Fold each title's ranges into one row with a coverage note")
	cmd.Flags().BoolVar(&f.omitEmpty, "omit-empty", false, "Drop columns with no values")
	cmd.Flags().BoolVar(&f.omitHeader, "omit-header", false, "Do not write a header row")
	cmd.Flags().BoolVar(&f.excludeNoID, "exclude-no-id", false, "Drop rows without an identifier")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("input")
}

// loadConfig reads the configuration named by the root --config flag and
// layers any flags the user set on top of it.
func (f *exportFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Conversion.Workers = f.workers
	}
	if flags.Changed("max-year-gap") {
		cfg.Conversion.MaxYearGap = f.maxYearGap
	}
	if flags.Changed("title-url-prefix") {
		cfg.Conversion.TitleURLPrefix = f.prefix
	}
	if flags.Changed("style") {
		cfg.Export.Style = f.style
	}
	if flags.Changed("format") {
		cfg.Export.Format = f.format
	}
	if flags.Changed("fields") {
		cfg.Export.Fields = f.fields
	}
	if flags.Changed("amalgamate") {
		cfg.Export.Amalgamate = f.amalgamate
	}
	if flags.Changed("omit-empty") {
		cfg.Export.OmitEmpty = f.omitEmpty
	}
	if flags.Changed("omit-header") {
		cfg.Export.OmitHeader = f.omitHeader
	}
	if flags.Changed("exclude-no-id") {
		cfg.Export.ExcludeNoID = f.excludeNoID
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setupLogging(cfg.LogLevel())
	if exists {
		slog.Debug("Loaded config", "path", resolved)
	}
	return cfg, nil
}

// setupLogging sends logs to stderr so exported rows can stream to stdout.
func setupLogging(level slog.Level) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadTitles expands the input patterns, loads their records and groups them
// into titles.
func loadTitles(patterns []string, sample int) ([]string, int, [][]biblio.IssueRecord, error) {
	paths, err := dataset.ExpandInputs(patterns)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to resolve inputs: %w", err)
	}

	slog.Info("Loading issue records", "files", len(paths), "sample", sample)
	records, err := dataset.LoadAll(paths, sample)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to load records: %w", err)
	}

	titles := biblio.GroupByTitle(records)
	slog.Info("Records loaded", "records", len(records), "titles", len(titles))
	return paths, len(records), titles, nil
}
