package kbartcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lehigh-university-libraries/kbart/internal/config"
	"github.com/lehigh-university-libraries/kbart/internal/kbart"
	"github.com/lehigh-university-libraries/kbart/internal/results"
)

type runOptions struct {
	inputs    []string
	sample    int
	output    string
	reportDir string
}

func executeRun(ctx context.Context, stdout io.Writer, cfg *config.Config, opts runOptions) error {
	slog.Info("Starting KBART export", "inputs", opts.inputs, "style", cfg.Export.Style, "format", cfg.Export.Format)

	paths, numRecords, titles, err := loadTitles(opts.inputs, opts.sample)
	if err != nil {
		return err
	}

	style, err := kbart.LookupStyle(cfg.Export.Style)
	if err != nil {
		return err
	}
	exportOpts, err := cfg.ExportOptions()
	if err != nil {
		return err
	}

	converter := kbart.NewConverter(cfg.ConverterOptions())
	res, err := converter.ConvertTitles(ctx, titles)
	if err != nil {
		return fmt.Errorf("failed to convert titles: %w", err)
	}

	rows := res.Titles
	if cfg.Export.Amalgamate {
		rows = kbart.Amalgamate(rows, style)
	} else {
		rows = kbart.Annotate(rows, style)
	}

	w := stdout
	if opts.output != "" && opts.output != "-" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := kbart.Export(w, rows, exportOpts); err != nil {
		return fmt.Errorf("failed to export titles: %w", err)
	}
	slog.Info("Export complete", "rows", len(rows), "output", opts.output)

	if opts.reportDir != "" {
		report := results.NewReport(results.RunConfig{
			Inputs:         paths,
			Style:          style.ID,
			Format:         string(exportOpts.Format),
			Amalgamated:    cfg.Export.Amalgamate,
			TitleURLPrefix: cfg.Conversion.TitleURLPrefix,
			MaxYearGap:     cfg.Conversion.MaxYearGap,
		}, numRecords, res, time.Now())

		path, err := results.SaveToYAML(opts.reportDir, report)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		slog.Info("Report saved", "path", path, "run_id", report.Config.RunID)
	}

	return nil
}
