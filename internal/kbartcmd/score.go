package kbartcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/lehigh-university-libraries/kbart/internal/biblio/scorer"
	"github.com/lehigh-university-libraries/kbart/internal/config"
	"github.com/lehigh-university-libraries/kbart/internal/kbart"
	"github.com/lehigh-university-libraries/kbart/internal/results"
)

func executeScore(ctx context.Context, stdout io.Writer, cfg *config.Config, inputs []string, sample int) error {
	_, numRecords, titles, err := loadTitles(inputs, sample)
	if err != nil {
		return err
	}

	res, err := kbart.NewConverter(cfg.ConverterOptions()).ConvertTitles(ctx, titles)
	if err != nil {
		return fmt.Errorf("failed to convert titles: %w", err)
	}

	headers := []string{"Title", "ISSN", "Records", "Ordering", "Ranges", "Volume score", "Year score"}
	aligns := []kbart.Alignment{kbart.AlignLeft, kbart.AlignLeft, kbart.AlignRight, kbart.AlignLeft, kbart.AlignRight}
	rows := make([][]string, 0, len(res.Decisions))
	for _, d := range res.Decisions {
		rows = append(rows, []string{
			d.PublicationTitle,
			d.ISSN,
			strconv.Itoa(d.Records),
			d.Ordering,
			strconv.Itoa(d.Ranges),
			formatScore(&d.VolumeScore),
			formatScore(d.YearScore),
		})
	}
	if _, err := fmt.Fprintln(stdout, kbart.RenderTable(headers, rows, aligns)); err != nil {
		return err
	}

	s := results.Summarize(numRecords, res)
	slog.Info("Scored titles", "titles", s.Titles, "volume_ordered", s.VolumeOrdered,
		"year_ordered", s.YearOrdered, "multi_range", s.MultiRange)
	return nil
}

func formatScore(s *scorer.Score) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f (v %.2f/%.2f y %.2f/%.2f)",
		s.Composite, s.VolumeRange, s.VolumeList, s.YearRange, s.YearList)
}
