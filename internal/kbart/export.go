package kbart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects an output encoding.
type Format string

const (
	FormatTSV   Format = "tsv"
	FormatCSV   Format = "csv"
	FormatHTML  Format = "html"
	FormatTable Format = "table"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTSV, FormatCSV, FormatHTML, FormatTable}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Ordering is a named column selection.
type Ordering struct {
	ID          string
	Description string
	Fields      []Field
}

var orderings = []Ordering{
	{
		ID:          "kbart",
		Description: "Full KBART format in default ordering; one line per coverage range",
		Fields:      AllFields(),
	},
	{
		ID:          "publisher_publication",
		Description: "Standard KBART fields with publisher name at the start",
		Fields: []Field{
			PublisherName, PublicationTitle, PrintIdentifier, OnlineIdentifier,
			DateFirstIssueOnline, NumFirstVolOnline, NumFirstIssueOnline,
			DateLastIssueOnline, NumLastVolOnline, NumLastIssueOnline,
			TitleURL, FirstAuthor, TitleID, EmbargoInfo, CoverageDepth, CoverageNotes,
		},
	},
	{
		ID:          "title_coverage_ranges",
		Description: "Coverage ranges for each title, publisher first",
		Fields: []Field{
			PublisherName, PublicationTitle, PrintIdentifier, OnlineIdentifier,
			DateFirstIssueOnline, NumFirstVolOnline, NumFirstIssueOnline,
			DateLastIssueOnline, NumLastVolOnline, NumLastIssueOnline,
		},
	},
	{
		ID:          "titles_basic",
		Description: "Publisher, publication, ISSN and eISSN",
		Fields:      []Field{PublisherName, PublicationTitle, PrintIdentifier, OnlineIdentifier},
	},
	{
		ID:          "title_issn",
		Description: "Print identifier and title only",
		Fields:      []Field{PrintIdentifier, PublicationTitle},
	},
	{
		ID:          "issn_only",
		Description: "Print identifiers only",
		Fields:      []Field{PrintIdentifier},
	},
}

// Orderings returns the predefined column orderings.
func Orderings() []Ordering {
	return slices.Clone(orderings)
}

// ResolveFields accepts either a predefined ordering id or a list of field
// labels. An empty string selects every field.
func ResolveFields(s string) ([]Field, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AllFields(), nil
	}
	for _, o := range orderings {
		if strings.EqualFold(o.ID, s) {
			return slices.Clone(o.Fields), nil
		}
	}
	return ParseFields(s)
}

// ExportOptions controls how rows are written.
type ExportOptions struct {
	Fields []Field
	Format Format
	// OmitEmpty drops columns that have no value in any row.
	OmitEmpty bool
	// OmitHeader suppresses the header row of tsv and csv output.
	OmitHeader bool
	// ExcludeNoID drops rows without any identifying value.
	ExcludeNoID bool
}

// Export writes titles to w.
func Export(w io.Writer, titles []Title, opts ExportOptions) error {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = AllFields()
	}
	if opts.ExcludeNoID {
		titles = slices.DeleteFunc(slices.Clone(titles), func(t Title) bool { return !t.HasIdentifier() })
	}
	if opts.OmitEmpty {
		fields = nonEmptyFields(titles, fields)
	}

	switch opts.Format {
	case FormatTSV, "":
		return writeSeparated(w, titles, fields, '\t', opts.OmitHeader)
	case FormatCSV:
		return writeSeparated(w, titles, fields, ',', opts.OmitHeader)
	case FormatHTML:
		_, err := io.WriteString(w, newTableWriter(titles, fields).RenderHTML()+"\n")
		return err
	case FormatTable:
		_, err := io.WriteString(w, newTableWriter(titles, fields).Render()+"\n")
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

func nonEmptyFields(titles []Title, fields []Field) []Field {
	return slices.DeleteFunc(slices.Clone(fields), func(f Field) bool {
		return !slices.ContainsFunc(titles, func(t Title) bool { return t.Has(f) })
	})
}

func writeSeparated(w io.Writer, titles []Title, fields []Field, sep rune, omitHeader bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	if !omitHeader {
		if err := cw.Write(Labels(fields)); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, t := range titles {
		if err := cw.Write(t.ValuesFor(fields)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}
	return nil
}

func newTableWriter(titles []Title, fields []Field) table.Writer {
	rows := make([][]string, len(titles))
	for i, t := range titles {
		rows[i] = t.ValuesFor(fields)
	}
	return newTable(Labels(fields), rows, nil)
}

// Alignment is the horizontal alignment of a table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable renders rows as a rounded terminal table. Headers keep their
// case and short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	if len(headers) == 0 {
		return ""
	}
	return newTable(headers, rows, aligns).Render()
}

func newTable(headers []string, rows [][]string, aligns []Alignment) table.Writer {
	columns := len(headers)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)
	return tw
}
