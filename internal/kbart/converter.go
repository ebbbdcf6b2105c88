package kbart

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
	"github.com/lehigh-university-libraries/kbart/internal/biblio/compare"
	"github.com/lehigh-university-libraries/kbart/internal/biblio/scorer"
)

// DefaultTitleURLPrefix is prepended to resolver parameters to form title_url.
const DefaultTitleURLPrefix = "LOCKSS_RESOLVER?"

// Options configures a Converter.
type Options struct {
	TitleURLPrefix string
	Workers        int
	MaxYearGap     int
	Compare        compare.Options
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TitleURLPrefix: DefaultTitleURLPrefix,
		Workers:        runtime.NumCPU() + 1,
		MaxYearGap:     biblio.DefaultMaxYearGap,
		Compare:        compare.DefaultOptions(),
	}
}

// Converter turns the issue records of titles into KBART rows.
type Converter struct {
	opts Options
}

// NewConverter creates a converter, filling unset options with defaults.
func NewConverter(opts Options) *Converter {
	def := DefaultOptions()
	if opts.TitleURLPrefix == "" {
		opts.TitleURLPrefix = def.TitleURLPrefix
	}
	if opts.Workers < 1 {
		opts.Workers = def.Workers
	}
	if opts.MaxYearGap < 1 {
		opts.MaxYearGap = def.MaxYearGap
	}
	return &Converter{opts: opts}
}

// Decision records how the coverage of one title was worked out.
type Decision struct {
	PublicationTitle string        `json:"publication_title" yaml:"publication_title"`
	ISSN             string        `json:"issn,omitempty" yaml:"issn,omitempty"`
	Records          int           `json:"records" yaml:"records"`
	Ordering         string        `json:"ordering" yaml:"ordering"`
	Ranges           int           `json:"ranges" yaml:"ranges"`
	HasVolumes       bool          `json:"has_volumes" yaml:"has_volumes"`
	HasYears         bool          `json:"has_years" yaml:"has_years"`
	VolumeScore      scorer.Score  `json:"volume_score" yaml:"volume_score"`
	YearScore        *scorer.Score `json:"year_score,omitempty" yaml:"year_score,omitempty"`
}

// Result is the output of converting a batch of titles.
type Result struct {
	Titles    []Title
	Decisions []Decision
}

// ConvertTitles converts each title's records on a bounded worker pool.
// Rows come back in input order. The first failure cancels the remaining work.
func (c *Converter) ConvertTitles(ctx context.Context, titles [][]biblio.IssueRecord) (*Result, error) {
	cmp := compare.New(c.opts.Compare, compare.NewCache())

	type converted struct {
		titles    []Title
		decisions []Decision
	}
	results := make([]converted, len(titles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, records := range titles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("failed to convert title %d: %w", i, err)
			}
			t, d := c.ConvertTitle(records, cmp)
			results[i] = converted{titles: t, decisions: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Title conversion problem; remaining titles cancelled", "err", err)
		return nil, err
	}

	res := &Result{}
	for _, r := range results {
		res.Titles = append(res.Titles, r.titles...)
		res.Decisions = append(res.Decisions, r.decisions...)
	}
	slog.Info("Converted titles", "titles", len(titles), "rows", len(res.Titles))
	return res, nil
}

// ConvertTitle converts the records of one title into one row per coverage
// range. Records whose identifiers differ are treated as separate titles.
func (c *Converter) ConvertTitle(records []biblio.IssueRecord, cmp *compare.Comparator) ([]Title, []Decision) {
	if len(records) == 0 {
		return nil, nil
	}

	var titles []Title
	var decisions []Decision
	for _, group := range biblio.SplitOnIdentifierChange(biblio.SortByIdentifiers(records, cmp)) {
		base := c.baseTitle(group[0])
		ranges, d := c.coverageRanges(group, cmp)
		for _, r := range ranges {
			if len(ranges) > 1 {
				base = c.updateTitleProperties(base, r.First())
			}
			verifyRange(r)
			titles = append(titles, fillTitle(base, r, d.HasVolumes))
		}
		decisions = append(decisions, d)
	}
	SortTitles(titles, cmp)
	return titles, decisions
}

func (c *Converter) coverageRanges(records []biblio.IssueRecord, cmp *compare.Comparator) ([]biblio.CoverageRange, Decision) {
	first := records[0]
	d := Decision{
		PublicationTitle: first.PublicationTitle,
		ISSN:             first.ISSN(),
		Records:          len(records),
		HasVolumes:       hasFullVolumes(records),
		HasYears:         hasFullYears(records),
		Ordering:         biblio.Volume.String(),
	}

	byVolume := biblio.SortVolumeDate(records, cmp)
	ranges := biblio.Segment(byVolume, c.opts.MaxYearGap)
	d.VolumeScore = scorer.Measure(byVolume, ranges)

	if (!d.HasVolumes || !d.VolumeScore.VolumeSatisfactory()) && d.HasYears {
		byYear := biblio.SortDateFirst(records, cmp)
		yearRanges := biblio.Segment(byYear, c.opts.MaxYearGap)
		yearScore := scorer.Measure(byYear, yearRanges)
		d.YearScore = &yearScore
		if !scorer.PreferVolume(d.VolumeScore, yearScore) {
			d.Ordering = biblio.Year.String()
			ranges = yearRanges
		}
	}

	d.Ranges = len(ranges)
	slog.Debug("Chose ordering", "title", d.PublicationTitle, "ordering", d.Ordering,
		"ranges", d.Ranges, "volume_score", d.VolumeScore.String())
	return ranges, d
}

// hasFullVolumes holds when every record has a usable volume and the volumes
// are not all the same, unless there is only one record.
func hasFullVolumes(records []biblio.IssueRecord) bool {
	differ := false
	for i, r := range records {
		if !biblio.IsVolumeValid(r.StartVolume()) || !biblio.IsVolumeValid(r.EndVolume()) {
			return false
		}
		if i > 0 && r.Volume != records[i-1].Volume {
			differ = true
		}
	}
	return differ || len(records) == 1
}

func hasFullYears(records []biblio.IssueRecord) bool {
	for _, r := range records {
		if r.FirstYear() == 0 || r.LastYear() == 0 {
			return false
		}
	}
	return true
}

func (c *Converter) baseTitle(r biblio.IssueRecord) Title {
	printID := NormaliseISBN(r.PrintISBN)
	onlineID := NormaliseISBN(r.EISBN)
	if printID == "" && onlineID == "" && !strings.EqualFold(r.PublicationType, "bookSeries") {
		printID = NormaliseISSN(r.PrintISSN)
		onlineID = NormaliseISSN(r.EISSN)
	}
	t := NewTitle(Overrides{
		PublisherName:    r.Publisher,
		PublicationTitle: r.PublicationTitle,
		PrintIdentifier:  printID,
		OnlineIdentifier: onlineID,
		TitleID:          r.TitleID,
	})
	return t.With(Overrides{TitleURL: c.opts.TitleURLPrefix + t.ResolverParams()})
}

// updateTitleProperties picks up name and identifier changes that happen
// part way through a title's run.
func (c *Converter) updateTitleProperties(t Title, r biblio.IssueRecord) Title {
	o := Overrides{}
	if r.PublicationTitle != "" && r.PublicationTitle != t.Value(PublicationTitle) {
		slog.Info("Name change within title", "from", t.Value(PublicationTitle), "to", r.PublicationTitle)
		o[PublicationTitle] = r.PublicationTitle
	}
	if issn := NormaliseISSN(r.PrintISSN); issn != "" && issn != t.Value(PrintIdentifier) {
		slog.Info("ISSN change within title", "from", t.Value(PrintIdentifier), "to", issn)
		o[PrintIdentifier] = issn
	}
	if eissn := NormaliseISSN(r.EISSN); eissn != "" && eissn != t.Value(OnlineIdentifier) {
		slog.Info("EISSN change within title", "from", t.Value(OnlineIdentifier), "to", eissn)
		o[OnlineIdentifier] = eissn
	}
	if r.TitleID != "" && r.TitleID != t.Value(TitleID) {
		slog.Info("Title ID change within title", "from", t.Value(TitleID), "to", r.TitleID)
		o[TitleID] = r.TitleID
	}
	if len(o) == 0 {
		return t
	}
	t = t.With(o)
	return t.With(Overrides{TitleURL: c.opts.TitleURLPrefix + t.ResolverParams()})
}

// fillTitle builds the row for one coverage range. Coverage reaching the
// current year is open-ended, so its end fields stay blank.
func fillTitle(base Title, r biblio.CoverageRange, hasVolumes bool) Title {
	first, last := r.First(), r.Last()
	o := Overrides{
		NumFirstIssueOnline: first.StartIssue(),
		NumLastIssueOnline:  last.EndIssue(),
		CoverageDepth:       first.CoverageDepth,
	}
	if hasVolumes {
		o[NumFirstVolOnline] = first.StartVolume()
		o[NumLastVolOnline] = last.EndVolume()
	}
	if biblio.IsPublicationYear(r.FirstYear) && biblio.IsPublicationYear(r.LastYear) {
		o[DateFirstIssueOnline] = strconv.Itoa(r.FirstYear)
		o[DateLastIssueOnline] = strconv.Itoa(r.LastYear)
	}
	if r.LastYear >= biblio.ThisYear() {
		for _, f := range LastFields {
			o[f] = ""
		}
	}
	return base.With(o)
}

func verifyRange(r biblio.CoverageRange) {
	first, last := r.First(), r.Last()
	if first.FirstYear() > last.FirstYear() {
		slog.Warn("Coverage range years out of order", "title", first.PublicationTitle,
			"first", first.StartYear(), "last", last.StartYear())
	}
	if !volumesInOrder(first.StartVolume(), last.EndVolume()) {
		slog.Warn("Coverage range volumes out of order", "title", first.PublicationTitle,
			"first", first.StartVolume(), "last", last.EndVolume())
	}
}

func volumesInOrder(first, last string) bool {
	if first == "" || last == "" {
		return true
	}
	a, errA := strconv.Atoi(first)
	b, errB := strconv.Atoi(last)
	if errA == nil && errB == nil {
		return a <= b
	}
	if !biblio.ChangeOfFormats(first, last) {
		return biblio.NormaliseIdentifier(first) <= biblio.NormaliseIdentifier(last)
	}
	return first <= last
}
