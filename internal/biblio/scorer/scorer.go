// Package scorer rates how consistently the volume and year values of an
// ordered record list behave, and decides which of two candidate orderings
// of the same title is more trustworthy.
//
// All ratios are proportions in [0, 1] where 0 is clean. A missing value in
// any pair forces the worst case of 1 for that ratio, and a pair whose values
// cannot be parsed counts against the ordering. Scores derived from the
// ratios are products of their complements, so 1 is a perfect score.
package scorer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
)

const (
	// CompositeThreshold is the composite score reached only when both
	// range and list products are perfect.
	CompositeThreshold = 2.0
	// VolumeThreshold is the level above which volume scores alone are
	// trusted without trying the alternate ordering.
	VolumeThreshold = 0.95
)

// Score holds the consistency measurements of one ordering.
type Score struct {
	VolumeRange float64 `json:"volume_range" yaml:"volume_range"`
	YearRange   float64 `json:"year_range" yaml:"year_range"`
	VolumeList  float64 `json:"volume_list" yaml:"volume_list"`
	YearList    float64 `json:"year_list" yaml:"year_list"`
	Composite   float64 `json:"composite" yaml:"composite"`

	MissingVolumes bool `json:"missing_volumes" yaml:"missing_volumes"`
	MissingYears   bool `json:"missing_years" yaml:"missing_years"`
}

// NewScore builds a Score from its four sub-scores.
func NewScore(volumeRange, yearRange, volumeList, yearList float64) Score {
	return Score{
		VolumeRange: volumeRange,
		YearRange:   yearRange,
		VolumeList:  volumeList,
		YearList:    yearList,
		Composite:   volumeRange*yearRange + volumeList*yearList,
	}
}

// Measure scores an ordering of records together with the coverage ranges
// it was segmented into.
func Measure(records []biblio.IssueRecord, ranges []biblio.CoverageRange) Score {
	s := NewScore(
		RangeScore(ranges, biblio.Volume),
		RangeScore(ranges, biblio.Year),
		ListScore(records, biblio.Volume),
		ListScore(records, biblio.Year),
	)
	for _, r := range ranges {
		for _, rec := range r.Records {
			if !biblio.Volume.HasValue(rec) {
				s.MissingVolumes = true
			}
			if !biblio.Year.HasValue(rec) {
				s.MissingYears = true
			}
		}
	}
	return s
}

// VolumeSatisfactory reports whether the volume ordering is good enough that
// a year-first ordering need not be tried.
func (s Score) VolumeSatisfactory() bool {
	return s.Composite >= CompositeThreshold ||
		(s.VolumeRange >= VolumeThreshold && s.VolumeList >= VolumeThreshold)
}

func (s Score) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "vol %.3f year %.3f volList %.3f yearList %.3f composite %.3f",
		s.VolumeRange, s.YearRange, s.VolumeList, s.YearList, s.Composite)
	if s.MissingVolumes {
		sb.WriteString(" (missing volume values)")
	}
	if s.MissingYears {
		sb.WriteString(" (missing year values)")
	}
	return sb.String()
}

// PreferVolume decides between a volume-first and a year-first ordering of
// the same records. The year ordering wins only when what it gains on the
// year axis outweighs what it costs on the volume axis, so two all-zero
// scores keep the volume ordering.
func PreferVolume(volumeOrdering, yearOrdering Score) bool {
	benefit := (yearOrdering.YearRange - volumeOrdering.YearRange) +
		(yearOrdering.YearList - volumeOrdering.YearList)
	loss := (volumeOrdering.VolumeRange - yearOrdering.VolumeRange) +
		(volumeOrdering.VolumeList - yearOrdering.VolumeList)
	return !(benefit > loss)
}

// RangeScore combines the per-range ratios of a field, averaged over the
// ranges and discounted by how often coverage gaps occur.
func RangeScore(ranges []biblio.CoverageRange, f biblio.Field) float64 {
	if len(ranges) == 0 {
		return 0
	}
	var red, brk, neg float64
	total := 0
	for _, r := range ranges {
		red += RedundancyRatio(r.Records, f)
		brk += BreakRatio(r.Records, f)
		neg += NegativeBreakRatio(r.Records, f)
		total += len(r.Records)
	}
	n := float64(len(ranges))
	gfd := GapFrequencyDiscount(total, len(ranges))
	return (1 - red/n) * (1 - brk/n) * (1 - gfd) * (1 - neg/n)
}

// ListScore rates a field over a whole unsegmented ordering. Year breaks are
// only counted when the volumes do not break at the same point.
func ListScore(records []biblio.IssueRecord, f biblio.Field) float64 {
	red := RedundancyRatio(records, f)
	neg := NegativeBreakRatio(records, f)
	var brk float64
	if f == biblio.Year {
		brk = UniqueYearBreakRatio(records)
	} else {
		brk = BreakRatio(records, f)
	}
	return (1 - red) * (1 - brk) * (1 - neg)
}

// BreakRatio is the proportion of adjacent pairs that are not appropriately
// consecutive on the field.
func BreakRatio(records []biblio.IssueRecord, f biblio.Field) float64 {
	pairs := len(records) - 1
	if pairs < 1 {
		return 0
	}
	breaks := 0
	for i := 1; i <= pairs; i++ {
		prev, cur := records[i-1], records[i]
		if !f.HasValue(prev) || !f.HasValue(cur) {
			return 1
		}
		ok, err := f.AppropriatelyConsecutive(prev, cur)
		if err != nil {
			slog.Warn("Could not check if values are appropriately consecutive",
				"field", f, "previous", f.Value(prev), "current", f.Value(cur), "err", err)
			breaks++
			continue
		}
		if !ok {
			breaks++
		}
	}
	return float64(breaks) / float64(pairs)
}

// UniqueYearBreakRatio is the proportion of adjacent pairs that break on the
// year without a parallel volume break. A pair lacking volume values counts
// as a year break.
func UniqueYearBreakRatio(records []biblio.IssueRecord) float64 {
	pairs := len(records) - 1
	if pairs < 1 {
		return 0
	}
	breaks := 0
	for i := 1; i <= pairs; i++ {
		prev, cur := records[i-1], records[i]
		if !biblio.Year.HasValue(prev) || !biblio.Year.HasValue(cur) {
			return 1
		}
		yearOK, err := biblio.Year.AppropriatelyConsecutive(prev, cur)
		if err != nil {
			slog.Warn("Could not check if year values constitute a break",
				"previous", prev.Year, "current", cur.Year, "err", err)
			breaks++
			continue
		}
		if yearOK {
			continue
		}
		if !biblio.Volume.HasValue(prev) || !biblio.Volume.HasValue(cur) {
			breaks++
			continue
		}
		volOK, err := biblio.Volume.AppropriatelyConsecutive(prev, cur)
		if err != nil {
			slog.Warn("Could not check if volume values constitute a break",
				"previous", prev.Volume, "current", cur.Volume, "err", err)
			breaks++
			continue
		}
		if volOK {
			breaks++
		}
	}
	return float64(breaks) / float64(pairs)
}

// NegativeBreakRatio is the proportion of adjacent pairs whose field value
// goes backwards.
func NegativeBreakRatio(records []biblio.IssueRecord, f biblio.Field) float64 {
	pairs := len(records) - 1
	if pairs < 1 {
		return 0
	}
	negative := 0
	for i := 1; i <= pairs; i++ {
		prev := f.PreviousValue(records[i-1])
		cur := f.CurrentValue(records[i])
		if prev == "" || cur == "" {
			return 1
		}
		dec, err := f.Decreasing(prev, cur)
		if err != nil {
			slog.Warn("Could not check if values constitute a negative break",
				"field", f, "previous", prev, "current", cur, "err", err)
			negative++
			continue
		}
		if dec {
			negative++
		}
	}
	return float64(negative) / float64(pairs)
}

// RedundancyRatio is the proportion of values repeating an earlier value that
// is not the immediately preceding one.
func RedundancyRatio(records []biblio.IssueRecord, f biblio.Field) float64 {
	if len(records) < 2 {
		return 0
	}
	seen := make(map[string]struct{}, len(records))
	redundant := 0
	last := ""
	for _, r := range records {
		if !f.HasValue(r) {
			return 1
		}
		v := f.Value(r)
		if _, dup := seen[v]; dup && v != last {
			redundant++
		}
		seen[v] = struct{}{}
		last = v
	}
	return float64(redundant) / float64(len(records))
}

// GapFrequencyDiscount penalises orderings split into many ranges.
func GapFrequencyDiscount(totalRecords, numRanges int) float64 {
	if totalRecords == 0 {
		return 0
	}
	return float64(numRanges-1) / float64(totalRecords)
}
