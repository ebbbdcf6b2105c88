package scorer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
	"github.com/lehigh-university-libraries/kbart/internal/biblio/compare"
)

func record(volume, year string) biblio.IssueRecord {
	return biblio.IssueRecord{
		Name:             "Vol " + volume,
		PublicationTitle: "Journal of Tests",
		Volume:           volume,
		Year:             year,
	}
}

func measure(records []biblio.IssueRecord) Score {
	return Measure(records, biblio.Segment(records, biblio.DefaultMaxYearGap))
}

func TestMonotonicVolumesScorePerfectly(t *testing.T) {
	var records []biblio.IssueRecord
	for i := 1; i <= 10; i++ {
		records = append(records, record(fmt.Sprint(i), fmt.Sprint(1999+i)))
	}

	assert.Zero(t, BreakRatio(records, biblio.Volume))
	assert.Zero(t, NegativeBreakRatio(records, biblio.Volume))
	assert.Zero(t, RedundancyRatio(records, biblio.Volume))

	s := measure(records)
	assert.Equal(t, 1.0, s.VolumeRange)
	assert.Equal(t, 1.0, s.VolumeList)
	assert.Equal(t, 1.0, s.YearRange)
	assert.Equal(t, 1.0, s.YearList)
	assert.Equal(t, 2.0, s.Composite)
	assert.True(t, s.VolumeSatisfactory())
	assert.False(t, s.MissingVolumes)
}

func TestPreferVolumeWithMessyYears(t *testing.T) {
	c := compare.New(compare.DefaultOptions(), nil)
	records := []biblio.IssueRecord{
		record("1", "2001"),
		record("2", "2000"),
		record("3", "2001"),
		record("4", "2000"),
	}

	volOrdered := biblio.SortVolumeDate(records, c)
	yearOrdered := biblio.SortDateFirst(records, c)
	volScore := measure(volOrdered)
	yearScore := measure(yearOrdered)

	assert.Equal(t, 1.0, volScore.VolumeRange)
	assert.Equal(t, 1.0, volScore.VolumeList)
	assert.InDelta(t, 1.0/18, volScore.YearRange, 1e-9)
	assert.InDelta(t, 1.0/18, volScore.YearList, 1e-9)

	assert.Zero(t, yearScore.VolumeRange)
	assert.Equal(t, 1.0, yearScore.YearRange)
	assert.Equal(t, 1.0, yearScore.YearList)

	assert.True(t, PreferVolume(volScore, yearScore))
}

func TestPreferVolume(t *testing.T) {
	tests := []struct {
		name     string
		vol      Score
		year     Score
		expected bool
	}{
		{
			name:     "year ordering gains more than volumes lose",
			vol:      NewScore(0.5, 0.2, 0.5, 0.2),
			year:     NewScore(0.4, 1, 0.4, 1),
			expected: false,
		},
		{
			name:     "equal gain and loss keeps volumes",
			vol:      NewScore(1, 0.5, 1, 0.5),
			year:     NewScore(0.5, 1, 0.5, 1),
			expected: true,
		},
		{
			name:     "all zero with volumes present",
			vol:      NewScore(0, 0, 0, 0),
			year:     NewScore(0, 0, 0, 0),
			expected: true,
		},
		{
			name:     "all zero with missing volumes keeps volumes",
			vol:      Score{MissingVolumes: true},
			year:     Score{MissingVolumes: true},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PreferVolume(tt.vol, tt.year))
		})
	}
}

func TestMissingValuesForceWorstCase(t *testing.T) {
	records := []biblio.IssueRecord{
		record("1", "2000"),
		record("", ""),
		record("3", "2002"),
	}

	assert.Equal(t, 1.0, BreakRatio(records, biblio.Volume))
	assert.Equal(t, 1.0, NegativeBreakRatio(records, biblio.Volume))
	assert.Equal(t, 1.0, RedundancyRatio(records, biblio.Volume))
	assert.Equal(t, 1.0, BreakRatio(records, biblio.Year))
	assert.Equal(t, 1.0, UniqueYearBreakRatio(records))

	s := measure(records)
	assert.True(t, s.MissingVolumes)
	assert.True(t, s.MissingYears)
	assert.Zero(t, s.VolumeList)
}

func TestUnparseableYearsForceWorstCase(t *testing.T) {
	records := []biblio.IssueRecord{
		record("1", "n.d."),
		record("2", "n.d."),
		record("3", "unknown"),
	}

	assert.Equal(t, 1.0, BreakRatio(records, biblio.Year))
	assert.Equal(t, 1.0, NegativeBreakRatio(records, biblio.Year))
	assert.Equal(t, 1.0, UniqueYearBreakRatio(records))
	assert.Zero(t, ListScore(records, biblio.Year))

	ranges := biblio.Segment(records, biblio.DefaultMaxYearGap)
	assert.Len(t, ranges, 1)
	assert.Zero(t, RangeScore(ranges, biblio.Year))

	s := measure(records)
	assert.Zero(t, s.YearRange)
	assert.Zero(t, s.YearList)
	assert.False(t, s.MissingYears)
}

func TestRedundancyRatio(t *testing.T) {
	tests := []struct {
		name     string
		volumes  []string
		expected float64
	}{
		{"distinct", []string{"1", "2", "3"}, 0},
		{"adjacent repeat is tolerated", []string{"1", "1", "2"}, 0},
		{"non-adjacent repeat", []string{"1", "2", "1"}, 1.0 / 3},
		{"single value", []string{"1"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []biblio.IssueRecord
			for _, v := range tt.volumes {
				records = append(records, record(v, "2000"))
			}
			assert.InDelta(t, tt.expected, RedundancyRatio(records, biblio.Volume), 1e-9)
		})
	}
}

func TestNegativeBreakIgnoresFormatChange(t *testing.T) {
	records := []biblio.IssueRecord{record("5", "2000"), record("Suppl", "2000")}
	assert.Zero(t, NegativeBreakRatio(records, biblio.Volume))

	records = []biblio.IssueRecord{record("5", "2000"), record("4", "2001")}
	assert.Equal(t, 1.0, NegativeBreakRatio(records, biblio.Volume))
}

func TestUniqueYearBreakRatio(t *testing.T) {
	// Volumes continue across the year gap, so the gap is the year's fault.
	records := []biblio.IssueRecord{record("1", "2000"), record("2", "2003")}
	assert.Equal(t, 1.0, UniqueYearBreakRatio(records))

	// Volumes break at the same point, so the year is not blamed.
	records = []biblio.IssueRecord{record("1", "2000"), record("7", "2003")}
	assert.Zero(t, UniqueYearBreakRatio(records))
}

func TestGapFrequencyDiscount(t *testing.T) {
	assert.InDelta(t, 0.2, GapFrequencyDiscount(10, 3), 1e-9)
	assert.Zero(t, GapFrequencyDiscount(0, 1))
	assert.Zero(t, GapFrequencyDiscount(5, 1))
}

func TestRangeScoreDiscountsGaps(t *testing.T) {
	records := []biblio.IssueRecord{
		record("1", "2000"),
		record("2", "2001"),
		record("3", "2005"),
		record("4", "2006"),
	}
	ranges := biblio.Segment(records, biblio.DefaultMaxYearGap)

	assert.Len(t, ranges, 2)
	assert.InDelta(t, 0.75, RangeScore(ranges, biblio.Volume), 1e-9)
	assert.InDelta(t, 0.75, RangeScore(ranges, biblio.Year), 1e-9)
	assert.Zero(t, RangeScore(nil, biblio.Volume))
}

func TestVolumeSatisfactory(t *testing.T) {
	assert.True(t, NewScore(0.96, 0.1, 0.97, 0.1).VolumeSatisfactory())
	assert.False(t, NewScore(0.9, 1, 0.99, 1).VolumeSatisfactory())
	assert.True(t, NewScore(1, 1, 1, 1).VolumeSatisfactory())
}
