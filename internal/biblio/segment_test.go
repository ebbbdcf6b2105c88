package biblio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearRecords(years ...string) []IssueRecord {
	records := make([]IssueRecord, len(years))
	for i, y := range years {
		records[i] = IssueRecord{
			Name:             "Journal of Tests " + y,
			PublicationTitle: "Journal of Tests",
			Year:             y,
		}
	}
	return records
}

func TestSegmentSplitsOnYearGaps(t *testing.T) {
	ranges := Segment(yearRecords("2000", "2001", "2005", "2006"), DefaultMaxYearGap)

	require.Len(t, ranges, 2)
	assert.Equal(t, 2000, ranges[0].FirstYear)
	assert.Equal(t, 2001, ranges[0].LastYear)
	assert.Equal(t, 2005, ranges[1].FirstYear)
	assert.Equal(t, 2006, ranges[1].LastYear)
	assert.Len(t, ranges[0].Records, 2)
	assert.Len(t, ranges[1].Records, 2)
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		years    []string
		maxGap   int
		expected [][2]int
	}{
		{
			name:     "contiguous years make one range",
			years:    []string{"1990", "1991", "1992"},
			maxGap:   1,
			expected: [][2]int{{1990, 1992}},
		},
		{
			name:     "repeated years stay together",
			years:    []string{"1990", "1990", "1991"},
			maxGap:   1,
			expected: [][2]int{{1990, 1991}},
		},
		{
			name:     "wider threshold tolerates a missing year",
			years:    []string{"1990", "1992", "1996"},
			maxGap:   2,
			expected: [][2]int{{1990, 1992}, {1996, 1996}},
		},
		{
			name:     "unusable year isolates its record",
			years:    []string{"1990", "", "1991"},
			maxGap:   1,
			expected: [][2]int{{1990, 1990}, {0, 0}, {1991, 1991}},
		},
		{
			name:     "implausible year counts as unusable",
			years:    []string{"1990", "1066", "1991"},
			maxGap:   1,
			expected: [][2]int{{1990, 1990}, {0, 0}, {1991, 1991}},
		},
		{
			name:     "year ranges extend the last year",
			years:    []string{"1990-1991", "1991-1992"},
			maxGap:   1,
			expected: [][2]int{{1990, 1992}},
		},
		{
			name:     "gaps are measured between first years",
			years:    []string{"1990-1991", "1992-1993"},
			maxGap:   1,
			expected: [][2]int{{1990, 1991}, {1992, 1993}},
		},
		{
			name:     "backwards step does not split",
			years:    []string{"1995", "1994", "1995"},
			maxGap:   1,
			expected: [][2]int{{1995, 1995}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := Segment(yearRecords(tt.years...), tt.maxGap)
			got := make([][2]int, len(ranges))
			for i, r := range ranges {
				got[i] = [2]int{r.FirstYear, r.LastYear}
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSegmentWithoutUsableYears(t *testing.T) {
	records := yearRecords("", "n.d.", "", "unknown")

	ranges := Segment(records, DefaultMaxYearGap)

	require.Len(t, ranges, 1)
	assert.Len(t, ranges[0].Records, len(records))
	assert.Equal(t, records[0], ranges[0].First())
	assert.Equal(t, records[3], ranges[0].Last())
	assert.Zero(t, ranges[0].FirstYear)
	assert.Zero(t, ranges[0].LastYear)
}

func TestSegmentEmpty(t *testing.T) {
	assert.Nil(t, Segment(nil, DefaultMaxYearGap))
}
