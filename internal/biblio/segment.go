package biblio

import "fmt"

// CoverageRange is a contiguous run of records considered one uninterrupted
// holding period. A year of 0 means unknown.
type CoverageRange struct {
	Records   []IssueRecord
	FirstYear int
	LastYear  int
}

func newCoverageRange(records []IssueRecord) CoverageRange {
	return CoverageRange{
		Records:   records,
		FirstYear: records[0].FirstYear(),
		LastYear:  records[len(records)-1].LastYear(),
	}
}

// First returns the earliest record of the range.
func (r CoverageRange) First() IssueRecord {
	return r.Records[0]
}

// Last returns the latest record of the range.
func (r CoverageRange) Last() IssueRecord {
	return r.Records[len(r.Records)-1]
}

func (r CoverageRange) String() string {
	return fmt.Sprintf("CoverageRange %s (years %d-%d, %d records)",
		r.First().PublicationTitle, r.FirstYear, r.LastYear, len(r.Records))
}

// Segment splits an ordered record list into coverage ranges wherever the
// first year jumps forward by more than maxGap, or either side of a pair has
// no usable year. A list with no usable year at all becomes a single range.
func Segment(records []IssueRecord, maxGap int) []CoverageRange {
	if len(records) == 0 {
		return nil
	}

	if !hasUsableYear(records) {
		return []CoverageRange{newCoverageRange(records)}
	}

	var ranges []CoverageRange
	start := 0
	currentEndYear := records[0].FirstYear()
	for i := 1; i < len(records); i++ {
		year := records[i].FirstYear()
		if currentEndYear == 0 || year == 0 || year-currentEndYear > maxGap {
			ranges = append(ranges, newCoverageRange(records[start:i]))
			start = i
		}
		currentEndYear = year
	}
	return append(ranges, newCoverageRange(records[start:]))
}

func hasUsableYear(records []IssueRecord) bool {
	for _, r := range records {
		if r.FirstYear() != 0 {
			return true
		}
	}
	return false
}
