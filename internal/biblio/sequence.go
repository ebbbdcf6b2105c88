package biblio

import (
	"cmp"
	"slices"

	"github.com/lehigh-university-libraries/kbart/internal/biblio/compare"
)

// SortDateFirst returns the records ordered by plausible first year, falling
// back to the tokenizing comparator on record labels.
func SortDateFirst(records []IssueRecord, c *compare.Comparator) []IssueRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b IssueRecord) int {
		return compareDateFirst(a, b, c)
	})
	return sorted
}

// SortVolumeDate returns the records ordered by integer start volume, falling
// back to date-first when the volumes are equal or not integers.
func SortVolumeDate(records []IssueRecord, c *compare.Comparator) []IssueRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b IssueRecord) int {
		return compareVolumeDate(a, b, c)
	})
	return sorted
}

// SortByIdentifiers returns the records ordered by ISSN, label, volume and
// year, which keeps the records of one title adjacent.
func SortByIdentifiers(records []IssueRecord, c *compare.Comparator) []IssueRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b IssueRecord) int {
		if res := c.Compare(a.ISSN(), b.ISSN()); res != 0 {
			return res
		}
		if res := c.Compare(a.Label(), b.Label()); res != 0 {
			return res
		}
		if res := c.Compare(a.Volume, b.Volume); res != 0 {
			return res
		}
		return compareDateFirst(a, b, c)
	})
	return sorted
}

func compareDateFirst(a, b IssueRecord, c *compare.Comparator) int {
	ya, yb := a.FirstYear(), b.FirstYear()
	if ya != 0 && yb != 0 && ya != yb {
		return cmp.Compare(ya, yb)
	}
	return c.Compare(a.Label(), b.Label())
}

func compareVolumeDate(a, b IssueRecord, c *compare.Comparator) int {
	va, errA := parseInt(a.StartVolume())
	vb, errB := parseInt(b.StartVolume())
	if errA == nil && errB == nil && va != vb {
		return cmp.Compare(va, vb)
	}
	return compareDateFirst(a, b, c)
}
