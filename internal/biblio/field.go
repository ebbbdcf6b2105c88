package biblio

import (
	"log/slog"
	"strings"
)

// Field selects the record value an ordering is judged on.
type Field int

const (
	Volume Field = iota
	Year
)

func (f Field) String() string {
	switch f {
	case Volume:
		return "volume"
	case Year:
		return "year"
	}
	return "unknown"
}

// Other returns the alternate field.
func (f Field) Other() Field {
	if f == Volume {
		return Year
	}
	return Volume
}

// Value returns the raw declared value of the field.
func (f Field) Value(r IssueRecord) string {
	if f == Volume {
		return r.Volume
	}
	return r.Year
}

// HasValue reports whether the record declares the field.
func (f Field) HasValue(r IssueRecord) bool {
	return strings.TrimSpace(f.Value(r)) != ""
}

// PreviousValue is the value used when r is the earlier record of a pair.
func (f Field) PreviousValue(r IssueRecord) string {
	if f == Volume {
		return r.EndVolume()
	}
	return r.StartYear()
}

// CurrentValue is the value used when r is the later record of a pair.
func (f Field) CurrentValue(r IssueRecord) string {
	if f == Volume {
		return r.StartVolume()
	}
	return r.StartYear()
}

func (f Field) Increasing(a, b string) (bool, error) {
	if f == Volume {
		return VolumesIncreasing(a, b), nil
	}
	return YearsIncreasing(a, b)
}

func (f Field) Consecutive(a, b string) (bool, error) {
	if f == Volume {
		return VolumesConsecutive(a, b), nil
	}
	return YearsConsecutive(a, b)
}

// Decreasing reports a negative break between a and b. A volume pair that
// changes between numeric and non-numeric formats is never decreasing.
func (f Field) Decreasing(a, b string) (bool, error) {
	if f == Volume {
		if ChangeOfFormats(a, b) {
			slog.Debug("Ignoring change of volume formats", "previous", a, "current", b)
			return false, nil
		}
		return !VolumesIncreasing(a, b), nil
	}

	consecutive, err := YearsConsecutive(a, b)
	if err != nil {
		return false, err
	}
	increasing, err := YearsIncreasing(a, b)
	if err != nil {
		return false, err
	}
	return !consecutive && !increasing, nil
}

// AppropriatelyConsecutive reports whether b continues a without a gap.
func (f Field) AppropriatelyConsecutive(a, b IssueRecord) (bool, error) {
	if f == Year {
		return YearRangesConsecutive(a.Year, b.Year)
	}

	e1, s2 := a.EndVolume(), b.StartVolume()
	valid := volumesValid(e1, s2)
	if valid && (VolumesConsecutive(e1, s2) || e1 == s2) {
		return true, nil
	}
	if AreApparentlyEquivalent(a, b) {
		return true, nil
	}
	if !valid {
		return false, nil
	}
	return extendedVolume(a, b)
}

// AppropriatelySequenced reports whether b may follow a at all.
func (f Field) AppropriatelySequenced(a, b IssueRecord) (bool, error) {
	if f == Year {
		return YearRangesSequenced(a.Year, b.Year)
	}

	prev, cur := a.EndVolume(), b.StartVolume()
	if VolumesIncreasing(prev, cur) {
		return true, nil
	}
	if ChangeOfFormats(prev, cur) {
		slog.Debug("Ignoring change of volume formats", "previous", prev, "current", cur)
		return true, nil
	}
	return false, nil
}

// extendedVolume holds when a volume spans several records in successive years.
func extendedVolume(a, b IssueRecord) (bool, error) {
	if !RangesEqual(a.Volume, b.Volume) || !volumesValid(a.Volume, b.Volume) {
		return false, nil
	}
	return Year.AppropriatelySequenced(a, b)
}
