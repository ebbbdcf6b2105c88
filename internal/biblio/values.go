package biblio

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNotNumeric is returned when a value expected to be an integer is not.
var ErrNotNumeric = errors.New("value is not numeric")

const (
	// MinPublicationYear is the earliest year accepted as a publication date.
	MinPublicationYear = 1600
	// DefaultMaxYearGap is the largest year step that does not open a new range.
	DefaultMaxYearGap = 1
)

var (
	numericRangePattern  = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\d+)\s*$`)
	finalNumericPattern  = regexp.MustCompile(`^(.*?)(\d+)(\D*)$`)
	identifierDelimiters = regexp.MustCompile(`[\s.,\-:;"'/?()\[\]{}<>!#]+`)
	digitRun             = regexp.MustCompile(`\d+`)
)

var clock = time.Now

// SetClock replaces the clock used for the current year and returns a
// function restoring the previous one.
func SetClock(now func() time.Time) func() {
	prev := clock
	clock = now
	return func() { clock = prev }
}

// ThisYear returns the current calendar year.
func ThisYear() int {
	return clock().Year()
}

// IsPublicationYear reports whether y is a plausible publication year.
func IsPublicationYear(y int) bool {
	return y >= MinPublicationYear && y <= ThisYear()
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return n, nil
}

func isInteger(s string) bool {
	_, err := parseInt(s)
	return err == nil
}

// SplitRange splits an ascending numeric range such as "1999-2001" into its
// endpoints. Anything else is returned as both endpoints.
func SplitRange(s string) (start, end string) {
	s = strings.TrimSpace(s)
	if start, end, ok := parseRange(s); ok {
		return start, end
	}
	return s, s
}

// IsRange reports whether s is an ascending numeric range.
func IsRange(s string) bool {
	_, _, ok := parseRange(strings.TrimSpace(s))
	return ok
}

func parseRange(s string) (string, string, bool) {
	m := numericRangePattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	first, errFirst := strconv.Atoi(m[1])
	last, errLast := strconv.Atoi(m[2])
	if errFirst != nil || errLast != nil || first > last {
		return "", "", false
	}
	return m[1], m[2], true
}

// RangeIncludes reports whether value falls inside rangeStr. Non-range
// strings match by case-insensitive equality.
func RangeIncludes(rangeStr, value string) bool {
	if !IsRange(rangeStr) {
		return strings.EqualFold(strings.TrimSpace(rangeStr), strings.TrimSpace(value))
	}
	start, end := SplitRange(rangeStr)
	s, _ := parseInt(start)
	e, _ := parseInt(end)
	v, err := parseInt(value)
	if err != nil {
		return false
	}
	return v >= s && v <= e
}

// RangesEqual reports whether two range strings denote the same endpoints.
func RangesEqual(a, b string) bool {
	as, ae := SplitRange(a)
	bs, be := SplitRange(b)
	return as == bs && ae == be
}

// ChangeOfFormats reports whether exactly one of the values is a plain integer.
func ChangeOfFormats(a, b string) bool {
	return isInteger(a) != isInteger(b)
}

// NormaliseIdentifier converts Roman numeral tokens to Arabic numbers and
// zero-pads digit runs to four places, so "vol. iv" and "vol. 4" compare equal.
func NormaliseIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	var sb strings.Builder
	last := 0
	for _, loc := range identifierDelimiters.FindAllStringIndex(s, -1) {
		sb.WriteString(translateRoman(s[last:loc[0]]))
		sb.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(translateRoman(s[last:]))

	return digitRun.ReplaceAllStringFunc(sb.String(), func(d string) string {
		if len(d) >= 4 {
			return d
		}
		return strings.Repeat("0", 4-len(d)) + d
	})
}

func translateRoman(tok string) string {
	if n, ok := parseRoman(strings.ToUpper(tok)); ok {
		return strconv.Itoa(n)
	}
	return tok
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// parseRoman accepts only normalised upper-case numerals such as "XIV".
func parseRoman(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, rest := 0, s
	for _, r := range romanNumerals {
		for strings.HasPrefix(rest, r.symbol) {
			n += r.value
			rest = rest[len(r.symbol):]
		}
	}
	if rest != "" || n == 0 || toRoman(n) != s {
		return 0, false
	}
	return n, true
}

// IsVolumeValid reports whether v can identify a volume: non-empty, not a
// bare hyphen and not zero.
func IsVolumeValid(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || v == "-" {
		return false
	}
	if n, err := parseInt(v); err == nil {
		return n != 0
	}
	return true
}

func volumesValid(a, b string) bool {
	return IsVolumeValid(a) || IsVolumeValid(b)
}

// VolumesIncreasing reports whether b follows or equals a. String volumes
// must share the text around their final number.
func VolumesIncreasing(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	pa, na, sa, okA := finalNumber(NormaliseIdentifier(a))
	pb, nb, sb, okB := finalNumber(NormaliseIdentifier(b))
	if !okA || !okB {
		return false
	}
	return pa == pb && sa == sb && nb >= na
}

// VolumesConsecutive reports whether b is exactly one step after a.
func VolumesConsecutive(a, b string) bool {
	if x, err := parseInt(a); err == nil {
		if y, err := parseInt(b); err == nil {
			return y == x+1
		}
	}
	if alphabeticallyConsecutive(a, b) {
		return true
	}
	if finalNumbersConsecutive(a, b) {
		return true
	}
	return finalNumbersConsecutive(NormaliseIdentifier(a), NormaliseIdentifier(b))
}

func alphabeticallyConsecutive(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if len(a) != 1 || len(b) != 1 {
		return false
	}
	ca, cb := a[0], b[0]
	isLetter := func(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
	return isLetter(ca) && isLetter(cb) && cb == ca+1
}

func finalNumbersConsecutive(a, b string) bool {
	pa, na, sa, okA := finalNumber(a)
	pb, nb, sb, okB := finalNumber(b)
	return okA && okB && pa == pb && sa == sb && nb == na+1
}

func finalNumber(s string) (prefix string, n int, suffix string, ok bool) {
	m := finalNumericPattern.FindStringSubmatch(s)
	if m == nil {
		return "", 0, "", false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], n, m[3], true
}

// YearsIncreasing reports whether year b is not before year a.
func YearsIncreasing(a, b string) (bool, error) {
	x, err := parseInt(a)
	if err != nil {
		return false, err
	}
	y, err := parseInt(b)
	if err != nil {
		return false, err
	}
	return y >= x, nil
}

// YearsConsecutive reports whether year b immediately follows year a.
func YearsConsecutive(a, b string) (bool, error) {
	x, err := parseInt(a)
	if err != nil {
		return false, err
	}
	y, err := parseInt(b)
	if err != nil {
		return false, err
	}
	return y == x+1, nil
}

// YearRangesSequenced holds when the second range starts no earlier than the
// first, or the second range contains the first range's start.
func YearRangesSequenced(first, second string) (bool, error) {
	s1, _ := SplitRange(first)
	s2, _ := SplitRange(second)
	inc, err := YearsIncreasing(s1, s2)
	if err != nil {
		return false, err
	}
	return inc || RangeIncludes(second, s1), nil
}

// YearRangesConsecutive additionally requires no more than one year between
// the end of the first range and the start of the second.
func YearRangesConsecutive(first, second string) (bool, error) {
	seq, err := YearRangesSequenced(first, second)
	if err != nil {
		return false, err
	}
	_, e1 := SplitRange(first)
	s2, _ := SplitRange(second)
	end, err := parseInt(e1)
	if err != nil {
		return false, err
	}
	start, err := parseInt(s2)
	if err != nil {
		return false, err
	}
	return seq && start-end <= 1, nil
}
