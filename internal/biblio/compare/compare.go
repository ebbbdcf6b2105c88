// Package compare orders bibliographic labels such as "Volume 9" and
// "Volume 10" by the magnitude of their numeric runs rather than lexically.
package compare

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var tokenPattern = regexp.MustCompile(`\d+|\D+`)

// Options controls how text runs are compared.
type Options struct {
	CaseSensitive bool
	Unaccented    bool
}

// DefaultOptions compares case-insensitively with accents stripped.
func DefaultOptions() Options {
	return Options{Unaccented: true}
}

// Comparator is a tokenizing alphanumeric comparator.
type Comparator struct {
	opts  Options
	cache *Cache
}

// New creates a comparator. A nil cache gets a private one.
func New(opts Options, cache *Cache) *Comparator {
	if cache == nil {
		cache = NewCache()
	}
	return &Comparator{
		opts:  opts,
		cache: cache,
	}
}

// Tokenize splits s into alternating runs of digits and non-digits.
func Tokenize(s string) []string {
	return tokenPattern.FindAllString(s, -1)
}

// Compare returns -1, 0 or 1.
func (c *Comparator) Compare(a, b string) int {
	if a == "" || b == "" {
		return c.plain(a, b)
	}

	aNum, bNum := startsWithDigit(a), startsWithDigit(b)
	if aNum != bNum {
		if aNum {
			return -1
		}
		return 1
	}

	ea := c.cache.lookup(a, c.opts)
	eb := c.cache.lookup(b, c.opts)
	ta, tb := ea.tokens, eb.tokens
	if len(ta) == 0 || len(tb) == 0 {
		return c.plain(a, b)
	}
	if isDigits(ta[0]) != isDigits(tb[0]) {
		slog.Warn("Tokenizations start with different run types", "a", a, "b", b)
		return c.plain(a, b)
	}

	n := min(len(ta), len(tb))
	for i := 0; i < n; i++ {
		var res int
		if isDigits(ta[i]) && isDigits(tb[i]) {
			res = compareNumeric(ta[i], tb[i])
		} else {
			res = compareText(ta, tb, i)
		}
		if res != 0 {
			return res
		}
	}

	return c.plain(a, b)
}

// Less reports whether a sorts before b.
func (c *Comparator) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}

func (c *Comparator) plain(a, b string) int {
	if !c.opts.CaseSensitive || c.opts.Unaccented {
		a = c.cache.lookup(a, c.opts).normalised
		b = c.cache.lookup(b, c.opts).normalised
	}
	return strings.Compare(a, b)
}

func compareNumeric(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		slog.Warn("Could not compare numeric runs by magnitude", "a", a, "b", b)
		return strings.Compare(a, b)
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}

// compareText compares the i'th text runs. A run that is the other run minus
// a trailing space, and is not the final run of its string, sorts first.
func compareText(ta, tb []string, i int) int {
	a, b := ta[i], tb[i]
	if len(a) != len(b) {
		if len(a) < len(b) && b == a+" " && len(ta) > i+1 {
			return -1
		}
		if len(b) < len(a) && a == b+" " && len(tb) > i+1 {
			return 1
		}
	}
	return strings.Compare(a, b)
}

func normalise(s string, opts Options) string {
	if opts.Unaccented {
		s = stripAccents(s)
	}
	if !opts.CaseSensitive {
		s = cases.Fold().String(s)
	}
	return s
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isDigits(s string) bool {
	return startsWithDigit(s)
}
