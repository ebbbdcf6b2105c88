// Package kbart builds KBART title rows from issue records and renders them
// with coverage notes for export.
package kbart

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/kbart/internal/biblio/compare"
)

var (
	// ErrUnknownField is returned for a column label that names no KBART field.
	ErrUnknownField = errors.New("unknown KBART field")
	// ErrNoIdentifierField is returned for a field list that cannot identify a title.
	ErrNoIdentifierField = errors.New("no identifying field")
)

// Field is a KBART column. The declaration order is the export order.
type Field int

const (
	PublicationTitle Field = iota
	PrintIdentifier
	OnlineIdentifier
	DateFirstIssueOnline
	NumFirstVolOnline
	NumFirstIssueOnline
	DateLastIssueOnline
	NumLastVolOnline
	NumLastIssueOnline
	TitleURL
	FirstAuthor
	TitleID
	EmbargoInfo
	CoverageDepth
	CoverageNotes
	PublisherName

	numFields
)

var fieldLabels = [numFields]string{
	"publication_title",
	"print_identifier",
	"online_identifier",
	"date_first_issue_online",
	"num_first_vol_online",
	"num_first_issue_online",
	"date_last_issue_online",
	"num_last_vol_online",
	"num_last_issue_online",
	"title_url",
	"first_author",
	"title_id",
	"embargo_info",
	"coverage_depth",
	"coverage_notes",
	"publisher_name",
}

var (
	// IDFields identify a title; every export must include one of them.
	IDFields = []Field{PublicationTitle, PrintIdentifier, OnlineIdentifier}
	// LastFields describe where coverage ends and are left blank for coverage
	// that continues to the present.
	LastFields = []Field{DateLastIssueOnline, NumLastVolOnline, NumLastIssueOnline}
)

// Label returns the KBART column label.
func (f Field) Label() string {
	if f < 0 || f >= numFields {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string {
	return f.Label()
}

// AllFields returns every field in KBART order.
func AllFields() []Field {
	fields := make([]Field, numFields)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// FieldByLabel looks a field up by its label, ignoring case.
func FieldByLabel(label string) (Field, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, l := range fieldLabels {
		if l == label {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, label)
}

// Labels returns the labels of the fields in order.
func Labels(fields []Field) []string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label()
	}
	return labels
}

// ParseFields parses a comma or newline separated list of field labels. The
// list must contain at least one identifying field.
func ParseFields(s string) ([]Field, error) {
	var fields []Field
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := FieldByLabel(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields in %q", ErrUnknownField, s)
	}
	if !slices.ContainsFunc(fields, func(f Field) bool { return slices.Contains(IDFields, f) }) {
		return nil, fmt.Errorf("%w: include one of %s", ErrNoIdentifierField,
			strings.Join(Labels(IDFields), ", "))
	}
	return fields, nil
}

// Overrides sets field values when constructing a Title.
type Overrides map[Field]string

// Title is one KBART row. Every field is always present and empty by default.
// Titles are values; With returns a modified copy.
type Title struct {
	values [numFields]string
}

// NewTitle builds a title from the given field values.
func NewTitle(o Overrides) Title {
	return Title{}.With(o)
}

// With returns a copy of t with the overrides applied. Tabs in values are
// replaced with spaces so they cannot break tab-separated output.
func (t Title) With(o Overrides) Title {
	for f, v := range o {
		if f < 0 || f >= numFields {
			continue
		}
		t.values[f] = strings.ReplaceAll(v, "\t", " ")
	}
	return t
}

// Value returns the value of a field.
func (t Title) Value(f Field) string {
	if f < 0 || f >= numFields {
		return ""
	}
	return t.values[f]
}

// Has reports whether the field is non-empty.
func (t Title) Has(f Field) bool {
	return t.Value(f) != ""
}

// HasIdentifier reports whether any identifying field has a value.
func (t Title) HasIdentifier() bool {
	return slices.ContainsFunc(IDFields, t.Has)
}

// Values returns every field value in KBART order.
func (t Title) Values() []string {
	return slices.Clone(t.values[:])
}

// ValuesFor returns the values of the given fields in order.
func (t Title) ValuesFor(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = t.Value(f)
	}
	return out
}

// ResolverParams returns the OpenURL query identifying the title, preferring
// online identifiers and falling back to title and publisher.
func (t Title) ResolverParams() string {
	onlineID := t.Value(OnlineIdentifier)
	printID := t.Value(PrintIdentifier)
	switch {
	case IsISBN(onlineID):
		return "eisbn=" + onlineID
	case IsISSN(onlineID):
		return "eissn=" + onlineID
	case IsISBN(printID):
		return "isbn=" + printID
	case IsISSN(printID):
		return "issn=" + printID
	}
	return "title=" + url.QueryEscape(t.Value(PublicationTitle)) +
		"&pub=" + url.QueryEscape(t.Value(PublisherName))
}

func (t Title) String() string {
	return fmt.Sprintf("Title {%s [%s] (%s-%s)}",
		t.Value(PublicationTitle), t.Value(PrintIdentifier),
		t.Value(DateFirstIssueOnline), t.Value(DateLastIssueOnline))
}

// SortTitles orders titles by publication title, then first and last date.
func SortTitles(titles []Title, c *compare.Comparator) {
	slices.SortStableFunc(titles, func(a, b Title) int {
		if res := c.Compare(a.Value(PublicationTitle), b.Value(PublicationTitle)); res != 0 {
			return res
		}
		if res := compareDates(a.Value(DateFirstIssueOnline), b.Value(DateFirstIssueOnline), c); res != 0 {
			return res
		}
		return compareDates(a.Value(DateLastIssueOnline), b.Value(DateLastIssueOnline), c)
	})
}

func compareDates(a, b string, c *compare.Comparator) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(x, y)
	}
	return c.Compare(a, b)
}

var (
	issnPattern = regexp.MustCompile(`^\d{4}-?\d{3}[\dXx]$`)
	isbnChars   = regexp.MustCompile(`[\s-]`)
	isbn10      = regexp.MustCompile(`^\d{9}[\dXx]$`)
	isbn13      = regexp.MustCompile(`^97[89]\d{10}$`)
)

// IsISSN reports whether s is shaped like an ISSN. Check digits are not verified.
func IsISSN(s string) bool {
	return issnPattern.MatchString(strings.TrimSpace(s))
}

// IsISBN reports whether s is shaped like a 10 or 13 digit ISBN.
func IsISBN(s string) bool {
	s = isbnChars.ReplaceAllString(s, "")
	return isbn10.MatchString(s) || isbn13.MatchString(s)
}

// NormaliseISSN returns the ISSN in hyphenated upper-case form, or "" when
// s is not shaped like an ISSN.
func NormaliseISSN(s string) string {
	s = strings.TrimSpace(s)
	if !IsISSN(s) {
		return ""
	}
	s = strings.ToUpper(strings.ReplaceAll(s, "-", ""))
	return s[:4] + "-" + s[4:]
}

// NormaliseISBN returns the ISBN without separators, or "" when s is not
// shaped like an ISBN.
func NormaliseISBN(s string) string {
	if !IsISBN(s) {
		return ""
	}
	return strings.ToUpper(isbnChars.ReplaceAllString(s, ""))
}
