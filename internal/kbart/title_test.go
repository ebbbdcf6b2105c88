package kbart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/kbart/internal/biblio/compare"
)

func TestFieldLabels(t *testing.T) {
	fields := AllFields()
	require.Len(t, fields, 16)
	assert.Equal(t, "publication_title", fields[0].Label())
	assert.Equal(t, "publisher_name", fields[len(fields)-1].Label())

	f, err := FieldByLabel(" Coverage_Notes ")
	require.NoError(t, err)
	assert.Equal(t, CoverageNotes, f)

	_, err = FieldByLabel("volume")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Field
		err      error
	}{
		{
			name:     "comma separated",
			input:    "publication_title, print_identifier",
			expected: []Field{PublicationTitle, PrintIdentifier},
		},
		{
			name:     "newline separated",
			input:    "print_identifier\r\ncoverage_notes\n",
			expected: []Field{PrintIdentifier, CoverageNotes},
		},
		{
			name:  "unknown label",
			input: "publication_title,colour",
			err:   ErrUnknownField,
		},
		{
			name:  "no identifying field",
			input: "coverage_notes,publisher_name",
			err:   ErrNoIdentifierField,
		},
		{
			name:  "empty",
			input: " , ",
			err:   ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ParseFields(tt.input)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, fields)
		})
	}
}

func TestTitleIsImmutable(t *testing.T) {
	base := NewTitle(Overrides{PublicationTitle: "Journal\tof Tests"})
	changed := base.With(Overrides{PublisherName: "Press"})

	assert.Equal(t, "Journal of Tests", base.Value(PublicationTitle))
	assert.Empty(t, base.Value(PublisherName))
	assert.Equal(t, "Press", changed.Value(PublisherName))
	assert.Len(t, base.Values(), 16)
	assert.Equal(t, []string{"Press", "Journal of Tests"},
		changed.ValuesFor([]Field{PublisherName, PublicationTitle}))
}

func TestResolverParams(t *testing.T) {
	tests := []struct {
		name     string
		title    Title
		expected string
	}{
		{
			name:     "online isbn first",
			title:    NewTitle(Overrides{OnlineIdentifier: "9780306406157", PrintIdentifier: "1234-5678"}),
			expected: "eisbn=9780306406157",
		},
		{
			name:     "online issn",
			title:    NewTitle(Overrides{OnlineIdentifier: "2049-3630", PrintIdentifier: "1234-5678"}),
			expected: "eissn=2049-3630",
		},
		{
			name:     "print issn",
			title:    NewTitle(Overrides{PrintIdentifier: "1234-5678"}),
			expected: "issn=1234-5678",
		},
		{
			name:     "title and publisher",
			title:    NewTitle(Overrides{PublicationTitle: "Notes & Queries", PublisherName: "Oxford UP"}),
			expected: "title=Notes+%26+Queries&pub=Oxford+UP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.title.ResolverParams())
		})
	}
}

func TestIdentifierNormalisation(t *testing.T) {
	assert.Equal(t, "1234-5678", NormaliseISSN("12345678"))
	assert.Equal(t, "1234-567X", NormaliseISSN("1234-567x"))
	assert.Empty(t, NormaliseISSN("n/a"))
	assert.Equal(t, "0306406152", NormaliseISBN("0-306-40615-2"))
	assert.Empty(t, NormaliseISBN("1234-5678"))
	assert.True(t, IsISBN("978 0 306 40615 7"))
}

func TestSortTitles(t *testing.T) {
	c := compare.New(compare.DefaultOptions(), nil)
	titles := []Title{
		NewTitle(Overrides{PublicationTitle: "Journal 10", DateFirstIssueOnline: "2000"}),
		NewTitle(Overrides{PublicationTitle: "Journal 9", DateFirstIssueOnline: "2005"}),
		NewTitle(Overrides{PublicationTitle: "Journal 9", DateFirstIssueOnline: "1999"}),
	}

	SortTitles(titles, c)

	assert.Equal(t, "1999", titles[0].Value(DateFirstIssueOnline))
	assert.Equal(t, "2005", titles[1].Value(DateFirstIssueOnline))
	assert.Equal(t, "Journal 10", titles[2].Value(PublicationTitle))
}
