package kbart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmalgamateFoldsSameTitle(t *testing.T) {
	style := mustStyle(t, "year")
	titles := []Title{
		coverage("2000", "1", "2001", "2"),
		coverage("2005", "5", "2006", "6"),
	}

	folded := Amalgamate(titles, style)

	require.Len(t, folded, 1)
	row := folded[0]
	assert.Equal(t, "2000", row.Value(DateFirstIssueOnline))
	assert.Equal(t, "1", row.Value(NumFirstVolOnline))
	assert.Equal(t, "2006", row.Value(DateLastIssueOnline))
	assert.Equal(t, "6", row.Value(NumLastVolOnline))
	assert.Equal(t, "2000-2001, 2005-2006", row.Value(CoverageNotes))
}

func TestAmalgamateSplitsOnTitleChange(t *testing.T) {
	style := mustStyle(t, "year")
	other := coverage("1990", "1", "1995", "6").With(Overrides{PrintIdentifier: "8765-4321"})
	titles := []Title{
		coverage("2000", "1", "2001", "2"),
		other,
		coverage("2005", "5", "", ""),
	}

	folded := Amalgamate(titles, style)

	require.Len(t, folded, 3)
	assert.Equal(t, "2000-2001", folded[0].Value(CoverageNotes))
	assert.Equal(t, "1990-1995", folded[1].Value(CoverageNotes))
	assert.Equal(t, "2005-", folded[2].Value(CoverageNotes))
	assert.Nil(t, Amalgamate(nil, style))
}

func TestAmalgamateKeepsOpenEnd(t *testing.T) {
	folded := Amalgamate([]Title{
		coverage("2000", "1", "2001", "2"),
		coverage("2003", "4", "", ""),
	}, mustStyle(t, "year_summary"))

	require.Len(t, folded, 1)
	assert.Empty(t, folded[0].Value(DateLastIssueOnline))
	assert.Equal(t, "2000-", folded[0].Value(CoverageNotes))
}

func TestAnnotate(t *testing.T) {
	titles := []Title{
		coverage("2000", "1", "2001", "2"),
		coverage("2005", "5", "2005", "5"),
	}

	annotated := Annotate(titles, mustStyle(t, "year_volume"))

	require.Len(t, annotated, 2)
	assert.Equal(t, "2000(1)-2001(2)", annotated[0].Value(CoverageNotes))
	assert.Equal(t, "2005(5)", annotated[1].Value(CoverageNotes))
	assert.Empty(t, titles[0].Value(CoverageNotes))
}
