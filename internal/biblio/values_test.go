package biblio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPublicationYear(t *testing.T) {
	restore := SetClock(func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) })
	defer restore()

	tests := []struct {
		year     int
		expected bool
	}{
		{1599, false},
		{1600, true},
		{1987, true},
		{2024, true},
		{2025, false},
		{0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsPublicationYear(tt.year), "year %d", tt.year)
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		input string
		start string
		end   string
	}{
		{"1999-2001", "1999", "2001"},
		{" 3 - 4 ", "3", "4"},
		{"2001", "2001", "2001"},
		{"2001-1999", "2001-1999", "2001-1999"},
		{"Suppl. A-B", "Suppl. A-B", "Suppl. A-B"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end := SplitRange(tt.input)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestRangeIncludes(t *testing.T) {
	assert.True(t, RangeIncludes("1999-2001", "2000"))
	assert.True(t, RangeIncludes("1999-2001", "1999"))
	assert.False(t, RangeIncludes("1999-2001", "2002"))
	assert.False(t, RangeIncludes("1999-2001", "abc"))
	assert.True(t, RangeIncludes("Suppl", "suppl"))
}

func TestChangeOfFormats(t *testing.T) {
	assert.True(t, ChangeOfFormats("12", "XII"))
	assert.True(t, ChangeOfFormats("s1", "2"))
	assert.False(t, ChangeOfFormats("1", "2"))
	assert.False(t, ChangeOfFormats("s1", "s2"))
}

func TestNormaliseIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"vol. iv", "vol. 0004"},
		{"12", "0012"},
		{"Series 2, No. 15", "Series 0002, No. 0015"},
		{"IIII", "IIII"},
		{"12345", "12345"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormaliseIdentifier(tt.input))
		})
	}
}

func TestIsVolumeValid(t *testing.T) {
	assert.True(t, IsVolumeValid("1"))
	assert.True(t, IsVolumeValid("Suppl"))
	assert.False(t, IsVolumeValid(""))
	assert.False(t, IsVolumeValid(" - "))
	assert.False(t, IsVolumeValid("0"))
}

func TestVolumesIncreasing(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"numeric step", "1", "2", true},
		{"numeric equal", "3", "3", true},
		{"numeric drop", "5", "4", false},
		{"shared prefix", "s1-12", "s1-13", true},
		{"different prefix", "s1-12", "s2-13", false},
		{"roman numerals", "iv", "v", true},
		{"missing value", "", "2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VolumesIncreasing(tt.a, tt.b))
		})
	}
}

func TestVolumesConsecutive(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"numeric", "1", "2", true},
		{"numeric skip", "1", "3", false},
		{"letters", "a", "b", true},
		{"final number", "Part 9", "Part 10", true},
		{"final number with suffix", "9a", "10a", true},
		{"roman", "ix", "x", true},
		{"unrelated", "Suppl", "Index", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VolumesConsecutive(tt.a, tt.b))
		})
	}
}

func TestYearRanges(t *testing.T) {
	seq, err := YearRangesSequenced("2000-2002", "2001")
	require.NoError(t, err)
	assert.True(t, seq, "later start is sequenced")

	seq, err = YearRangesSequenced("2001", "2000-2002")
	require.NoError(t, err)
	assert.True(t, seq, "start inside the second range is sequenced")

	seq, err = YearRangesSequenced("2003", "2001")
	require.NoError(t, err)
	assert.False(t, seq)

	cons, err := YearRangesConsecutive("2000-2001", "2002")
	require.NoError(t, err)
	assert.True(t, cons)

	cons, err = YearRangesConsecutive("2000-2001", "2003")
	require.NoError(t, err)
	assert.False(t, cons)

	_, err = YearRangesConsecutive("2000", "n.d.")
	assert.True(t, errors.Is(err, ErrNotNumeric))
}
