package biblio

import "strings"

// HaveSameIdentity compares ISSNs when both records have one, otherwise names.
func HaveSameIdentity(a, b IssueRecord) bool {
	if ai, bi := a.ISSN(), b.ISSN(); ai != "" && bi != "" {
		return ai == bi
	}
	return a.Name != "" && b.Name != "" && a.Name == b.Name
}

// HaveSameIndex compares years and normalised volumes.
func HaveSameIndex(a, b IssueRecord) bool {
	return a.Year == b.Year &&
		NormaliseIdentifier(a.Volume) == NormaliseIdentifier(b.Volume)
}

// AreApparentlyEquivalent reports whether two records look like duplicate
// copies of the same volume, as happens when a volume is republished on
// another platform.
func AreApparentlyEquivalent(a, b IssueRecord) bool {
	return HaveSameIdentity(a, b) && HaveSameIndex(a, b)
}

// AreFromSameTitle reports whether two records share every title-level
// identifier, the publication title and the publisher.
func AreFromSameTitle(a, b IssueRecord) bool {
	return a.PrintISSN == b.PrintISSN &&
		a.PrintISBN == b.PrintISBN &&
		a.EISSN == b.EISSN &&
		a.EISBN == b.EISBN &&
		a.ISSNL == b.ISSNL &&
		a.PublicationTitle == b.PublicationTitle &&
		a.Publisher == b.Publisher
}

// GroupByTitle partitions records into titles keyed by ISSN, or by
// publication title when no ISSN is present. Groups keep first-appearance
// order and records keep input order within a group.
func GroupByTitle(records []IssueRecord) [][]IssueRecord {
	index := make(map[string]int)
	var groups [][]IssueRecord
	for _, r := range records {
		key := r.ISSN()
		if key == "" {
			key = "title:" + strings.ToLower(strings.TrimSpace(r.PublicationTitle))
		}
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], r)
	}
	return groups
}

// SplitOnIdentifierChange cuts an identifier-ordered record list wherever
// consecutive records stop being from the same title.
func SplitOnIdentifierChange(records []IssueRecord) [][]IssueRecord {
	if len(records) == 0 {
		return nil
	}
	var titles [][]IssueRecord
	start := 0
	for i := 1; i < len(records); i++ {
		if !AreFromSameTitle(records[i-1], records[i]) {
			titles = append(titles, records[start:i])
			start = i
		}
	}
	return append(titles, records[start:])
}
