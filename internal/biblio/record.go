// Package biblio models the per-volume records of a serial title and the
// chronological reasoning applied to them: ordering, gap detection and the
// field predicates used when scoring an ordering.
package biblio

import "strings"

// IssueRecord is one published unit (typically a volume) of a title as
// supplied by a metadata store. Absent values are empty strings.
type IssueRecord struct {
	Name             string            `json:"name" parquet:"name"`
	PublicationTitle string            `json:"publication_title" parquet:"publication_title"`
	Publisher        string            `json:"publisher" parquet:"publisher"`
	PublicationType  string            `json:"publication_type" parquet:"publication_type"`
	Volume           string            `json:"volume" parquet:"volume"`
	Year             string            `json:"year" parquet:"year"`
	Issue            string            `json:"issue" parquet:"issue"`
	PrintISSN        string            `json:"print_issn" parquet:"print_issn"`
	EISSN            string            `json:"eissn" parquet:"eissn"`
	ISSNL            string            `json:"issnl" parquet:"issnl"`
	PrintISBN        string            `json:"print_isbn" parquet:"print_isbn"`
	EISBN            string            `json:"eisbn" parquet:"eisbn"`
	TitleID          string            `json:"title_id" parquet:"title_id"`
	CoverageDepth    string            `json:"coverage_depth" parquet:"coverage_depth"`
	Params           map[string]string `json:"params,omitempty" parquet:"params"`
}

// StartYear returns the first year of the declared year or year range.
func (r IssueRecord) StartYear() string {
	start, _ := SplitRange(r.Year)
	return start
}

// EndYear returns the last year of the declared year or year range.
func (r IssueRecord) EndYear() string {
	_, end := SplitRange(r.Year)
	return end
}

// FirstYear returns the start year as an int, or 0 when it is absent,
// unparseable or implausible.
func (r IssueRecord) FirstYear() int {
	return plausibleYear(r.StartYear())
}

// LastYear returns the end year as an int, or 0 when it is absent,
// unparseable or implausible.
func (r IssueRecord) LastYear() int {
	return plausibleYear(r.EndYear())
}

func plausibleYear(s string) int {
	y, err := parseInt(s)
	if err != nil || !IsPublicationYear(y) {
		return 0
	}
	return y
}

// StartVolume returns the first volume of a volume range, or the volume.
func (r IssueRecord) StartVolume() string {
	start, _ := SplitRange(r.Volume)
	return start
}

// EndVolume returns the last volume of a volume range, or the volume.
func (r IssueRecord) EndVolume() string {
	_, end := SplitRange(r.Volume)
	return end
}

// ISSN returns the print ISSN, falling back to the eISSN and then the
// linking ISSN.
func (r IssueRecord) ISSN() string {
	for _, s := range []string{r.PrintISSN, r.EISSN, r.ISSNL} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Label returns the record name, or the publication title when unnamed.
func (r IssueRecord) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.TrimSpace(r.PublicationTitle + " " + r.Volume)
}
