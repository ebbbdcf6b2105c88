package kbart

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownStyle is returned when a coverage note style id is not recognised.
var ErrUnknownStyle = errors.New("unknown coverage note style")

// DefaultStyle is the style used when none is configured.
const DefaultStyle = "year"

// Endpoint is one end of a coverage range as it appears in a title row.
type Endpoint struct {
	Year   string
	Volume string
	Issue  string
}

func (e Endpoint) empty() bool {
	return e.Year == "" && e.Volume == "" && e.Issue == ""
}

// Start returns the first endpoint of the title's coverage.
func Start(t Title) Endpoint {
	return Endpoint{
		Year:   t.Value(DateFirstIssueOnline),
		Volume: t.Value(NumFirstVolOnline),
		Issue:  t.Value(NumFirstIssueOnline),
	}
}

// End returns the last endpoint of the title's coverage. It is empty for
// coverage that continues to the present.
func End(t Title) Endpoint {
	return Endpoint{
		Year:   t.Value(DateLastIssueOnline),
		Volume: t.Value(NumLastVolOnline),
		Issue:  t.Value(NumLastIssueOnline),
	}
}

type endpointRole int

const (
	roleStart endpointRole = iota
	roleEnd
	roleSingle
)

// Style describes how coverage notes are written.
type Style struct {
	ID          string
	Description string
	ShowVolume  bool
	SummaryOnly bool
	Join        string
	Separator   string
	Placeholder string

	// renderEndpoint overrides the default "year(volume)" rendering.
	renderEndpoint func(s Style, e Endpoint, role endpointRole) string
	// openEnded overrides the default "<start><join>" rendering.
	openEnded func(s Style, start Endpoint) string
}

var styles = map[string]Style{
	"year": {
		ID:          "year",
		Description: "Year ranges, one per coverage range",
		Join:        "-",
		Separator:   ", ",
		Placeholder: "?",
	},
	"year_summary": {
		ID:          "year_summary",
		Description: "A single year range spanning all coverage",
		SummaryOnly: true,
		Join:        "-",
		Separator:   ", ",
		Placeholder: "?",
	},
	"year_volume": {
		ID:          "year_volume",
		Description: "Year ranges with volumes, one per coverage range",
		ShowVolume:  true,
		Join:        "-",
		Separator:   ", ",
		Placeholder: "?",
	},
	"year_volume_summary": {
		ID:          "year_volume_summary",
		Description: "A single year range with volumes spanning all coverage",
		ShowVolume:  true,
		SummaryOnly: true,
		Join:        "-",
		Separator:   ", ",
		Placeholder: "?",
	},
	"sfx": {
		ID:             "sfx",
		Description:    "SFX DataLoader threshold expressions",
		ShowVolume:     true,
		Join:           " && ",
		Separator:      " || ",
		Placeholder:    "undef",
		renderEndpoint: sfxEndpoint,
		openEnded: func(s Style, start Endpoint) string {
			return sfxEndpoint(s, start, roleStart)
		},
	},
}

// LookupStyle returns the style registered under id.
func LookupStyle(id string) (Style, error) {
	s, ok := styles[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, id)
	}
	return s, nil
}

// Styles returns all registered styles ordered by id.
func Styles() []Style {
	out := make([]Style, 0, len(styles))
	for _, s := range styles {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RangeNote renders the coverage of a single title row.
func (s Style) RangeNote(t Title) string {
	return s.note(Start(t), End(t))
}

// Note renders the coverage of all rows belonging to one title. Summary
// styles span from the first row's start to the last row's end.
func (s Style) Note(members []Title) string {
	if len(members) == 0 {
		return ""
	}
	if s.SummaryOnly {
		return s.note(Start(members[0]), End(members[len(members)-1]))
	}
	notes := make([]string, 0, len(members))
	for _, t := range members {
		if n := s.RangeNote(t); n != "" {
			notes = append(notes, n)
		}
	}
	return strings.Join(notes, s.Separator)
}

func (s Style) note(start, end Endpoint) string {
	switch {
	case start.empty() && end.empty():
		return ""
	case !s.ShowVolume && start.Year == "" && end.Year == "":
		// Volumes alone say nothing in a year-only note.
		return ""
	case end.empty():
		if s.openEnded != nil {
			return s.openEnded(s, start)
		}
		return s.endpoint(start, roleStart) + s.Join
	case s.sameEndpoint(start, end):
		return s.endpoint(start, roleSingle)
	}
	return s.endpoint(start, roleStart) + s.Join + s.endpoint(end, roleEnd)
}

func (s Style) sameEndpoint(a, b Endpoint) bool {
	if a.Year != b.Year {
		return false
	}
	return !s.ShowVolume || a.Volume == b.Volume
}

func (s Style) endpoint(e Endpoint, role endpointRole) string {
	if s.renderEndpoint != nil {
		return s.renderEndpoint(s, e, role)
	}
	out := s.orPlaceholder(e.Year)
	if s.ShowVolume && e.Volume != "" {
		out += "(" + e.Volume + ")"
	}
	return out
}

func (s Style) orPlaceholder(v string) string {
	if v == "" {
		return s.Placeholder
	}
	return v
}

var sfxOperators = map[endpointRole]string{
	roleStart:  ">=",
	roleEnd:    "<=",
	roleSingle: "==",
}

func sfxEndpoint(s Style, e Endpoint, role endpointRole) string {
	quote := func(v string) string {
		if v == "" {
			return s.Placeholder
		}
		return strconv.Quote(v)
	}
	return fmt.Sprintf("$obj->parsedDate(%q,%s,%s,%s)",
		sfxOperators[role], quote(e.Year), quote(e.Volume), quote(e.Issue))
}
