package biblio

import (
	"regexp"
	"strings"
)

type issueFormat struct {
	param   string
	pattern *regexp.Regexp
}

var (
	numberRangeIssues = regexp.MustCompile(`^\s*(\d+)(?:\s*-\s*(\d+))*\s*$`)
	nameListIssues    = regexp.MustCompile(`^\s*([^,]+)(?:\s*,\s*([^,]+))*\s*$`)
)

// Issue parameters tried in priority order when a record has no explicit issue.
var issueFormats = []issueFormat{
	{param: "num_issue_range", pattern: numberRangeIssues},
	{param: "issue_set", pattern: nameListIssues},
	{param: "issue_no", pattern: numberRangeIssues},
	{param: "issues", pattern: nameListIssues},
	{param: "issue_no.", pattern: numberRangeIssues},
	{param: "issue_dir", pattern: nameListIssues},
}

// IssueRange returns the declared issue string: the explicit issue, or the
// first non-empty issue parameter.
func (r IssueRecord) IssueRange() string {
	s, _ := r.issueString()
	return s
}

func (r IssueRecord) issueString() (string, []*regexp.Regexp) {
	if s := strings.TrimSpace(r.Issue); s != "" {
		return s, []*regexp.Regexp{numberRangeIssues, nameListIssues}
	}
	for _, f := range issueFormats {
		if s := strings.TrimSpace(r.Params[f.param]); s != "" {
			return s, []*regexp.Regexp{f.pattern}
		}
	}
	return "", nil
}

// StartIssue returns the first issue of the declared issue range.
func (r IssueRecord) StartIssue() string {
	first, _ := r.issueEndpoints()
	return first
}

// EndIssue returns the last issue of the declared issue range.
func (r IssueRecord) EndIssue() string {
	_, last := r.issueEndpoints()
	return last
}

func (r IssueRecord) issueEndpoints() (string, string) {
	s, patterns := r.issueString()
	for _, p := range patterns {
		m := p.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		first := strings.TrimSpace(m[1])
		last := strings.TrimSpace(m[2])
		if last == "" {
			last = first
		}
		return first, last
	}
	return "", ""
}
