package biblio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		record IssueRecord
		rng    string
		start  string
		end    string
	}{
		{
			name:   "explicit numeric range",
			record: IssueRecord{Issue: "1-3"},
			rng:    "1-3", start: "1", end: "3",
		},
		{
			name:   "explicit single issue",
			record: IssueRecord{Issue: "5"},
			rng:    "5", start: "5", end: "5",
		},
		{
			name:   "explicit named issues",
			record: IssueRecord{Issue: "Spring, Fall"},
			rng:    "Spring, Fall", start: "Spring", end: "Fall",
		},
		{
			name:   "parameter priority",
			record: IssueRecord{Params: map[string]string{"issue_set": "a, b", "num_issue_range": "1-2"}},
			rng:    "1-2", start: "1", end: "2",
		},
		{
			name:   "issue directory",
			record: IssueRecord{Params: map[string]string{"issue_dir": "supplement"}},
			rng:    "supplement", start: "supplement", end: "supplement",
		},
		{
			name:   "parameter not matching its format",
			record: IssueRecord{Params: map[string]string{"issue_no": "abc"}},
			rng:    "abc", start: "", end: "",
		},
		{
			name:   "no issue",
			record: IssueRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rng, tt.record.IssueRange())
			assert.Equal(t, tt.start, tt.record.StartIssue())
			assert.Equal(t, tt.end, tt.record.EndIssue())
		})
	}
}
