// Package results writes YAML reports describing a conversion run.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
	"github.com/lehigh-university-libraries/kbart/internal/kbart"
)

// RunConfig represents the configuration section of the report
type RunConfig struct {
	RunID          string   `yaml:"run_id"`
	Timestamp      string   `yaml:"timestamp"`
	Inputs         []string `yaml:"inputs"`
	Style          string   `yaml:"style"`
	Format         string   `yaml:"format"`
	Amalgamated    bool     `yaml:"amalgamated"`
	TitleURLPrefix string   `yaml:"title_url_prefix"`
	MaxYearGap     int      `yaml:"max_year_gap"`
}

// Summary counts what the run produced.
type Summary struct {
	Records       int `yaml:"records"`
	Titles        int `yaml:"titles"`
	Rows          int `yaml:"rows"`
	VolumeOrdered int `yaml:"volume_ordered"`
	YearOrdered   int `yaml:"year_ordered"`
	MultiRange    int `yaml:"multi_range"`

	// Composite scores of the chosen orderings.
	Composite ScoreStats `yaml:"composite"`
}

// ScoreStats summarises a set of scores.
type ScoreStats struct {
	Average float64 `yaml:"average"`
	Median  float64 `yaml:"median"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

// Report represents the complete run report
type Report struct {
	Config    RunConfig        `yaml:"config"`
	Summary   Summary          `yaml:"summary"`
	Decisions []kbart.Decision `yaml:"decisions"`
}

// NewReport builds a report with a fresh run id.
func NewReport(cfg RunConfig, records int, res *kbart.Result, now time.Time) *Report {
	cfg.RunID = uuid.NewString()
	cfg.Timestamp = now.Format(time.RFC3339)

	r := &Report{
		Config:    cfg,
		Decisions: res.Decisions,
	}
	r.Summary = Summarize(records, res)
	return r
}

// Summarize counts orderings and ranges over the decisions of a run.
func Summarize(records int, res *kbart.Result) Summary {
	s := Summary{
		Records: records,
		Titles:  len(res.Decisions),
		Rows:    len(res.Titles),
	}
	scores := make([]float64, 0, len(res.Decisions))
	for _, d := range res.Decisions {
		if d.Ordering == biblio.Year.String() && d.YearScore != nil {
			s.YearOrdered++
			scores = append(scores, d.YearScore.Composite)
		} else {
			s.VolumeOrdered++
			scores = append(scores, d.VolumeScore.Composite)
		}
		if d.Ranges > 1 {
			s.MultiRange++
		}
	}
	s.Composite = newScoreStats(scores)
	return s
}

func newScoreStats(scores []float64) ScoreStats {
	if len(scores) == 0 {
		return ScoreStats{}
	}

	var total float64
	for _, score := range scores {
		total += score
	}

	sort.Float64s(scores)
	stats := ScoreStats{
		Average: total / float64(len(scores)),
		Min:     scores[0],
		Max:     scores[len(scores)-1],
	}
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		stats.Median = (scores[mid-1] + scores[mid]) / 2
	} else {
		stats.Median = scores[mid]
	}
	return stats
}

// SaveToYAML writes the report to dir and returns the file path.
func SaveToYAML(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, r.Config.Timestamp)
	if err != nil {
		ts = time.Now()
	}
	filename := filepath.Join(dir, fmt.Sprintf("kbart-%s-%s.yaml",
		ts.Format("2006-01-02_15-04-05"), r.Config.RunID[:8]))

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

// LoadFromYAML reads a report written by SaveToYAML.
func LoadFromYAML(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
