package dataset

import (
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
)

// ExpandInputs resolves file patterns, including ** globs, to a sorted list
// of unique files. A pattern without glob characters must name an existing file.
func ExpandInputs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("failed to read input %s: %w", pattern, err)
			}
			files = append(files, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error for %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// LoadAll loads the records of every file in order. A positive limit stops
// after that many records in total.
func LoadAll(paths []string, limit int) ([]biblio.IssueRecord, error) {
	var records []biblio.IssueRecord
	for _, p := range paths {
		var recs []biblio.IssueRecord
		var err error
		if limit > 0 {
			if len(records) >= limit {
				break
			}
			recs, err = NewLoader(p).LoadSample(limit - len(records))
		} else {
			recs, err = NewLoader(p).Load()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", p, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}
