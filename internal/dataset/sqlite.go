package dataset

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/lehigh-university-libraries/kbart/internal/biblio"
)

// IssuesTable is the table read from SQLite databases.
const IssuesTable = "issues"

const issueColumns = `name, publication_title, publisher, publication_type, volume, year,
	issue, print_issn, eissn, issnl, print_isbn, eisbn, title_id, coverage_depth, params`

// loadSQLite reads the issues table. Every column may be NULL; params holds
// a JSON object of extra issue parameters.
func (l *Loader) loadSQLite(limit int) ([]biblio.IssueRecord, error) {
	slog.Debug("Opening SQLite database", "path", l.datasetPath)

	db, err := sql.Open("sqlite", l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	defer db.Close()

	query := "SELECT " + issueColumns + " FROM " + IssuesTable + " ORDER BY rowid"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", IssuesTable, err)
	}
	defer rows.Close()

	var records []biblio.IssueRecord
	for rows.Next() {
		var cols [15]sql.NullString
		dest := make([]any, len(cols))
		for i := range cols {
			dest[i] = &cols[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(records)+1, err)
		}

		r := biblio.IssueRecord{
			Name:             cols[0].String,
			PublicationTitle: cols[1].String,
			Publisher:        cols[2].String,
			PublicationType:  cols[3].String,
			Volume:           cols[4].String,
			Year:             cols[5].String,
			Issue:            cols[6].String,
			PrintISSN:        cols[7].String,
			EISSN:            cols[8].String,
			ISSNL:            cols[9].String,
			PrintISBN:        cols[10].String,
			EISBN:            cols[11].String,
			TitleID:          cols[12].String,
			CoverageDepth:    cols[13].String,
		}
		if cols[14].Valid && cols[14].String != "" {
			if err := json.Unmarshal([]byte(cols[14].String), &r.Params); err != nil {
				return nil, fmt.Errorf("failed to parse params of row %d: %w", len(records)+1, err)
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", IssuesTable, err)
	}

	slog.Debug("Finished reading SQLite database", "total_records", len(records))
	return records, nil
}
