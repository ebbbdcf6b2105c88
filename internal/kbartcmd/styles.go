package kbartcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/kbart/internal/kbart"
)

func executeStyles(stdout io.Writer) error {
	var rows [][]string
	for _, s := range kbart.Styles() {
		marker := ""
		if s.ID == kbart.DefaultStyle {
			marker = "*"
		}
		rows = append(rows, []string{s.ID + marker, s.Description})
	}
	if _, err := fmt.Fprintln(stdout, kbart.RenderTable([]string{"Style", "Description"}, rows, nil)); err != nil {
		return err
	}

	rows = rows[:0]
	for _, o := range kbart.Orderings() {
		rows = append(rows, []string{o.ID, o.Description, strings.Join(kbart.Labels(o.Fields), ", ")})
	}
	_, err := fmt.Fprintln(stdout, kbart.RenderTable([]string{"Ordering", "Description", "Fields"}, rows, nil))
	return err
}
