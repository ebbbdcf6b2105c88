package kbart

// sameTitle holds when two rows describe the same publication.
func sameTitle(a, b Title) bool {
	for _, f := range IDFields {
		if a.Value(f) != b.Value(f) {
			return false
		}
	}
	return true
}

// Amalgamate folds runs of consecutive rows for the same title into one row
// per run. The folded row keeps the first row's fields, takes its end fields
// from the last member and carries a coverage note over every member.
func Amalgamate(titles []Title, style Style) []Title {
	if len(titles) == 0 {
		return nil
	}

	var out []Title
	acc := titles[0]
	members := []Title{titles[0]}
	flush := func() {
		out = append(out, acc.With(Overrides{CoverageNotes: style.Note(members)}))
	}

	for _, t := range titles[1:] {
		if sameTitle(acc, t) {
			acc = acc.With(lastFieldsOf(t))
			members = append(members, t)
			continue
		}
		flush()
		acc = t
		members = []Title{t}
	}
	flush()
	return out
}

// Annotate sets a coverage note on every row without folding.
func Annotate(titles []Title, style Style) []Title {
	out := make([]Title, len(titles))
	for i, t := range titles {
		out[i] = t.With(Overrides{CoverageNotes: style.RangeNote(t)})
	}
	return out
}

func lastFieldsOf(t Title) Overrides {
	o := make(Overrides, len(LastFields))
	for _, f := range LastFields {
		o[f] = t.Value(f)
	}
	return o
}
