package main

import (
	"fmt"
	"log"
	"sort"
)

// resolveCollisions demotes all but one of the columns that classified to
// the same non-"other" field. The winner has the highest-confidence
// provenance; ties keep the first column by input order. Losers move to
// "other" so no input data is dropped.
func resolveCollisions(results []ClassificationResult) []ClassificationResult {
	winners := make(map[CanonicalField]int)
	for i, r := range results {
		if r.Field == FieldOther {
			continue
		}
		j, seen := winners[r.Field]
		if !seen {
			winners[r.Field] = i
			continue
		}
		if r.Provenance.Rank() > results[j].Provenance.Rank() {
			winners[r.Field] = i
		}
	}

	resolved := make([]ClassificationResult, len(results))
	copy(resolved, results)
	for i, r := range resolved {
		if r.Field == FieldOther || winners[r.Field] == i {
			continue
		}
		log.Printf("collision column=%q field=%s demoted to other (kept column=%q)",
			r.Column.Header, r.Field, results[winners[r.Field]].Column.Header)
		resolved[i].Field = FieldOther
		resolved[i].Provenance = ProvenanceUnmapped
		resolved[i].Pattern = ""
		resolved[i].Rationale = ""
	}
	return resolved
}

// assembleTable orders normalized columns into the canonical layout: fixed
// field order first, then "other" columns in original input order. Expects
// collisions to be resolved already, so each canonical field appears at
// most once. Repeated output names (two unmapped columns sharing a header,
// or an unmapped header that spells a canonical field name) get a numeric
// suffix so writers never see duplicate columns.
func assembleTable(columns []NormalizedColumn) OutputTable {
	ordered := make([]NormalizedColumn, len(columns))
	copy(ordered, columns)
	sort.SliceStable(ordered, func(i, j int) bool {
		oi, oj := ordered[i].Field.OrderIndex(), ordered[j].Field.OrderIndex()
		if oi != oj {
			return oi < oj
		}
		return ordered[i].Index < ordered[j].Index
	})

	taken := make(map[string]bool, len(ordered))
	for i := range ordered {
		base := ordered[i].Name()
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		if name != base {
			log.Printf("duplicate output column %q renamed to %q", base, name)
		}
		taken[name] = true
		ordered[i].OutputName = name
	}
	return OutputTable{Columns: ordered}
}
