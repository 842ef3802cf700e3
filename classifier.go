package main

import (
	"context"
	"log"
	"strings"
	"sync"
)

// Disambiguator resolves a column the heuristics could not place. It is an
// optional capability injected by the caller; nil means offline mode. A
// failed or out-of-set answer is never fatal, the column just stays
// unmapped.
type Disambiguator func(ctx context.Context, header string, samples []string) (field string, rationale string, err error)

// classifyColumn assigns one input column to a canonical field. Steps, first
// success wins: unique name-pattern match, hint-assisted tie-break between
// several name matches, unique value-hint mapping, external disambiguation,
// unmapped. Classification of one column never depends on another.
func classifyColumn(col InputColumn, rules []PatternRule, d Disambiguator, cfg Config) ClassificationResult {
	header := normalizeHeader(col.Header)

	type nameMatch struct {
		field    CanonicalField
		pattern  string
		priority int
	}
	var matches []nameMatch
	matched := make(map[CanonicalField]bool)
	maxPriority := 0
	for _, r := range rules {
		if matched[r.Field] || !r.Pattern.MatchString(header) {
			continue
		}
		matched[r.Field] = true
		matches = append(matches, nameMatch{r.Field, r.Pattern.String(), r.Priority})
		if r.Priority > maxPriority {
			maxPriority = r.Priority
		}
	}
	if maxPriority > 0 {
		kept := matches[:0]
		for _, m := range matches {
			if m.priority == maxPriority {
				kept = append(kept, m)
			}
		}
		matches = kept
	}

	if len(matches) == 1 {
		return ClassificationResult{
			Column:     col,
			Field:      matches[0].field,
			Provenance: ProvenancePattern,
			Pattern:    matches[0].pattern,
		}
	}

	hint := detectHint(col.Values, cfg.SampleSize)

	if len(matches) > 1 {
		candidates := matches
		if hint != HintNone {
			var confirmed []nameMatch
			for _, m := range matches {
				if fieldAcceptsHint(rules, m.field, hint) {
					confirmed = append(confirmed, m)
				}
			}
			if len(confirmed) > 0 {
				candidates = confirmed
			}
		}
		best := candidates[0]
		for _, m := range candidates[1:] {
			if m.field.OrderIndex() < best.field.OrderIndex() {
				best = m
			}
		}
		return ClassificationResult{
			Column:     col,
			Field:      best.field,
			Provenance: ProvenancePattern,
			Pattern:    best.pattern,
			Hint:       hint,
		}
	}

	if hint != HintNone {
		if field, ok := uniqueFieldForHint(rules, hint); ok {
			return ClassificationResult{
				Column:     col,
				Field:      field,
				Provenance: ProvenanceHint,
				Hint:       hint,
			}
		}
	}

	if d != nil {
		if result, ok := disambiguate(col, d, cfg); ok {
			return result
		}
	}

	return ClassificationResult{Column: col, Field: FieldOther, Provenance: ProvenanceUnmapped, Hint: hint}
}

// disambiguate invokes the external capability with a bounded context. Any
// error, timeout, or non-canonical answer degrades to heuristic-only
// handling for the column.
func disambiguate(col InputColumn, d Disambiguator, cfg Config) (ClassificationResult, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout())
	defer cancel()

	field, rationale, err := d(ctx, col.Header, sampleValues(col.Values, cfg.SampleSize))
	if err != nil {
		log.Printf("disambiguation failed column=%q err=%v", col.Header, err)
		return ClassificationResult{}, false
	}
	resolved, ok := canonicalFieldNamed(strings.TrimSpace(field))
	if !ok || resolved == FieldOther {
		log.Printf("disambiguation rejected column=%q field=%q", col.Header, field)
		return ClassificationResult{}, false
	}
	return ClassificationResult{
		Column:     col,
		Field:      resolved,
		Provenance: ProvenanceModel,
		Rationale:  rationale,
	}, true
}

// classifyColumns classifies every column, fanning out across workers.
// Results land at the column's own index, so output order is stable
// regardless of scheduling.
func classifyColumns(cols []InputColumn, rules []PatternRule, d Disambiguator, cfg Config) []ClassificationResult {
	results := make([]ClassificationResult, len(cols))
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, col := range cols {
		wg.Add(1)
		go func(idx int, col InputColumn) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = classifyColumn(col, rules, d, cfg)
		}(i, col)
	}
	wg.Wait()
	return results
}
