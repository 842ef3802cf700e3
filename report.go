package main

import (
	"fmt"
	"strings"
)

// renderMappingReport formats the per-column mapping decisions for humans.
// Pure projection of the classification and normalization results; input
// column order is preserved.
func renderMappingReport(results []ClassificationResult, normalized []NormalizedColumn) string {
	var out strings.Builder
	out.WriteString("=== Semantic Mapping Report ===\n")
	for i, r := range results {
		detail := provenanceDetail(r)
		line := fmt.Sprintf("%s -> %s | %s", r.Column.Header, r.Field, detail)
		if i < len(normalized) && normalized[i].Failures > 0 {
			line += fmt.Sprintf(" | %d value(s) failed coercion", normalized[i].Failures)
		}
		out.WriteString(line + "\n")
	}
	return out.String()
}

func provenanceDetail(r ClassificationResult) string {
	switch r.Provenance {
	case ProvenancePattern:
		return fmt.Sprintf("%s %q", r.Provenance, r.Pattern)
	case ProvenanceHint:
		return fmt.Sprintf("%s %q", r.Provenance, string(r.Hint))
	case ProvenanceModel:
		return fmt.Sprintf("%s: %s", r.Provenance, r.Rationale)
	default:
		return string(ProvenanceUnmapped)
	}
}
