package main

import (
	"strings"
	"testing"
)

func TestRenderMappingReport(t *testing.T) {
	results := []ClassificationResult{
		{
			Column:     InputColumn{Index: 0, Header: "E-mail"},
			Field:      FieldEmail,
			Provenance: ProvenancePattern,
			Pattern:    "(?i)e-?mail",
		},
		{
			Column:     InputColumn{Index: 1, Header: "Monthly Recurring ($)"},
			Field:      FieldMRR,
			Provenance: ProvenanceHint,
			Hint:       HintCurrency,
		},
		{
			Column:     InputColumn{Index: 2, Header: "Kundenname"},
			Field:      FieldFullName,
			Provenance: ProvenanceModel,
			Rationale:  "German for customer name",
		},
		{
			Column:     InputColumn{Index: 3, Header: "Favorite Color"},
			Field:      FieldOther,
			Provenance: ProvenanceUnmapped,
		},
	}
	normalized := []NormalizedColumn{
		{Field: FieldEmail, Failures: 0},
		{Field: FieldMRR, Failures: 2},
		{Field: FieldFullName, Failures: 0},
		{Field: FieldOther, Failures: 0},
	}

	report := renderMappingReport(results, normalized)

	if !strings.Contains(report, "=== Semantic Mapping Report ===") {
		t.Fatalf("missing report heading:\n%s", report)
	}
	if !strings.Contains(report, `E-mail -> email | pattern-match "(?i)e-?mail"`) {
		t.Fatalf("pattern-match line must show the matched pattern:\n%s", report)
	}
	if !strings.Contains(report, `Monthly Recurring ($) -> mrr | value-hint "currency" | 2 value(s) failed coercion`) {
		t.Fatalf("value-hint line must show hint and failure count:\n%s", report)
	}
	if !strings.Contains(report, "Kundenname -> fullName | external-model: German for customer name") {
		t.Fatalf("external-model line must show the rationale:\n%s", report)
	}
	if !strings.Contains(report, "Favorite Color -> other | unmapped") {
		t.Fatalf("unmapped line missing:\n%s", report)
	}

	lines := strings.Split(strings.TrimSpace(report), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected heading plus one line per column, got %d lines", len(lines))
	}
}
