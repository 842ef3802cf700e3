package main

import (
	"regexp"
	"strings"
)

// PatternRule binds one canonical field to a header-matching regex plus the
// value hints that confirm the field. A field may carry several rules; a
// rule belongs to exactly one field. Higher-priority rules (glossary terms)
// shadow lower-priority ones when both match a header.
type PatternRule struct {
	Field    CanonicalField
	Pattern  *regexp.Regexp
	Hints    []Hint
	Priority int
}

func (r PatternRule) acceptsHint(h Hint) bool {
	for _, accepted := range r.Hints {
		if accepted == h {
			return true
		}
	}
	return false
}

type rawRule struct {
	field   CanonicalField
	pattern string
	hints   []Hint
}

// builtinRules is the static pattern library, authored in canonical field
// order. Patterns match against lowercased trimmed headers and tolerate
// space/underscore/hyphen separators. mrr deliberately has no alias pattern
// for "monthly recurring": spelled-out revenue headers reach mrr through the
// currency hint, which keeps them from cross-matching arr.
var builtinRules = compileRules([]rawRule{
	{FieldUUID, `uuid|guid|^id$|[_\s-]id$`, []Hint{HintUUID}},
	{FieldEmail, `e-?mail`, []Hint{HintEmail}},
	{FieldFullName, `^name$|full[_\s-]?name`, nil},
	{FieldFirstName, `first[_\s-]?name|^fname$`, nil},
	{FieldLastName, `last[_\s-]?name|^lname$`, nil},
	{FieldCompany, `company|account|org(anization)?`, nil},
	{FieldDomain, `domain|website|url`, nil},
	{FieldPlan, `plan|tier|package`, nil},
	{FieldMRR, `\bmrr\b`, []Hint{HintCurrency}},
	{FieldARR, `\barr\b|annual[_\s-]?recurring`, nil},
	{FieldNPS, `\bnps\b|net[_\s-]?promoter`, nil},
	{FieldChurnFlag, `churn|cancel`, []Hint{HintBoolean}},
	{FieldCreatedAt, `created|signup|joined|start`, []Hint{HintDate}},
	{FieldLastSeen, `last[_\s-]?seen|last[_\s-]?login|activity`, nil},
	{FieldPhone, `phone|mobile|cell`, nil},
	{FieldCountry, `country`, nil},
	{FieldState, `state|province|region`, nil},
	{FieldCity, `city|town`, nil},
	{FieldZip, `zip|postal`, nil},
	{FieldNotes, `notes?|comments?`, nil},
})

func compileRules(raw []rawRule) []PatternRule {
	rules := make([]PatternRule, 0, len(raw))
	for _, r := range raw {
		rules = append(rules, PatternRule{
			Field:   r.field,
			Pattern: regexp.MustCompile(`(?i)` + r.pattern),
			Hints:   r.hints,
		})
	}
	return rules
}

// rulesFor returns every rule bound to the given field.
func rulesFor(rules []PatternRule, field CanonicalField) []PatternRule {
	var out []PatternRule
	for _, r := range rules {
		if r.Field == field {
			out = append(out, r)
		}
	}
	return out
}

// fieldAcceptsHint reports whether any of the field's rules accepts the hint.
func fieldAcceptsHint(rules []PatternRule, field CanonicalField, h Hint) bool {
	for _, r := range rules {
		if r.Field == field && r.acceptsHint(h) {
			return true
		}
	}
	return false
}

// uniqueFieldForHint returns the single field whose rules accept the hint,
// or false when zero or several fields accept it.
func uniqueFieldForHint(rules []PatternRule, h Hint) (CanonicalField, bool) {
	var found CanonicalField
	var any bool
	for _, r := range rules {
		if !r.acceptsHint(h) {
			continue
		}
		if any && r.Field != found {
			return "", false
		}
		found = r.Field
		any = true
	}
	return found, any
}

// normalizeHeader prepares a raw header for pattern matching.
func normalizeHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(header)), " "))
}
