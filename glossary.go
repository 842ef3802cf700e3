package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// HeaderGlossary is an optional user-supplied table of site-specific header
// names and the canonical fields they map to. Terms become exact-match
// pattern rules that run ahead of the built-ins.
type HeaderGlossary struct {
	Terms []GlossaryTerm `yaml:"terms"`
}

type GlossaryTerm struct {
	Header string `yaml:"header"`
	Field  string `yaml:"field"`
}

func LoadHeaderGlossary(path string) (*HeaderGlossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	var g HeaderGlossary
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse glossary yaml: %w", err)
	}
	for _, term := range g.Terms {
		if strings.TrimSpace(term.Header) == "" {
			return nil, fmt.Errorf("glossary term with empty header")
		}
		if _, ok := canonicalFieldNamed(strings.TrimSpace(term.Field)); !ok {
			return nil, fmt.Errorf("glossary term %q: unknown field %q", term.Header, term.Field)
		}
	}
	return &g, nil
}

// Rules converts glossary terms into anchored pattern rules.
func (g *HeaderGlossary) Rules() []PatternRule {
	var rules []PatternRule
	for _, term := range g.Terms {
		field, ok := canonicalFieldNamed(strings.TrimSpace(term.Field))
		if !ok || field == FieldOther {
			continue
		}
		pattern := `(?i)^` + regexp.QuoteMeta(normalizeHeader(term.Header)) + `$`
		rules = append(rules, PatternRule{
			Field:    field,
			Pattern:  regexp.MustCompile(pattern),
			Priority: 1,
		})
	}
	return rules
}

// activeRules returns the pattern library for this run: glossary terms, if
// configured, ahead of the built-in rules.
func activeRules(cfg Config) ([]PatternRule, error) {
	if cfg.GlossaryPath == "" {
		return builtinRules, nil
	}
	g, err := LoadHeaderGlossary(cfg.GlossaryPath)
	if err != nil {
		return nil, err
	}
	return append(g.Rules(), builtinRules...), nil
}
