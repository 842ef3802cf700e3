package main

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Hint is a label inferred from sampled cell contents, used to confirm or
// disambiguate a column's field.
type Hint string

const (
	HintNone     Hint = ""
	HintUUID     Hint = "uuid"
	HintEmail    Hint = "email"
	HintCurrency Hint = "currency"
	HintBoolean  Hint = "boolean"
	HintDate     Hint = "date"
)

const defaultSampleSize = 20

// Detection thresholds: fraction of sampled values that must match.
const (
	uuidThreshold     = 0.8
	emailThreshold    = 0.8
	currencyThreshold = 0.6
	dateThreshold     = 0.7
)

var (
	emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

	// A currency-shaped value carries a symbol, or a decimal part, or
	// thousands separators. Bare integers are excluded so 1/0 flag columns
	// and score columns do not read as money.
	currencyShape = regexp.MustCompile(`^[$€£¥]\s?-?\d{1,3}(,\d{3})*(\.\d+)?$|^[$€£¥]\s?-?\d+(\.\d+)?$|^-?\d{1,3}(,\d{3})+(\.\d+)?$|^-?\d+\.\d+$`)
)

// booleanTokens is the fixed truthy/falsy vocabulary, lowercased.
var booleanTokens = map[string]bool{
	"true": true, "yes": true, "y": true, "1": true, "active": true,
	"false": false, "no": false, "n": false, "0": false, "inactive": false,
}

// dateFormats is the fixed parse list, tried in priority order. The first
// entry is also the canonical output format, which keeps re-normalizing
// already-canonical output a no-op.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// sampleValues returns up to n leading non-empty trimmed values.
func sampleValues(values []string, n int) []string {
	if n <= 0 {
		n = defaultSampleSize
	}
	out := make([]string, 0, n)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

// detectHint inspects a sample of a column's raw values and returns the
// first hint whose rule clears its threshold. Rules run in fixed priority
// order because raw values can satisfy more than one shape. Deterministic
// for a given sample.
func detectHint(values []string, sampleSize int) Hint {
	sample := sampleValues(values, sampleSize)
	if len(sample) == 0 {
		return HintNone
	}
	switch {
	case matchRatio(sample, isUUIDValue) >= uuidThreshold:
		return HintUUID
	case matchRatio(sample, isEmailValue) >= emailThreshold:
		return HintEmail
	case matchRatio(sample, isCurrencyValue) >= currencyThreshold:
		return HintCurrency
	case allMatch(sample, isBooleanToken):
		return HintBoolean
	case matchRatio(sample, isDateValue) >= dateThreshold:
		return HintDate
	}
	return HintNone
}

func matchRatio(sample []string, match func(string) bool) float64 {
	hits := 0
	for _, v := range sample {
		if match(v) {
			hits++
		}
	}
	return float64(hits) / float64(len(sample))
}

func allMatch(sample []string, match func(string) bool) bool {
	for _, v := range sample {
		if !match(v) {
			return false
		}
	}
	return true
}

func isUUIDValue(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

func isEmailValue(v string) bool {
	return strings.Count(v, "@") == 1 && emailShape.MatchString(v)
}

func isCurrencyValue(v string) bool {
	return currencyShape.MatchString(v)
}

func isBooleanToken(v string) bool {
	_, ok := booleanTokens[strings.ToLower(v)]
	return ok
}

func isDateValue(v string) bool {
	_, ok := parseDate(v)
	return ok
}

// parseDate tries the fixed format list in order. Dateless times are never
// produced; formats without a clock component yield midnight UTC.
func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
