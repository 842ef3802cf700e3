package main

import (
	"strconv"
	"strings"
)

// churnTokens is the documented churnFlag polarity table. Boolean literals
// and churn vocabulary keep their polarity; activity vocabulary is negated,
// so "Active? yes" normalizes to churn=false. Canonical output ("true"/
// "false") round-trips through this table unchanged.
var churnTokens = map[string]bool{
	"true": true, "1": true,
	"false": false, "0": false,
	"cancel": true, "cancelled": true, "canceled": true, "churned": true,
	"yes": false, "y": false, "active": false,
	"no": true, "n": true, "inactive": true,
}

var currencyStripper = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", ",", "", " ", "")

// normalizeColumn coerces a classified column's raw values into the field's
// canonical type. Values that fail coercion become nil and are tallied;
// rows are never dropped, so output length always equals input length.
func normalizeColumn(field CanonicalField, col InputColumn) NormalizedColumn {
	out := NormalizedColumn{
		Field:  field,
		Header: col.Header,
		Index:  col.Index,
		Values: make([]any, len(col.Values)),
	}
	for i, raw := range col.Values {
		value, failed := coerceValue(field, raw)
		out.Values[i] = value
		if failed {
			out.Failures++
		}
	}
	return out
}

// coerceValue converts one raw cell to the field's canonical representation.
// It never panics or errors; malformed input yields (nil, true).
func coerceValue(field CanonicalField, raw string) (any, bool) {
	s := strings.TrimSpace(raw)
	switch field.ValueType() {
	case TypeDate:
		if ts, ok := parseDate(s); ok {
			return ts, false
		}
		return nil, true
	case TypeCurrency:
		stripped := currencyStripper.Replace(s)
		if stripped == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return nil, true
		}
		return f, false
	case TypeInteger:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, true
		}
		return n, false
	case TypeBoolean:
		if field == FieldChurnFlag {
			if churned, ok := churnTokens[strings.ToLower(s)]; ok {
				return churned, false
			}
			return nil, true
		}
		if b, ok := booleanTokens[strings.ToLower(s)]; ok {
			return b, false
		}
		return nil, true
	default:
		// identifier, text, freeText: verbatim after trimming. Empty is
		// null, not a failure.
		if s == "" {
			return nil, false
		}
		return s, false
	}
}

// normalizeColumns runs the normalizer over every resolved classification.
func normalizeColumns(results []ClassificationResult) []NormalizedColumn {
	out := make([]NormalizedColumn, len(results))
	for i, r := range results {
		out[i] = normalizeColumn(r.Field, r.Column)
	}
	return out
}
