package main

import (
	"testing"
	"time"
)

func TestDetectHintUUID(t *testing.T) {
	values := []string{
		"5f0210f6-6bcb-4d7a-9a01-0c4e57ed1c6e",
		"0b8df1d1-54fc-4f62-b0b4-3c4ba83f4f2f",
		"c2d29867-3d0b-4497-9e13-3a777ae05989",
		"8c0a5e6b-02a3-4f0b-bb3a-7c9a3f9a1d2e",
		"not-a-uuid",
	}
	if got := detectHint(values, 20); got != HintUUID {
		t.Fatalf("expected uuid hint, got %q", got)
	}
}

func TestDetectHintUUIDBelowThreshold(t *testing.T) {
	values := []string{
		"5f0210f6-6bcb-4d7a-9a01-0c4e57ed1c6e",
		"alpha", "beta", "gamma",
	}
	if got := detectHint(values, 20); got == HintUUID {
		t.Fatal("25% uuid values should not clear the 80% threshold")
	}
}

func TestDetectHintEmail(t *testing.T) {
	values := []string{"a@example.com", "b@corp.io", "c@test.org", "d@x.dev", "oops"}
	if got := detectHint(values, 20); got != HintEmail {
		t.Fatalf("expected email hint, got %q", got)
	}
}

func TestDetectHintRejectsDoubleAt(t *testing.T) {
	if isEmailValue("a@@example.com") {
		t.Fatal("value with two @ is not email-shaped")
	}
	if isEmailValue("plain") {
		t.Fatal("value without @ is not email-shaped")
	}
}

func TestDetectHintCurrency(t *testing.T) {
	values := []string{"$129", "$45.50", "1,299.00", "oops"}
	if got := detectHint(values, 20); got != HintCurrency {
		t.Fatalf("expected currency hint, got %q", got)
	}
}

func TestBareIntegersAreNotCurrency(t *testing.T) {
	values := []string{"1", "0", "42", "7"}
	if got := detectHint(values, 20); got == HintCurrency {
		t.Fatal("bare integers should not hint currency")
	}
}

func TestDetectHintBoolean(t *testing.T) {
	values := []string{"yes", "NO", "Yes", "n", "TRUE", "0", "active"}
	if got := detectHint(values, 20); got != HintBoolean {
		t.Fatalf("expected boolean hint, got %q", got)
	}
}

func TestBooleanRequiresEveryValueInTokenSet(t *testing.T) {
	values := []string{"yes", "no", "maybe"}
	if got := detectHint(values, 20); got == HintBoolean {
		t.Fatal("one off-vocabulary value should break the boolean hint")
	}
}

func TestDetectHintDate(t *testing.T) {
	values := []string{"2025-08-01", "2024-12-31", "01/15/2024", "junk"}
	if got := detectHint(values, 20); got != HintDate {
		t.Fatalf("expected date hint, got %q", got)
	}
}

func TestDetectHintNoneOnFreeText(t *testing.T) {
	values := []string{"likes the product", "asked about pricing", "renewal call booked"}
	if got := detectHint(values, 20); got != HintNone {
		t.Fatalf("expected no hint on free text, got %q", got)
	}
}

func TestDetectHintEmptyColumn(t *testing.T) {
	if got := detectHint([]string{"", "  ", ""}, 20); got != HintNone {
		t.Fatalf("expected no hint on empty column, got %q", got)
	}
}

func TestDetectHintDeterministic(t *testing.T) {
	values := []string{"$10.00", "$20.00", "yes", "2024-01-01"}
	first := detectHint(values, 20)
	for i := 0; i < 10; i++ {
		if got := detectHint(values, 20); got != first {
			t.Fatalf("hint changed between runs: %q then %q", first, got)
		}
	}
}

func TestSampleValuesSkipsEmptiesAndCaps(t *testing.T) {
	values := []string{"", "a", " ", "b", "c", "d"}
	got := sampleValues(values, 3)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected sample: %v", got)
	}
}

func TestParseDateMidnightForDateOnly(t *testing.T) {
	ts, ok := parseDate("2025-08-01")
	if !ok {
		t.Fatal("expected 2025-08-01 to parse")
	}
	want := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("parsed %v, want midnight UTC %v", ts, want)
	}
}

func TestParseDatePriorityOrder(t *testing.T) {
	ts, ok := parseDate("2025-08-01 13:45:00")
	if !ok || ts.Hour() != 13 {
		t.Fatalf("datetime format should win for %v (ok=%v)", ts, ok)
	}
	if _, ok := parseDate("31/31/2024"); ok {
		t.Fatal("nonsense date should not parse")
	}
}
