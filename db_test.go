package main

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteSQLiteCreatesTypedTable(t *testing.T) {
	out := OutputTable{Columns: []NormalizedColumn{
		{Field: FieldEmail, Index: 0, Values: []any{"a@b.co", "c@d.io"}},
		{Field: FieldMRR, Index: 1, Values: []any{129.0, nil}},
		{Field: FieldChurnFlag, Index: 2, Values: []any{false, true}},
		{Field: FieldCreatedAt, Index: 3, Values: []any{time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), nil}},
		{Field: FieldOther, Header: "Favorite Color", Index: 4, Values: []any{"teal", nil}},
	}}

	path := filepath.Join(t.TempDir(), "customers.db")
	if err := writeSQLite(path, "customers", out); err != nil {
		t.Fatalf("writeSQLite failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	var mrr sql.NullFloat64
	var email string
	if err := db.QueryRow(`SELECT email, mrr FROM customers WHERE email = 'a@b.co'`).Scan(&email, &mrr); err != nil {
		t.Fatalf("typed query failed: %v", err)
	}
	if !mrr.Valid || mrr.Float64 != 129.0 {
		t.Fatalf("expected mrr 129.0, got %+v", mrr)
	}

	var nullMRR sql.NullFloat64
	if err := db.QueryRow(`SELECT mrr FROM customers WHERE email = 'c@d.io'`).Scan(&nullMRR); err != nil {
		t.Fatalf("null query failed: %v", err)
	}
	if nullMRR.Valid {
		t.Fatalf("failed coercion must land as NULL, got %+v", nullMRR)
	}

	var colType string
	if err := db.QueryRow(`SELECT type FROM pragma_table_info('customers') WHERE name = 'mrr'`).Scan(&colType); err != nil {
		t.Fatalf("pragma query failed: %v", err)
	}
	if colType != "REAL" {
		t.Fatalf("mrr column type = %s, want REAL", colType)
	}
}

func TestWriteSQLiteReplacesExistingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.db")
	first := OutputTable{Columns: []NormalizedColumn{
		{Field: FieldEmail, Index: 0, Values: []any{"a@b.co"}},
	}}
	if err := writeSQLite(path, "customers", first); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	second := OutputTable{Columns: []NormalizedColumn{
		{Field: FieldCompany, Index: 0, Values: []any{"Acme", "Globex"}},
	}}
	if err := writeSQLite(path, "customers", second); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("table should have been replaced, got %d rows", count)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM customers WHERE company = 'Acme'`).Scan(&count); err != nil {
		t.Fatalf("schema should match the second write: %v", err)
	}
}

func TestWriteSQLiteWithRepeatedUnmappedHeaders(t *testing.T) {
	// Two unmapped columns sharing a header must not abort the run with a
	// duplicate-column CREATE TABLE.
	out := assembleTable([]NormalizedColumn{
		{Field: FieldOther, Header: "Misc", Index: 0, Values: []any{"a", "b"}},
		{Field: FieldOther, Header: "Misc", Index: 1, Values: []any{"c", "d"}},
	})

	path := filepath.Join(t.TempDir(), "customers.db")
	if err := writeSQLite(path, "customers", out); err != nil {
		t.Fatalf("writeSQLite failed on repeated headers: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var first, second string
	if err := db.QueryRow(`SELECT "Misc", "Misc_2" FROM customers LIMIT 1`).Scan(&first, &second); err != nil {
		t.Fatalf("reading de-duplicated columns failed: %v", err)
	}
	if first != "a" || second != "c" {
		t.Fatalf("unexpected values: %q %q", first, second)
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := quoteIdent(`weird "col"`); got != `"weird ""col"""` {
		t.Fatalf("unexpected quoting: %s", got)
	}
}
