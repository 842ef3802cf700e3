package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// writeSQLite replaces the named table in a SQLite database with the
// canonical output: typed columns, one row per source row, nulls preserved.
func writeSQLite(path, table string, out OutputTable) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	defs := make([]string, len(out.Columns))
	names := make([]string, len(out.Columns))
	holders := make([]string, len(out.Columns))
	for i, col := range out.Columns {
		names[i] = quoteIdent(col.Name())
		defs[i] = names[i] + " " + sqliteType(col.Field.ValueType())
		holders[i] = "?"
	}

	if _, err := db.Exec("DROP TABLE IF EXISTS " + quoteIdent(table)); err != nil {
		return fmt.Errorf("drop table %s: %w", table, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(holders, ", "))
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	rows := out.RowCount()
	args := make([]any, len(out.Columns))
	for i := 0; i < rows; i++ {
		for j, col := range out.Columns {
			args[j] = col.Values[i]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func sqliteType(t ValueType) string {
	switch t {
	case TypeCurrency:
		return "REAL"
	case TypeInteger:
		return "INTEGER"
	case TypeBoolean:
		return "INTEGER"
	case TypeDate:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
