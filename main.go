package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	inPath := flag.String("in", "", "input CSV path (required)")
	outPath := flag.String("out", "", "output CSV path (required)")
	sqlitePath := flag.String("sqlite", "", "optional SQLite database path")
	configPath := flag.String("config", "", "config.yaml path (default ./config.yaml)")
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: csvmap --in dirty.csv --out clean.csv [--sqlite customers.db]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := LoadConfig(*configPath)
	rules, err := activeRules(cfg)
	if err != nil {
		log.Fatalf("Failed to load pattern rules: %v", err)
	}

	table, err := readTable(*inPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	cols := table.Columns()
	results := resolveCollisions(classifyColumns(cols, rules, newDisambiguator(cfg), cfg))
	normalized := normalizeColumns(results)
	out := assembleTable(normalized)

	if err := writeTable(*outPath, out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	if *sqlitePath != "" {
		if err := writeSQLite(*sqlitePath, cfg.SQLiteTable, out); err != nil {
			log.Fatalf("Failed to write sqlite: %v", err)
		}
	}

	fmt.Print(renderMappingReport(results, normalized))
	fmt.Printf("\nSaved: %s (%d columns, %d rows)\n", *outPath, len(out.Columns), out.RowCount())
	if *sqlitePath != "" {
		fmt.Printf("SQLite: %s (table: %s)\n", *sqlitePath, cfg.SQLiteTable)
	}
}
