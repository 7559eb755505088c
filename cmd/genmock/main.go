// Command genmock writes a synthetic wide-format county case table in the
// layout of the upstream confirmed-cases file. It runs the domain package
// over the generated rows and prints the figures tests assert against.
//
// Usage:
//
//	go run ./cmd/genmock -out time_series_covid_19_confirmed_US.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/couchcryptid/covid-case-report/internal/adapter/csvfile"
	"github.com/couchcryptid/covid-case-report/internal/config"
	"github.com/couchcryptid/covid-case-report/internal/domain"
	"github.com/couchcryptid/covid-case-report/internal/mockdata"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", config.InputPath, "output path for the generated case table")
	first := flag.String("first", mockdata.FirstDay.Format(time.DateOnly), "first reporting day (YYYY-MM-DD)")
	last := flag.String("last", mockdata.LastDay.Format(time.DateOnly), "last reporting day (YYYY-MM-DD)")
	flag.Parse()

	from, err := time.Parse(time.DateOnly, *first)
	if err != nil {
		return fmt.Errorf("parse -first: %w", err)
	}
	to, err := time.Parse(time.DateOnly, *last)
	if err != nil {
		return fmt.Errorf("parse -last: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("-last %s is before -first %s", *last, *first)
	}

	table := mockdata.Generate(from, to, mockdata.DefaultCounties)
	log.Printf("generated %d rows x %d dates", len(table.Rows), len(table.Dates))

	if err := csvfile.WriteCaseTableFile(*out, table); err != nil {
		return err
	}
	log.Printf("wrote case table: %s", *out)

	return printStats(table)
}

func printStats(table domain.CaseTable) error {
	selected, err := domain.DefaultTarget.Select(table)
	if err != nil {
		return err
	}
	normalized, err := domain.Normalize(selected)
	if err != nil {
		return err
	}
	daily := domain.DeriveDeltas(normalized)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows: %d, dates: %d (%s .. %s)\n",
		len(table.Rows), len(table.Dates), table.Dates[0], table.Dates[len(table.Dates)-1])
	fmt.Printf("Selected: %s\n", selected.DisplayName)
	fmt.Printf("First point: %s=%d\n", normalized[0].Date, normalized[0].Cases)
	fmt.Printf("Last point: %s=%d\n", normalized[len(normalized)-1].Date, normalized[len(normalized)-1].Cases)

	var peak domain.Point
	var corrections int
	for i, p := range daily {
		if i == 0 || p.Cases > peak.Cases {
			peak = p
		}
		if normalized[i+1].Cases < normalized[i].Cases {
			corrections++
		}
	}
	fmt.Printf("Daily points: %d, peak: %s=%d, downward corrections: %d\n",
		len(daily), peak.Date, peak.Cases, corrections)
	return nil
}
