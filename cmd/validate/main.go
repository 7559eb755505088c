// Command validate checks a case table and the persisted cases-by-date file
// against each other: source integrity, selection parity, and the daily
// series that would be derived from it.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input time_series_covid_19_confirmed_US.csv \
//	  -series output/cases_by_date.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/covid-case-report/internal/adapter/csvfile"
	"github.com/couchcryptid/covid-case-report/internal/config"
	"github.com/couchcryptid/covid-case-report/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", config.InputPath, "path to the wide case table")
	series := flag.String("series", "", "path to the persisted cases-by-date file")
	region := flag.String("region", domain.DefaultTarget.Region, "Province_State to select from")
	key := flag.String("key", domain.DefaultTarget.CombinedKey, "Combined_Key of the county")
	flag.Parse()

	if *series == "" {
		flag.Usage()
		os.Exit(1)
	}

	target := domain.Target{Region: *region, CombinedKey: *key}
	if code := run(*input, *series, target); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, seriesPath string, target domain.Target) int {
	ctx := context.Background()

	fmt.Println("=== Case Report Integrity Validation ===")
	fmt.Println()

	table, err := csvfile.NewCaseFile(inputPath).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load case table: %v\n", err)
		return 1
	}
	persisted, err := csvfile.NewSeriesFile(seriesPath).Read(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load series file: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSourceIntegrity(table),
		validateSelectionParity(table, target, persisted),
		validateDailySeries(persisted),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d rows x %d dates in case table, %d points in series file\n",
		len(table.Rows), len(table.Dates), len(persisted))

	for _, p := range phases {
		for _, n := range p.notes {
			fmt.Printf("  Note: %s\n", n)
		}
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Source Integrity ──
// Date keys normalize and ascend, keys are unique, rows cover every date.

func validateSourceIntegrity(table domain.CaseTable) *phase {
	p := &phase{name: "Phase 1: Source Integrity (case table)"}

	dates, err := domain.NormalizeDates(table.Dates)
	if err != nil {
		p.errorf("date columns: %v", err)
	} else {
		var prev time.Time
		for i, d := range dates {
			cur, err := domain.ParseSeriesDate(d)
			if err != nil {
				p.errorf("date column %q: %v", table.Dates[i], err)
				continue
			}
			if !prev.IsZero() && !cur.After(prev) {
				p.errorf("date column %q does not follow %q", table.Dates[i], table.Dates[i-1])
			}
			prev = cur
		}
	}

	seen := make(map[string]int, len(table.Rows))
	for i, row := range table.Rows {
		if first, ok := seen[row.CombinedKey]; ok {
			p.errorf("row %d: %s %q duplicates row %d", i, domain.ColumnCombinedKey, row.CombinedKey, first)
		} else {
			seen[row.CombinedKey] = i
		}
		if len(row.Counts) != len(table.Dates) {
			p.errorf("row %d (%s): %d counts for %d date columns", i, row.CombinedKey, len(row.Counts), len(table.Dates))
		}
	}
	return p
}

// ── Phase 2: Selection Parity ──
// The series file must equal the normalized selection of the case table.

func validateSelectionParity(table domain.CaseTable, target domain.Target, persisted domain.DatedSeries) *phase {
	p := &phase{name: "Phase 2: Selection Parity (series vs table)"}

	selected, err := target.Select(table)
	if err != nil {
		p.errorf("select: %v", err)
		return p
	}
	normalized, err := domain.Normalize(selected)
	if err != nil {
		p.errorf("normalize: %v", err)
		return p
	}

	if len(normalized) != len(persisted) {
		p.errorf("point count: table has %d, series file has %d", len(normalized), len(persisted))
		return p
	}
	for i, want := range normalized {
		day, err := domain.ParseSeriesDate(want.Date)
		if err != nil {
			p.errorf("point %d: %v", i, err)
			continue
		}
		got := persisted[i]
		if !got.Date.Equal(day) {
			p.errorf("point %d: date %s, series file has %s", i, want.Date, got.Date.Format("2006-01-02"))
		}
		if got.Cases != want.Cases {
			p.errorf("point %d (%s): cases %d, series file has %d", i, want.Date, want.Cases, got.Cases)
		}
	}
	return p
}

// ── Phase 3: Daily Series ──
// Deltas are non-negative and one shorter than the cumulative series.

func validateDailySeries(persisted domain.DatedSeries) *phase {
	p := &phase{name: "Phase 3: Daily Series (derived deltas)"}

	normalized := make(domain.NormalizedSeries, len(persisted))
	for i, pt := range persisted {
		normalized[i] = domain.Point{Date: pt.Date.Format(domain.SeriesDateLayout), Cases: pt.Cases}
	}
	daily := domain.DeriveDeltas(normalized)

	if want := max(len(normalized)-1, 0); len(daily) != want {
		p.errorf("daily length: expected %d, got %d", want, len(daily))
	}
	var corrections int
	for i, d := range daily {
		if d.Cases < 0 {
			p.errorf("%s: negative daily count %d", d.Date, d.Cases)
		}
		if normalized[i+1].Cases < normalized[i].Cases {
			corrections++
		}
	}
	if corrections > 0 {
		p.notef("%d downward correction(s) in the cumulative series are plotted as positive deltas", corrections)
	}
	return p
}
