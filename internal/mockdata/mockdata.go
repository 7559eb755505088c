// Package mockdata generates synthetic case tables in the source layout so
// the report can be exercised without the upstream dataset.
package mockdata

import (
	"time"

	"github.com/couchcryptid/covid-case-report/internal/domain"
)

// SourceDateLayout formats a day as an M/D/YY column key.
const SourceDateLayout = "1/2/06"

// First and last reporting day of the upstream file the report was built for.
var (
	FirstDay = time.Date(2020, time.January, 22, 0, 0, 0, 0, time.UTC)
	LastDay  = time.Date(2021, time.May, 2, 0, 0, 0, 0, time.UTC)
)

// County describes one generated row. Final is the cumulative count on the
// last day.
type County struct {
	Name  string
	State string
	Final int64
}

// DefaultCounties mixes California counties with rows from other states so
// region filtering has something to discard.
var DefaultCounties = []County{
	{Name: "Autauga", State: "Alabama", Final: 6500},
	{Name: "Alameda", State: "California", Final: 85000},
	{Name: "Los Angeles", State: "California", Final: 1230000},
	{Name: "San Diego", State: "California", Final: 275000},
	{Name: "Cook", State: "Illinois", Final: 520000},
	{Name: "King", State: "Washington", Final: 95000},
}

// Generate builds a table with one date column per day in [first, last].
// Counts grow quadratically to each county's Final value; every 45th day
// carries a small downward correction like the ones found in real reports.
// A single-day table holds the Final values.
func Generate(first, last time.Time, counties []County) domain.CaseTable {
	var table domain.CaseTable
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		table.Dates = append(table.Dates, d.Format(SourceDateLayout))
	}

	n := int64(len(table.Dates))
	for _, c := range counties {
		row := domain.CaseRow{
			County:        c.Name,
			ProvinceState: c.State,
			CombinedKey:   c.Name + ", " + c.State + ", US",
			Counts:        make([]int64, n),
		}
		for i := int64(0); i < n; i++ {
			v := c.Final
			if n > 1 {
				v = c.Final * i * i / ((n - 1) * (n - 1))
			}
			if i%45 == 44 {
				v -= v / 200
			}
			row.Counts[i] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
