package domain

import "time"

// Source column names of the wide case table.
const (
	ColumnUID           = "UID"
	ColumnISO2          = "iso2"
	ColumnISO3          = "iso3"
	ColumnCode3         = "code3"
	ColumnFIPS          = "FIPS"
	ColumnAdmin2        = "Admin2"
	ColumnProvinceState = "Province_State"
	ColumnCountryRegion = "Country_Region"
	ColumnLat           = "Lat"
	ColumnLong          = "Long_"
	ColumnCombinedKey   = "Combined_Key"

	// ColumnCounty is the name Admin2 is exposed under after loading.
	ColumnCounty = "County"
)

// DroppedColumns lists the identifying columns removed at load time.
var DroppedColumns = []string{
	ColumnUID, ColumnCountryRegion, ColumnISO2, ColumnISO3,
	ColumnCode3, ColumnLat, ColumnLong, ColumnFIPS,
}

// CaseRow is one county of the case table.
type CaseRow struct {
	County        string
	ProvinceState string
	CombinedKey   string
	Counts        []int64 // aligned with CaseTable.Dates
}

// CaseTable is the loaded wide table: identity fields per row plus one
// cumulative count per date column.
type CaseTable struct {
	Dates []string // source M/D/YY keys, file order
	Rows  []CaseRow
}

// SelectedSeries is a single county's cumulative counts with the source
// date keys still in M/D/YY form.
type SelectedSeries struct {
	DisplayName string
	Dates       []string
	Counts      []int64
}

// Point pairs a normalized date key with a case count.
type Point struct {
	Date  string
	Cases int64
}

// NormalizedSeries holds cumulative counts keyed by normalized dates.
type NormalizedSeries []Point

// DeltaSeries holds day-over-day new cases keyed by the later date.
type DeltaSeries []Point

// DatedPoint is a Point whose date has been parsed.
type DatedPoint struct {
	Date  time.Time
	Cases int64
}

// DatedSeries is the date-indexed form read back from the persisted file.
type DatedSeries []DatedPoint

// Lookup returns the count recorded on the given day.
func (s DatedSeries) Lookup(day time.Time) (int64, bool) {
	for _, p := range s {
		if sameDay(p.Date, day) {
			return p.Cases, true
		}
	}
	return 0, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
