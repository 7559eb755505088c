package domain

import "fmt"

// Target identifies the county a report is built for. When Ordinal is set
// the county is picked by its position among the region's rows; otherwise
// it is matched by CombinedKey.
type Target struct {
	Region      string
	CombinedKey string
	Ordinal     *int
}

// DefaultTarget is the county the report command builds.
var DefaultTarget = Target{
	Region:      "California",
	CombinedKey: "Los Angeles, California, US",
}

// Select applies the target's selection mode to the table.
func (t Target) Select(table CaseTable) (SelectedSeries, error) {
	if t.Ordinal != nil {
		return SelectByOrdinal(table, t.Region, *t.Ordinal)
	}
	return SelectByKey(table, t.Region, t.CombinedKey)
}

// SelectByOrdinal picks the index-th row among those whose Province_State
// equals region. Positions shift whenever the upstream file reorders rows;
// prefer SelectByKey.
func SelectByOrdinal(table CaseTable, region string, index int) (SelectedSeries, error) {
	rows := regionRows(table, region)
	if len(rows) == 0 {
		return SelectedSeries{}, fmt.Errorf("%w: no rows for region %q", ErrSelection, region)
	}
	if index < 0 || index >= len(rows) {
		return SelectedSeries{}, fmt.Errorf("%w: index %d out of range for region %q (%d rows)",
			ErrSelection, index, region, len(rows))
	}
	return selected(table, rows[index]), nil
}

// SelectByKey picks the row of region whose Combined_Key equals key.
func SelectByKey(table CaseTable, region, key string) (SelectedSeries, error) {
	rows := regionRows(table, region)
	if len(rows) == 0 {
		return SelectedSeries{}, fmt.Errorf("%w: no rows for region %q", ErrSelection, region)
	}
	for _, r := range rows {
		if r.CombinedKey == key {
			return selected(table, r), nil
		}
	}
	return SelectedSeries{}, fmt.Errorf("%w: %q not found in region %q", ErrSelection, key, region)
}

func regionRows(table CaseTable, region string) []CaseRow {
	var rows []CaseRow
	for _, r := range table.Rows {
		if r.ProvinceState == region {
			rows = append(rows, r)
		}
	}
	return rows
}

// selected copies the row's counts so later stages cannot mutate the table.
func selected(table CaseTable, row CaseRow) SelectedSeries {
	dates := make([]string, len(table.Dates))
	copy(dates, table.Dates)
	counts := make([]int64, len(row.Counts))
	copy(counts, row.Counts)
	return SelectedSeries{
		DisplayName: row.CombinedKey,
		Dates:       dates,
		Counts:      counts,
	}
}
