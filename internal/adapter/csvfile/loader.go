package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/covid-case-report/internal/domain"
)

// requiredColumns are the non-date columns of the source table, in file order.
var requiredColumns = []string{
	domain.ColumnUID, domain.ColumnISO2, domain.ColumnISO3, domain.ColumnCode3,
	domain.ColumnFIPS, domain.ColumnAdmin2, domain.ColumnProvinceState,
	domain.ColumnCountryRegion, domain.ColumnLat, domain.ColumnLong,
	domain.ColumnCombinedKey,
}

var identityColumns = func() map[string]bool {
	m := make(map[string]bool, len(requiredColumns))
	for _, c := range requiredColumns {
		m[c] = true
	}
	return m
}()

// LoadCaseTable opens the wide case CSV at path and loads it.
func LoadCaseTable(path string) (domain.CaseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.CaseTable{}, fmt.Errorf("%w: open %s: %v", domain.ErrDataLoad, path, err)
	}
	defer f.Close()

	table, err := ReadCaseTable(f)
	if err != nil {
		return domain.CaseTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadCaseTable parses a wide case CSV. The identifying columns are dropped,
// Admin2 becomes CaseRow.County, and every other column is treated as a date.
func ReadCaseTable(r io.Reader) (domain.CaseTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return domain.CaseTable{}, fmt.Errorf("%w: read header: %v", domain.ErrDataLoad, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return domain.CaseTable{}, fmt.Errorf("%w: missing column %q", domain.ErrDataLoad, col)
		}
	}

	var table domain.CaseTable
	var dateIdx []int
	for i, h := range header {
		if identityColumns[h] {
			continue
		}
		table.Dates = append(table.Dates, h)
		dateIdx = append(dateIdx, i)
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return domain.CaseTable{}, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
		}

		row := domain.CaseRow{
			County:        rec[index[domain.ColumnAdmin2]],
			ProvinceState: rec[index[domain.ColumnProvinceState]],
			CombinedKey:   rec[index[domain.ColumnCombinedKey]],
			Counts:        make([]int64, len(dateIdx)),
		}
		for j, col := range dateIdx {
			n, err := parseCount(rec[col])
			if err != nil {
				return domain.CaseTable{}, fmt.Errorf("%w: line %d column %q: %v",
					domain.ErrDataLoad, line, header[col], err)
			}
			row.Counts[j] = n
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// parseCount accepts integers and integral floats ("12.0"), which appear when
// the file has been round-tripped through a spreadsheet.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return checkCount(n, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return checkCount(int64(f), s)
}

// checkCount rejects negative cumulative counts.
func checkCount(n int64, s string) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative count %q", s)
	}
	return n, nil
}
