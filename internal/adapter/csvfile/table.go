package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/couchcryptid/covid-case-report/internal/domain"
)

// CaseFile reads the wide case table from a fixed path.
// It implements pipeline.Loader.
type CaseFile struct {
	path string
}

// NewCaseFile returns a CaseFile for path.
func NewCaseFile(path string) *CaseFile {
	return &CaseFile{path: path}
}

// Load reads and parses the file.
func (c *CaseFile) Load(_ context.Context) (domain.CaseTable, error) {
	return LoadCaseTable(c.path)
}

// WriteCaseTableFile writes table to path in the source layout.
func WriteCaseTableFile(path string, table domain.CaseTable) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteCaseTable(w, table)
	})
}

// WriteCaseTable encodes table in the source column layout. Columns dropped
// at load time are filled with U.S. defaults and a synthetic UID.
func WriteCaseTable(w io.Writer, table domain.CaseTable) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, requiredColumns...), table.Dates...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		// UID, iso2, iso3, code3, FIPS, Admin2, Province_State,
		// Country_Region, Lat, Long_, Combined_Key
		rec := make([]string, 0, len(header))
		rec = append(rec,
			strconv.Itoa(84000000+i+1), "US", "USA", "840", "",
			row.County, row.ProvinceState,
			"US", "0.0", "0.0",
			row.CombinedKey,
		)
		for _, n := range row.Counts {
			rec = append(rec, strconv.FormatInt(n, 10))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
