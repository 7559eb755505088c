package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/couchcryptid/covid-case-report/internal/domain"
)

// Header of the persisted series file.
var seriesHeader = []string{"Date", "Number of Cases"}

// SeriesFile persists a normalized series as a two-column CSV and reads it
// back as a date-indexed series.
// It implements pipeline.SeriesStore.
type SeriesFile struct {
	path string
}

// NewSeriesFile returns a SeriesFile writing to path.
func NewSeriesFile(path string) *SeriesFile {
	return &SeriesFile{path: path}
}

// Path returns the file location.
func (s *SeriesFile) Path() string { return s.path }

// Write replaces the file with the given series.
func (s *SeriesFile) Write(_ context.Context, series domain.NormalizedSeries) error {
	return writeFile(s.path, func(w io.Writer) error {
		return WriteSeries(w, series)
	})
}

// Read loads the file written by Write.
func (s *SeriesFile) Read(_ context.Context) (domain.DatedSeries, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrIO, s.path, err)
	}
	defer f.Close()

	series, err := ReadSeries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return series, nil
}

// WriteSeries encodes the header and one row per point.
func WriteSeries(w io.Writer, series domain.NormalizedSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, p := range series {
		if err := cw.Write([]string{p.Date, strconv.FormatInt(p.Cases, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeries decodes a series file, parsing each date key.
func ReadSeries(r io.Reader) (domain.DatedSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(seriesHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrDataLoad, err)
	}
	if header[0] != seriesHeader[0] || header[1] != seriesHeader[1] {
		return nil, fmt.Errorf("%w: unexpected header %q", domain.ErrDataLoad, header)
	}

	series := domain.DatedSeries{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
		}

		date, err := domain.ParseSeriesDate(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
		}
		cases, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid count %q for %s", domain.ErrDataLoad, rec[1], rec[0])
		}
		series = append(series, domain.DatedPoint{Date: date, Cases: cases})
	}
	return series, nil
}
