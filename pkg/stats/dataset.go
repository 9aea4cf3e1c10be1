package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
)

// Dataset is the full set of records, loaded once and never mutated.
type Dataset struct {
	Source  string
	Records []*Record
	Loaded  time.Time
}

// Load parses the source rows into a dataset. The first non-empty row must be
// a header naming at least the required columns.
func Load(s *Source) (*Dataset, error) {
	ds := &Dataset{Source: s.URL}

	var header map[string]int
	var loadErr error
	line := 0

	err := ExtractRows(s, func(row []string) {
		line++
		if loadErr != nil || isEmptyRow(row) {
			return
		}

		if header == nil {
			header, loadErr = parseHeader(row)
			return
		}

		rec, err := parseRecord(header, row)
		if err != nil {
			loadErr = fmt.Errorf("%w: row %d: %v", ErrMalformedRow, line, err)
			return
		}
		ds.Records = append(ds.Records, rec)
	})
	if err != nil {
		return nil, err
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if header == nil {
		return nil, ErrNoHeader
	}

	ds.Loaded = time.Now()
	return ds, nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseHeader(row []string) (map[string]int, error) {
	header := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}
	for _, c := range Columns {
		if _, ok := header[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return header, nil
}

func parseRecord(header map[string]int, row []string) (*Record, error) {
	rec := &Record{Raw: make(map[string]string, len(header))}
	for name, i := range header {
		if i < len(row) {
			rec.Raw[name] = strings.TrimSpace(row[i])
		}
	}

	rec.Location = rec.Raw[ColumnLocation]

	year, err := parseYear(rec.Raw[ColumnTime])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", ColumnTime, err)
	}
	rec.Time = year

	for _, f := range []struct {
		column string
		dst    *float64
	}{
		{ColumnFertilityRate, &rec.FertilityRate},
		{ColumnLifeExpectancy, &rec.LifeExpectancy},
		{ColumnPopMlns, &rec.PopMlns},
	} {
		v, err := parseDecimal(rec.Raw[f.column])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.column, err)
		}
		*f.dst = v
	}
	return rec, nil
}

func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a decimal number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("'%s' is not a finite number", s)
	}
	return v, nil
}

func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	v, err := parseDecimal(s)
	if err != nil || v != math.Trunc(v) {
		return 0, fmt.Errorf("'%s' is not a year", s)
	}
	return int(v), nil
}

// Years returns the distinct years in the order they first appear.
func (ds *Dataset) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range ds.Records {
		if !seen[r.Time] {
			seen[r.Time] = true
			years = append(years, r.Time)
		}
	}
	return years
}

// YearRange returns the smallest and largest year. ok is false for an empty
// dataset.
func (ds *Dataset) YearRange() (first, last int, ok bool) {
	if len(ds.Records) == 0 {
		return 0, 0, false
	}
	first, last = ds.Records[0].Time, ds.Records[0].Time
	for _, r := range ds.Records[1:] {
		first = min(first, r.Time)
		last = max(last, r.Time)
	}
	return first, last, true
}

func (ds *Dataset) HasYear(year int) bool {
	for _, r := range ds.Records {
		if r.Time == year {
			return true
		}
	}
	return false
}

// Filter returns the records of one year in dataset order.
func (ds *Dataset) Filter(year int) []*Record {
	var view []*Record
	for _, r := range ds.Records {
		if r.Time == year {
			view = append(view, r)
		}
	}
	return view
}

func (ds *Dataset) Info(w io.Writer) {
	locations := make(map[string]bool)
	for _, r := range ds.Records {
		locations[r.Location] = true
	}
	first, last, _ := ds.YearRange()

	fmt.Fprintf(w, `
	Source     : %s
	Years      : %d - %d (%d distinct)
	Records    : %d
	Locations  : %d
	`, ds.Source, first, last, len(ds.Years()), len(ds.Records), len(locations))
	fmt.Fprintln(w, "")
}

// ExportXLSX writes the records of year as a workbook. Year 0 exports the
// whole dataset.
func (ds *Dataset) ExportXLSX(w io.Writer, year int) error {
	records := ds.Records
	if year != 0 {
		records = ds.Filter(year)
	}

	const sheet = "Data"
	f := xlsx.NewFile()
	f.SetSheetName("Sheet1", sheet)

	set := func(col, row int, v interface{}) error {
		cell, err := xlsx.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for i, c := range Columns {
		if err := set(i+1, 1, c); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, r := range records {
		row := i + 2
		values := []interface{}{r.Time, r.Location, r.FertilityRate, r.LifeExpectancy, r.PopMlns}
		for j, v := range values {
			if err := set(j+1, row, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	return f.Write(w)
}

// Dump writes o to w as indented JSON.
func Dump(w io.Writer, o interface{}) error {
	js, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(js))
	return err
}
