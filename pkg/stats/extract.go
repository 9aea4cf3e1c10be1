package stats

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"

	"github.com/anrid/world-fertility/pkg/logging"
)

// ExtractRows calls handler for every row of the source, header included.
// The format is picked from the source URL suffix; anything that is not an
// Excel workbook is read as CSV.
func ExtractRows(s *Source, handler func(row []string)) error {
	switch lower := strings.ToLower(s.URL); {
	case strings.HasSuffix(lower, ".xlsx"):
		return ExtractRowsFromXLSX(s, handler)
	case strings.HasSuffix(lower, ".xls"):
		return ExtractRowsFromXLS(s, handler)
	default:
		return ExtractRowsFromCSV(s, handler)
	}
}

func ExtractRowsFromCSV(s *Source, handler func(row []string)) error {
	logging.Debugf("Loading CSV data: %s", s.URL)

	r := csv.NewReader(bytes.NewReader(s.Content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read CSV file '%s': %w", s.Title, err)
		}
		handler(row)
	}
}

func ExtractRowsFromXLS(s *Source, handler func(row []string)) error {
	logging.Debugf("Loading XLS data: %s", s.URL)

	wb, err := xls.OpenReader(bytes.NewReader(s.Content), "utf-8")
	if err != nil {
		return fmt.Errorf("could not read XLS file '%s' (%s): %w", s.Title, s.URL, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return fmt.Errorf("XLS file '%s' has no sheets", s.Title)
	}
	logging.Debugf("Sheet %q has %d rows", sheet.Name, sheet.MaxRow)

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		handler(cols)
	}
	return nil
}

func ExtractRowsFromXLSX(s *Source, handler func(row []string)) error {
	logging.Debugf("Loading XLSX data: %s", s.URL)

	wb, err := xlsx.OpenReader(bytes.NewReader(s.Content))
	if err != nil {
		return fmt.Errorf("could not read XLSX file '%s' (%s): %w", s.Title, s.URL, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("XLSX file '%s' has no sheets", s.Title)
	}
	defaultSheet := sheets[0]

	rows, err := wb.GetRows(defaultSheet)
	if err != nil {
		return fmt.Errorf("could not get rows for default sheet '%s': %w", defaultSheet, err)
	}
	logging.Debugf("Sheet %q has %d rows", defaultSheet, len(rows))

	for _, r := range rows {
		handler(r)
	}
	return nil
}
