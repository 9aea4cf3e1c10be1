package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoadXLS(t *testing.T) {
	src := NewSource("testdata/sample.xls")
	if err := src.Fetch(0); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	ds, err := Load(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := mustLoadSample(t)
	if len(ds.Records) != len(want.Records) {
		t.Fatalf("records = %d, want %d", len(ds.Records), len(want.Records))
	}
	for i, r := range ds.Records {
		w := want.Records[i]
		if r.Location != w.Location || r.Time != w.Time || r.FertilityRate != w.FertilityRate ||
			r.LifeExpectancy != w.LifeExpectancy || r.PopMlns != w.PopMlns {
			t.Errorf("row %d = %+v, want %+v", i, r, w)
		}
	}

	// Numeric cells come back in their shortest decimal form.
	if raw := ds.Records[1].RawValue(ColumnLifeExpectancy); raw != "47" {
		t.Errorf("raw life expectancy = %q, want %q", raw, "47")
	}
}

func TestExtractRowsFromXLSHeader(t *testing.T) {
	src := NewSource("testdata/sample.xls")
	if err := src.Fetch(0); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	var rows [][]string
	if err := ExtractRowsFromXLS(src, func(row []string) { rows = append(rows, row) }); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 9 {
		t.Fatalf("rows = %d, want 9", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != strings.Join(Columns, ",") {
		t.Errorf("header = %q", got)
	}
	if got := strings.Join(rows[1], ","); got != "1961,Alpha,5.2,48.1,1.234" {
		t.Errorf("first row = %q", got)
	}
}

func TestExtractRowsFromXLSGarbage(t *testing.T) {
	src := &Source{URL: "broken.xls", Title: "broken.xls", Content: []byte("not a workbook")}
	if err := ExtractRowsFromXLS(src, func([]string) {}); err == nil {
		t.Fatal("expected an error for a non-OLE2 file")
	}
}

func TestDump(t *testing.T) {
	ds := mustLoadSample(t)

	var buf bytes.Buffer
	if err := Dump(&buf, ds.Filter(1961)); err != nil {
		t.Fatalf("dump: %v", err)
	}

	var got []Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("dump is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[0].Location != "Alpha" || got[1].Location != "Beta" {
		t.Errorf("dumped records = %+v", got)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("dump should end with a newline")
	}
}
