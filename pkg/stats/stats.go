package stats

import "errors"

// Column names expected in the header row of a dataset.
const (
	ColumnTime           = "time"
	ColumnLocation       = "location"
	ColumnFertilityRate  = "fertility_rate"
	ColumnLifeExpectancy = "life_expectancy"
	ColumnPopMlns        = "pop_mlns"
)

// Columns lists the required columns in canonical order.
var Columns = []string{
	ColumnTime,
	ColumnLocation,
	ColumnFertilityRate,
	ColumnLifeExpectancy,
	ColumnPopMlns,
}

var (
	ErrNoHeader      = errors.New("dataset has no header row")
	ErrMissingColumn = errors.New("dataset is missing a required column")
	ErrMalformedRow  = errors.New("malformed dataset row")
)

// Record is one country-year observation.
type Record struct {
	Location       string
	Time           int
	FertilityRate  float64
	LifeExpectancy float64
	PopMlns        float64

	// Raw holds the source cells by column name, exactly as they were read.
	Raw map[string]string `json:",omitempty"`
}

// RawValue returns the source text of a column, falling back to "".
func (r *Record) RawValue(column string) string {
	if r.Raw == nil {
		return ""
	}
	return r.Raw[column]
}

// Limits holds the min/max of the plotted dimensions of a filtered view.
type Limits struct {
	XMin, XMax     float64
	YMin, YMax     float64
	PopMin, PopMax float64
}

// FindLimits computes the min/max fertility rate (x), life expectancy (y) and
// population over view. ok is false when view is empty.
func FindLimits(view []*Record) (l Limits, ok bool) {
	if len(view) == 0 {
		return Limits{}, false
	}

	first := view[0]
	l = Limits{
		XMin: first.FertilityRate, XMax: first.FertilityRate,
		YMin: first.LifeExpectancy, YMax: first.LifeExpectancy,
		PopMin: first.PopMlns, PopMax: first.PopMlns,
	}

	for _, r := range view[1:] {
		l.XMin = min(l.XMin, r.FertilityRate)
		l.XMax = max(l.XMax, r.FertilityRate)
		l.YMin = min(l.YMin, r.LifeExpectancy)
		l.YMax = max(l.YMax, r.LifeExpectancy)
		l.PopMin = min(l.PopMin, r.PopMlns)
		l.PopMax = max(l.PopMax, r.PopMlns)
	}
	return l, true
}
