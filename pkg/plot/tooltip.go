package plot

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/world-fertility/pkg/stats"
)

// Tooltip is the hover text of a circle.
type Tooltip struct {
	Country        string
	Year           string
	LifeExpectancy string
	Population     string
}

func NewTooltip(r *stats.Record) Tooltip {
	le := r.RawValue(stats.ColumnLifeExpectancy)
	if le == "" {
		le = strconv.FormatFloat(r.LifeExpectancy, 'f', -1, 64)
	}
	return Tooltip{
		Country:        r.Location,
		Year:           strconv.Itoa(r.Time),
		LifeExpectancy: le,
		Population:     FormatPopulation(r.PopMlns),
	}
}

// FormatPopulation converts millions to a whole number of people with
// thousands separators, e.g. 1.234 -> "1,234,000".
func FormatPopulation(mlns float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", int64(math.Round(mlns*1_000_000)))
}

func (t Tooltip) Lines() []string {
	return []string{
		"Country: " + t.Country,
		"Year: " + t.Year,
		"Life expectancy: " + t.LifeExpectancy,
		"Population: " + t.Population,
	}
}
