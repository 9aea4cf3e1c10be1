// Package viewer holds the interactive state of the chart: which year is
// selected, which controls are enabled and what the tooltip shows.
package viewer

import (
	"errors"
	"fmt"

	"github.com/anrid/world-fertility/pkg/plot"
	"github.com/anrid/world-fertility/pkg/stats"
)

var (
	ErrNoData      = errors.New("dataset is empty")
	ErrUnknownYear = errors.New("year not in dataset")
	ErrAtFirstYear = errors.New("already at the first year")
	ErrAtLastYear  = errors.New("already at the last year")
)

// Option is one entry of the year dropdown.
type Option struct {
	Year     int
	Selected bool
}

// Controls is the state of the control surface for the selected year.
type Controls struct {
	Year         int
	Options      []Option
	PrevDisabled bool
	NextDisabled bool
}

// State owns the dataset and the current selection. It is not safe for
// concurrent use; give each request or session its own State.
type State struct {
	dataset *stats.Dataset
	layout  plot.Layout

	years       []int
	present     map[int]bool
	first, last int

	year    int
	Tooltip Tooltip
}

// New creates the state with defaultYear selected, or the first year of the
// dataset when defaultYear is not present.
func New(ds *stats.Dataset, layout plot.Layout, defaultYear int) (*State, error) {
	first, last, ok := ds.YearRange()
	if !ok {
		return nil, ErrNoData
	}

	s := &State{
		dataset: ds,
		layout:  layout,
		years:   ds.Years(),
		present: make(map[int]bool),
		first:   first,
		last:    last,
	}
	for _, y := range s.years {
		s.present[y] = true
	}

	s.year = s.years[0]
	if s.present[defaultYear] {
		s.year = defaultYear
	}
	return s, nil
}

func (s *State) Year() int { return s.year }

// Bounds returns the first and last year of the dataset.
func (s *State) Bounds() (first, last int) { return s.first, s.last }

// Years returns the dropdown years in first-seen order.
func (s *State) Years() []int { return append([]int(nil), s.years...) }

func (s *State) Select(year int) error {
	if !s.present[year] {
		return fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	s.year = year
	return nil
}

// Prev moves to the previous year. If the year before is missing from the
// dataset the nearest earlier year is selected.
func (s *State) Prev() error {
	if s.year <= s.first {
		return ErrAtFirstYear
	}
	for y := s.year - 1; y >= s.first; y-- {
		if s.present[y] {
			s.year = y
			return nil
		}
	}
	return ErrAtFirstYear
}

// Next moves to the next year, skipping years missing from the dataset.
func (s *State) Next() error {
	if s.year >= s.last {
		return ErrAtLastYear
	}
	for y := s.year + 1; y <= s.last; y++ {
		if s.present[y] {
			s.year = y
			return nil
		}
	}
	return ErrAtLastYear
}

func (s *State) Controls() Controls {
	c := Controls{
		Year:         s.year,
		Options:      make([]Option, len(s.years)),
		PrevDisabled: s.year == s.first,
		NextDisabled: s.year == s.last,
	}
	for i, y := range s.years {
		c.Options[i] = Option{Year: y, Selected: y == s.year}
	}
	return c
}

// Render redraws the chart for the selected year from scratch. The tooltip
// belongs to the previous drawing and is hidden.
func (s *State) Render() (*plot.Scene, error) {
	s.Tooltip = Tooltip{}
	return plot.Build(s.dataset.Filter(s.year), s.year, s.layout)
}
