package plot

import (
	"errors"
	"fmt"

	"github.com/anrid/world-fertility/pkg/stats"
)

var ErrEmptyView = errors.New("no records to plot")

// Text is a static label drawn at a fixed position.
type Text struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Transform string  `yaml:"transform,omitempty"`
	FontSize  string  `yaml:"font_size"`
	Content   string  `yaml:"text"`
}

// Layout holds the fixed geometry and styling of the chart.
type Layout struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	XRange      [2]float64 `yaml:"x_range"`
	YRange      [2]float64 `yaml:"y_range"`
	RadiusRange [2]float64 `yaml:"radius_range"`
	XPadding    float64    `yaml:"x_padding"`
	YPadding    float64    `yaml:"y_padding"`
	TickCount   int        `yaml:"tick_count"`
	Fill        string     `yaml:"fill"`
	Title       Text       `yaml:"title"`
	XLabel      Text       `yaml:"x_label"`
	YLabel      Text       `yaml:"y_label"`
}

func DefaultLayout() Layout {
	return Layout{
		Width:       500,
		Height:      500,
		XRange:      [2]float64{50, 450},
		YRange:      [2]float64{50, 450},
		RadiusRange: [2]float64{3, 20},
		XPadding:    0.5,
		YPadding:    5,
		TickCount:   10,
		Fill:        "#4286f4",
		Title: Text{
			X: 100, Y: 40, FontSize: "14pt",
			Content: "Countries by Life Expectancy and Fertility Rate",
		},
		XLabel: Text{
			X: 130, Y: 490, FontSize: "10pt",
			Content: "Fertility Rates (Avg Children per Woman)",
		},
		YLabel: Text{
			Transform: "translate(15, 300)rotate(-90)", FontSize: "10pt",
			Content: "Life Expectancy (years)",
		},
	}
}

// Validate checks the layout can produce a drawable scene.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid chart size %dx%d", l.Width, l.Height)
	}
	if l.RadiusRange[0] < 0 || l.RadiusRange[1] < l.RadiusRange[0] {
		return fmt.Errorf("invalid radius range %v", l.RadiusRange)
	}
	if l.TickCount <= 0 {
		return fmt.Errorf("tick count must be positive, got %d", l.TickCount)
	}
	return nil
}

type Orientation string

const (
	Bottom Orientation = "bottom"
	Left   Orientation = "left"
)

type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Axis is a drawn axis: its scale, where it sits and its ticks.
type Axis struct {
	Orient    Orientation
	Transform string
	Scale     Linear
	Ticks     []Tick
}

func newAxis(orient Orientation, transform string, s Linear, count int) Axis {
	format := s.TickFormat(count)
	a := Axis{Orient: orient, Transform: transform, Scale: s}
	for _, v := range s.Ticks(count) {
		a.Ticks = append(a.Ticks, Tick{Value: v, Pos: s.Apply(v), Label: format(v)})
	}
	return a
}

// Point is one circle of the scatter plot.
type Point struct {
	X, Y, R float64
	Record  *stats.Record
	Tooltip Tooltip
}

// Scene is everything drawn for one year.
type Scene struct {
	Year          int
	Width, Height int
	Fill          string
	XAxis, YAxis  Axis
	Radius        Linear
	Points        []Point
	Labels        []Text
}

// Build lays out the scatter plot of view. Records are drawn in view order.
func Build(view []*stats.Record, year int, l Layout) (*Scene, error) {
	limits, ok := stats.FindLimits(view)
	if !ok {
		return nil, fmt.Errorf("year %d: %w", year, ErrEmptyView)
	}

	x := NewLinear(limits.XMin-l.XPadding, limits.XMax+l.XPadding, l.XRange[0], l.XRange[1])
	// Inverted so that larger life expectancy is drawn higher up.
	y := NewLinear(limits.YMax+l.YPadding, limits.YMin-l.YPadding, l.YRange[0], l.YRange[1])
	r := NewLinear(limits.PopMin, limits.PopMax, l.RadiusRange[0], l.RadiusRange[1])

	s := &Scene{
		Year:   year,
		Width:  l.Width,
		Height: l.Height,
		Fill:   l.Fill,
		XAxis:  newAxis(Bottom, fmt.Sprintf("translate(0, %g)", l.YRange[1]), x, l.TickCount),
		YAxis:  newAxis(Left, fmt.Sprintf("translate(%g, 0)", l.XRange[0]), y, l.TickCount),
		Radius: r,
		Labels: []Text{l.Title, l.XLabel, l.YLabel},
	}

	s.Points = make([]Point, 0, len(view))
	for _, rec := range view {
		s.Points = append(s.Points, Point{
			X:       x.Apply(rec.FertilityRate),
			Y:       y.Apply(rec.LifeExpectancy),
			R:       r.Apply(rec.PopMlns),
			Record:  rec,
			Tooltip: NewTooltip(rec),
		})
	}
	return s, nil
}
