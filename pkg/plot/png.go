package plot

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func axisRange(s Linear) *chart.ContinuousRange {
	return &chart.ContinuousRange{
		Min: math.Min(s.Domain[0], s.Domain[1]),
		Max: math.Max(s.Domain[0], s.Domain[1]),
	}
}

func axisTicks(a Axis) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(a.Ticks))
	for _, t := range a.Ticks {
		ticks = append(ticks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	return ticks
}

// labelText returns the content of the i-th scene label, if any.
func labelText(s *Scene, i int) string {
	if i < len(s.Labels) {
		return s.Labels[i].Content
	}
	return ""
}

// WritePNG rasterises the scene. Axis ranges and ticks are the scene's; the
// plot area is laid out by go-chart, so pixel positions differ from the SVG.
func WritePNG(w io.Writer, s *Scene) error {
	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.Record.FertilityRate
		ys[i] = p.Record.LifeExpectancy
	}

	fill := drawing.ColorFromHex(trimHash(s.Fill))
	radius := func(_, _ chart.Range, index int, _, _ float64) float64 {
		return s.Points[index].R
	}

	ch := chart.Chart{
		Title:      labelText(s, 0),
		Width:      s.Width,
		Height:     s.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  labelText(s, 1),
			Range: axisRange(s.XAxis.Scale),
			Ticks: axisTicks(s.XAxis),
		},
		YAxis: chart.YAxis{
			Name:  labelText(s, 2),
			Range: axisRange(s.YAxis.Scale),
			Ticks: axisTicks(s.YAxis),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%d", s.Year),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth:      chart.Disabled,
					DotColor:         fill,
					DotWidthProvider: radius,
				},
			},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png for %d: %w", s.Year, err)
	}
	return nil
}

func trimHash(c string) string {
	if len(c) > 0 && c[0] == '#' {
		return c[1:]
	}
	return c
}
