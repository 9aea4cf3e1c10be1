// Package plot turns a filtered view of the dataset into a drawable scene:
// linear scales, axes with ticks, circles with tooltips and static labels.
// Scenes are written out as SVG or PNG.
package plot

import (
	"math"
	"strconv"
)

// Linear maps a data domain onto a pixel range by linear interpolation.
// The domain may be inverted (Domain[0] > Domain[1]).
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps v from the domain onto the range. A degenerate domain maps every
// value to the middle of the range.
func (s Linear) Apply(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	t := 0.5
	if d != 0 {
		t = (v - s.Domain[0]) / d
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 × 10^k step. Negative results are the
// inverse of the step, which keeps small steps exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// Ticks returns roughly count human friendly values inside the domain, in
// domain order.
func (s Linear) Ticks(count int) []float64 {
	start, stop := s.Domain[0], s.Domain[1]
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := tickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64
	if step > 0 {
		lo, hi := math.Ceil(start/step), math.Floor(stop/step)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*step)
		}
	} else {
		step = -step
		lo, hi := math.Ceil(start*step), math.Floor(stop*step)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i/step)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// TickFormat returns a formatter using the precision of the tick step.
func (s Linear) TickFormat(count int) func(float64) string {
	lo, hi := math.Min(s.Domain[0], s.Domain[1]), math.Max(s.Domain[0], s.Domain[1])
	prec := 0
	if lo != hi && count > 0 {
		step := tickIncrement(lo, hi, count)
		if step < 0 {
			step = -1 / step
		}
		prec = max(0, -int(math.Floor(math.Log10(step))))
	}
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
}
