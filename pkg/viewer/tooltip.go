package viewer

import (
	"time"

	"github.com/anrid/world-fertility/pkg/plot"
)

const (
	FadeInDuration  = 200 * time.Millisecond
	FadeOutDuration = 500 * time.Millisecond
	VisibleOpacity  = 0.9

	// Tooltips are drawn above the pointer.
	OffsetY = -28
)

type Phase int

const (
	Hidden Phase = iota
	FadingIn
	Visible
	FadingOut
)

func (p Phase) String() string {
	switch p {
	case FadingIn:
		return "fading-in"
	case Visible:
		return "visible"
	case FadingOut:
		return "fading-out"
	}
	return "hidden"
}

// Tooltip is the hover state of the chart. Time is passed in by the caller,
// so no timers are involved. The zero value is hidden.
//
// The web page does not run this type. Its script toggles the CSS class named
// by Visible.String() and lets CSS transitions fade with FadeInDuration,
// FadeOutDuration, VisibleOpacity and OffsetY, so the browser follows the
// same transitions Tooltip models.
type Tooltip struct {
	Content plot.Tooltip
	X, Y    float64

	from, to float64
	start    time.Time
	duration time.Duration
}

// Enter shows content near the pointer at (x, y), fading in from whatever
// opacity the tooltip has at now.
func (t *Tooltip) Enter(content plot.Tooltip, x, y float64, now time.Time) {
	t.transition(VisibleOpacity, FadeInDuration, now)
	t.Content = content
	t.X, t.Y = x, y+OffsetY
}

// Leave fades the tooltip out. The content stays until the next Enter.
func (t *Tooltip) Leave(now time.Time) {
	t.transition(0, FadeOutDuration, now)
}

func (t *Tooltip) transition(to float64, d time.Duration, now time.Time) {
	t.from = t.Opacity(now)
	t.to = to
	t.start = now
	t.duration = d
}

func (t *Tooltip) progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	return min(max(p, 0), 1)
}

func (t *Tooltip) Opacity(now time.Time) float64 {
	return t.from + (t.to-t.from)*t.progress(now)
}

func (t *Tooltip) Phase(now time.Time) Phase {
	done := t.progress(now) >= 1
	switch {
	case t.to > 0 && done:
		return Visible
	case t.to > 0:
		return FadingIn
	case !done && t.Opacity(now) > 0:
		return FadingOut
	}
	return Hidden
}
