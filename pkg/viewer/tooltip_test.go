package viewer

import (
	"math"
	"testing"
	"time"

	"github.com/anrid/world-fertility/pkg/plot"
)

var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTooltipZeroValueHidden(t *testing.T) {
	var tip Tooltip
	if tip.Phase(epoch) != Hidden || tip.Opacity(epoch) != 0 {
		t.Fatalf("zero tooltip: phase=%s opacity=%v", tip.Phase(epoch), tip.Opacity(epoch))
	}
}

func TestTooltipEnterLeave(t *testing.T) {
	var tip Tooltip
	content := plot.Tooltip{Country: "Alpha", Year: "2000", LifeExpectancy: "70.0", Population: "5,000,000"}

	tip.Enter(content, 120, 200, at(0))
	if tip.Content != content || tip.X != 120 || tip.Y != 172 {
		t.Errorf("tooltip = %+v", tip)
	}

	steps := []struct {
		ms      int
		phase   Phase
		opacity float64
	}{
		{0, FadingIn, 0},
		{100, FadingIn, 0.45},
		{200, Visible, 0.9},
		{1000, Visible, 0.9},
	}
	for _, s := range steps {
		if got := tip.Phase(at(s.ms)); got != s.phase {
			t.Errorf("t=%dms phase = %s, want %s", s.ms, got, s.phase)
		}
		if got := tip.Opacity(at(s.ms)); !approx(got, s.opacity) {
			t.Errorf("t=%dms opacity = %v, want %v", s.ms, got, s.opacity)
		}
	}

	tip.Leave(at(1000))
	if got := tip.Phase(at(1250)); got != FadingOut {
		t.Errorf("phase during fade out = %s", got)
	}
	if got := tip.Opacity(at(1250)); !approx(got, 0.45) {
		t.Errorf("opacity during fade out = %v", got)
	}
	if got := tip.Phase(at(1500)); got != Hidden {
		t.Errorf("phase after fade out = %s", got)
	}
}

func TestTooltipInterruptedFade(t *testing.T) {
	var tip Tooltip
	tip.Enter(plot.Tooltip{Country: "Alpha"}, 0, 0, at(0))
	tip.Leave(at(100)) // opacity 0.45 when leaving

	if got := tip.Opacity(at(100)); !approx(got, 0.45) {
		t.Fatalf("opacity at leave = %v", got)
	}

	// Re-entering mid fade-out restarts the fade in from the current opacity.
	tip.Enter(plot.Tooltip{Country: "Beta"}, 0, 0, at(350))
	start := tip.Opacity(at(350))
	if !approx(start, 0.45-0.45*250.0/500.0) {
		t.Errorf("restart opacity = %v", start)
	}
	if tip.Phase(at(449)) != FadingIn || tip.Phase(at(550)) != Visible {
		t.Errorf("unexpected phases after re-enter")
	}
	if tip.Content.Country != "Beta" {
		t.Errorf("content = %+v", tip.Content)
	}
}
