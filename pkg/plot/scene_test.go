package plot

import (
	"errors"
	"sort"
	"testing"

	"github.com/anrid/world-fertility/pkg/stats"
)

func scenario() []*stats.Record {
	return []*stats.Record{
		{Location: "Alpha", Time: 2000, FertilityRate: 2.1, LifeExpectancy: 70.0, PopMlns: 5,
			Raw: map[string]string{stats.ColumnLifeExpectancy: "70.0"}},
		{Location: "Beta", Time: 2000, FertilityRate: 3.4, LifeExpectancy: 60.5, PopMlns: 50},
	}
}

func TestBuildScenario(t *testing.T) {
	s, err := Build(scenario(), 2000, DefaultLayout())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(s.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(s.Points))
	}

	xd := s.XAxis.Scale.Domain
	if !near(xd[0], 1.6) || !near(xd[1], 3.9) {
		t.Errorf("x-domain = %v, want [1.6 3.9]", xd)
	}
	yd := s.YAxis.Scale.Domain
	if !near(yd[0], 75) || !near(yd[1], 55.5) {
		t.Errorf("y-domain = %v, want [75 55.5]", yd)
	}

	alpha, beta := s.Points[0], s.Points[1]
	if alpha.R >= beta.R {
		t.Errorf("radius alpha %v should be smaller than beta %v", alpha.R, beta.R)
	}
	if !near(alpha.R, 3) || !near(beta.R, 20) {
		t.Errorf("radii = %v, %v, want 3 and 20", alpha.R, beta.R)
	}
	if alpha.Y >= beta.Y {
		t.Errorf("larger life expectancy must plot higher: alpha y=%v beta y=%v", alpha.Y, beta.Y)
	}
	if !near(alpha.X, 50+0.5/2.3*400) {
		t.Errorf("alpha x = %v", alpha.X)
	}
}

func TestBuildAxesAndLabels(t *testing.T) {
	s, err := Build(scenario(), 2000, DefaultLayout())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if s.XAxis.Transform != "translate(0, 450)" || s.YAxis.Transform != "translate(50, 0)" {
		t.Errorf("axis transforms = %q, %q", s.XAxis.Transform, s.YAxis.Transform)
	}
	for _, a := range []Axis{s.XAxis, s.YAxis} {
		if len(a.Ticks) == 0 {
			t.Fatalf("%s axis has no ticks", a.Orient)
		}
		for _, tk := range a.Ticks {
			if tk.Pos < 50-eps || tk.Pos > 450+eps {
				t.Errorf("%s tick %v at %v outside the plot", a.Orient, tk.Value, tk.Pos)
			}
		}
	}
	if len(s.Labels) != 3 || s.Labels[0].Content != "Countries by Life Expectancy and Fertility Rate" {
		t.Errorf("labels = %+v", s.Labels)
	}
}

func TestBuildRadiusMonotonic(t *testing.T) {
	view := []*stats.Record{
		{Location: "A", PopMlns: 30, FertilityRate: 1, LifeExpectancy: 50},
		{Location: "B", PopMlns: 1, FertilityRate: 2, LifeExpectancy: 60},
		{Location: "C", PopMlns: 1000, FertilityRate: 3, LifeExpectancy: 70},
		{Location: "D", PopMlns: 250, FertilityRate: 4, LifeExpectancy: 80},
	}
	s, err := Build(view, 1990, DefaultLayout())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	pts := append([]Point(nil), s.Points...)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Record.PopMlns < pts[j].Record.PopMlns })
	for i := 1; i < len(pts); i++ {
		if pts[i].R <= pts[i-1].R {
			t.Errorf("radius not increasing: %s=%v, %s=%v",
				pts[i-1].Record.Location, pts[i-1].R, pts[i].Record.Location, pts[i].R)
		}
	}
	if !near(pts[0].R, 3) || !near(pts[len(pts)-1].R, 20) {
		t.Errorf("radius extremes = %v, %v", pts[0].R, pts[len(pts)-1].R)
	}
}

func TestBuildSingleRecord(t *testing.T) {
	s, err := Build(scenario()[:1], 2000, DefaultLayout())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !near(s.Points[0].R, 11.5) {
		t.Errorf("single record radius = %v, want range midpoint", s.Points[0].R)
	}
}

func TestBuildEmptyView(t *testing.T) {
	if _, err := Build(nil, 1999, DefaultLayout()); !errors.Is(err, ErrEmptyView) {
		t.Fatalf("err = %v, want ErrEmptyView", err)
	}
}

func TestLayoutValidate(t *testing.T) {
	l := DefaultLayout()
	if err := l.Validate(); err != nil {
		t.Fatalf("default layout invalid: %v", err)
	}
	l.RadiusRange = [2]float64{20, 3}
	if err := l.Validate(); err == nil {
		t.Error("inverted radius range accepted")
	}
}
