package plot

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"
)

const tickSize = 6

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func esc(s string) string {
	return html.EscapeString(s)
}

// WriteSVG writes the scene as a standalone SVG document.
func WriteSVG(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" data-year="%d">`+"\n",
		s.Width, s.Height, s.Year)

	writeAxis(bw, s.XAxis)
	writeAxis(bw, s.YAxis)

	for _, p := range s.Points {
		t := p.Tooltip
		fmt.Fprintf(bw, `<circle class="dot" cx="%s" cy="%s" r="%s" fill="%s"`,
			num(p.X), num(p.Y), num(p.R), esc(s.Fill))
		fmt.Fprintf(bw, ` data-country="%s" data-year="%s" data-life-expectancy="%s" data-population="%s">`,
			esc(t.Country), esc(t.Year), esc(t.LifeExpectancy), esc(t.Population))
		fmt.Fprintf(bw, "<title>%s</title></circle>\n", esc(strings.Join(t.Lines(), "\n")))
	}

	writeLabels(bw, s.Labels)

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// WriteEmptySVG writes a chart frame with labels and a notice instead of
// data, for a year with nothing to plot.
func WriteEmptySVG(w io.Writer, l Layout, year int, notice string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" data-year="%d">`+"\n",
		l.Width, l.Height, year)
	fmt.Fprintf(bw, `<text class="notice" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
		num(float64(l.Width)/2), num(float64(l.Height)/2), esc(notice))
	writeLabels(bw, []Text{l.Title, l.XLabel, l.YLabel})
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func writeLabels(w *bufio.Writer, labels []Text) {
	for _, t := range labels {
		if t.Content == "" {
			continue
		}
		if t.Transform != "" {
			fmt.Fprintf(w, `<text class="label" transform="%s"`, esc(t.Transform))
		} else {
			fmt.Fprintf(w, `<text class="label" x="%s" y="%s"`, num(t.X), num(t.Y))
		}
		fmt.Fprintf(w, ` style="font-size: %s">%s</text>`+"\n", esc(t.FontSize), esc(t.Content))
	}
}

func writeAxis(w *bufio.Writer, a Axis) {
	r0, r1 := a.Scale.Range[0], a.Scale.Range[1]

	anchor, domain := "middle", ""
	switch a.Orient {
	case Bottom:
		domain = fmt.Sprintf("M%s,%dV0.5H%sV%d", num(r0+0.5), tickSize, num(r1+0.5), tickSize)
	case Left:
		anchor = "end"
		domain = fmt.Sprintf("M-%d,%sH0.5V%sH-%d", tickSize, num(r0+0.5), num(r1+0.5), tickSize)
	}

	fmt.Fprintf(w, `<g class="axis axis-%s" transform="%s" fill="none" font-size="10" font-family="sans-serif" text-anchor="%s">`+"\n",
		a.Orient, esc(a.Transform), anchor)
	fmt.Fprintf(w, `<path class="domain" stroke="currentColor" d="%s"></path>`+"\n", domain)

	for _, t := range a.Ticks {
		switch a.Orient {
		case Bottom:
			fmt.Fprintf(w, `<g class="tick" transform="translate(%s,0)"><line stroke="currentColor" y2="%d"></line><text fill="currentColor" y="%d" dy="0.71em">%s</text></g>`+"\n",
				num(t.Pos+0.5), tickSize, tickSize+3, esc(t.Label))
		case Left:
			fmt.Fprintf(w, `<g class="tick" transform="translate(0,%s)"><line stroke="currentColor" x2="-%d"></line><text fill="currentColor" x="-%d" dy="0.32em">%s</text></g>`+"\n",
				num(t.Pos+0.5), tickSize, tickSize+3, esc(t.Label))
		}
	}
	w.WriteString("</g>\n")
}
