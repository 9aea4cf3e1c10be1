// Package web serves the interactive chart: an HTML page with the year
// dropdown, previous/next buttons and the SVG scatter plot, plus the chart
// as standalone SVG, PNG and XLSX downloads.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/anrid/world-fertility/pkg/config"
	"github.com/anrid/world-fertility/pkg/logging"
	"github.com/anrid/world-fertility/pkg/plot"
	"github.com/anrid/world-fertility/pkg/stats"
	"github.com/anrid/world-fertility/pkg/viewer"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Server renders charts from a dataset shared by all requests. The dataset is
// never mutated, and every request gets its own viewer.State.
type Server struct {
	dataset *stats.Dataset
	cfg     config.Config
	page    *template.Template
	mux     *http.ServeMux
}

func NewServer(ds *stats.Dataset, cfg config.Config) (*Server, error) {
	page, err := template.ParseFS(templates, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if _, _, ok := ds.YearRange(); !ok {
		return nil, viewer.ErrNoData
	}

	s := &Server{dataset: ds, cfg: cfg, page: page, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /plot.svg", s.handleSVG)
	s.mux.HandleFunc("GET /plot.png", s.handlePNG)
	s.mux.HandleFunc("GET /export.xlsx", s.handleXLSX)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

type httpError struct {
	code int
	err  error
}

func (e *httpError) Error() string { return e.err.Error() }
func (e *httpError) Unwrap() error { return e.err }

// stateFor builds the selection for a request: ?year= selects a year,
// ?move=prev|next then steps from it.
func (s *Server) stateFor(r *http.Request) (*viewer.State, error) {
	st, err := viewer.New(s.dataset, s.cfg.Chart, s.cfg.DefaultYear)
	if err != nil {
		return nil, &httpError{http.StatusInternalServerError, err}
	}

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, &httpError{http.StatusBadRequest, fmt.Errorf("invalid year %q", v)}
		}
		if err := st.Select(year); err != nil {
			return nil, &httpError{http.StatusNotFound, err}
		}
	}

	switch move := q.Get("move"); move {
	case "":
	case "prev":
		err = st.Prev()
	case "next":
		err = st.Next()
	default:
		return nil, &httpError{http.StatusBadRequest, fmt.Errorf("invalid move %q", move)}
	}
	// Stepping past either end leaves the selection where it was.
	if err != nil && !errors.Is(err, viewer.ErrAtFirstYear) && !errors.Is(err, viewer.ErrAtLastYear) {
		return nil, &httpError{http.StatusInternalServerError, err}
	}
	return st, nil
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var he *httpError
	if errors.As(err, &he) {
		code = he.code
	}
	switch {
	case code >= 500:
		logging.Errorf("request failed: %v", err)
	case code >= 400:
		logging.Warnf("request rejected (%d): %v", code, err)
	}
	http.Error(w, err.Error(), code)
}

type pageData struct {
	Title     string
	Controls  viewer.Controls
	Chart     template.HTML
	Notice    string
	FadeInMs  int64
	FadeOutMs int64
	Opacity   float64
	OffsetY   int

	// CSS class the page script toggles while a tooltip is shown.
	VisibleClass string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	st, err := s.stateFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data := pageData{
		Title:     s.cfg.Chart.Title.Content,
		Controls:  st.Controls(),
		FadeInMs:  viewer.FadeInDuration.Milliseconds(),
		FadeOutMs: viewer.FadeOutDuration.Milliseconds(),
		Opacity:   viewer.VisibleOpacity,
		OffsetY:   viewer.OffsetY,

		VisibleClass: viewer.Visible.String(),
	}

	var chart bytes.Buffer
	scene, err := st.Render()
	switch {
	case errors.Is(err, plot.ErrEmptyView):
		data.Notice = fmt.Sprintf("No data for %d", st.Year())
		err = plot.WriteEmptySVG(&chart, s.cfg.Chart, st.Year(), data.Notice)
	case err == nil:
		err = plot.WriteSVG(&chart, scene)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	// The SVG writer escapes all text it emits.
	data.Chart = template.HTML(chart.String())

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	st, err := s.stateFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	scene, err := st.Render()
	switch {
	case errors.Is(err, plot.ErrEmptyView):
		err = plot.WriteEmptySVG(&buf, s.cfg.Chart, st.Year(), fmt.Sprintf("No data for %d", st.Year()))
	case err == nil:
		err = plot.WriteSVG(&buf, scene)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	buf.WriteTo(w)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	st, err := s.stateFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	scene, err := st.Render()
	if errors.Is(err, plot.ErrEmptyView) {
		err = &httpError{http.StatusNotFound, err}
	}
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := plot.WritePNG(&buf, scene); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	buf.WriteTo(w)
}

func (s *Server) handleXLSX(w http.ResponseWriter, r *http.Request) {
	st, err := s.stateFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := s.dataset.ExportXLSX(&buf, st.Year()); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="fertility-%d.xlsx"`, st.Year()))
	buf.WriteTo(w)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Infof("%s %s %d %s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
	})
}
