package transport

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/gantt"
	"github.com/rpggio/precomm/internal/render"
)

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		s.logger.Warn("write model", "error", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	opts := render.SVGOptions{
		Width:    intParam(q, "width"),
		DarkMode: boolParam(q, "dark", s.dark),
		Title:    q.Get("title"),
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(w, m, opts); err != nil {
		s.logger.Warn("write svg", "error", err)
	}
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := render.WriteText(w, m, render.TextOptions{Width: intParam(r.URL.Query(), "width")}); err != nil {
		s.logger.Warn("write text", "error", err)
	}
}

// model loads a snapshot and computes the model for the request's query
// string. It writes the error response itself when it returns false.
func (s *Server) model(w http.ResponseWriter, r *http.Request) (*gantt.Model, bool) {
	q := r.URL.Query()

	today := dates.Day(s.now())
	if raw := q.Get("today"); raw != "" {
		t, ok := dates.Parse(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "today: must be a date like 2024-03-15")
			return nil, false
		}
		today = t
	}

	zoom, err := floatParam(q, "zoom")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	snap, err := gantt.LoadSnapshot(r.Context(), s.source)
	if err != nil {
		s.logger.Error("load snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load data")
		return nil, false
	}

	req, err := queryFromURL(q, zoom).Request(snap, today)
	if err != nil {
		var fe *gantt.FieldError
		if errors.As(err, &fe) {
			writeError(w, http.StatusBadRequest, fe.Error())
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return s.engine.Compute(req), true
}

func queryFromURL(q url.Values, zoom float64) gantt.Query {
	return gantt.Query{
		Filter: gantt.FilterSpec{
			ProjectID:   q.Get("project"),
			System:      q.Get("system"),
			Subsystem:   q.Get("subsystem"),
			Query:       q.Get("q"),
			OverdueOnly: boolParam(q, "overdue", false),
			FlaggedOnly: boolParam(q, "flagged", false),
		},
		Status:     q.Get("status"),
		Start:      q.Get("start"),
		End:        q.Get("end"),
		ViewMode:   q.Get("mode"),
		Zoom:       zoom,
		Fit:        boolParam(q, "fit", false),
		RenderMode: q.Get("render"),
	}
}

func boolParam(q url.Values, key string, def bool) bool {
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return def
	}
	return v
}

func intParam(q url.Values, key string) int {
	v, _ := strconv.Atoi(q.Get(key))
	return v
}

func floatParam(q url.Values, key string) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: must be a number", key)
	}
	return v, nil
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
