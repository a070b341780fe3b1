package serve

import (
	"contentkit/internal/app"
	"contentkit/internal/domain/content"
	"contentkit/internal/domain/site"
	"contentkit/internal/index"
	"contentkit/internal/ingest"
	"contentkit/internal/schema"
	"contentkit/internal/transform"
	"contentkit/internal/validate"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"io"
	"net/http"
	"strconv"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func listOptions(r *http.Request) index.ListOptions {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return index.ListOptions{Page: page, Size: size}
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	rep, err := s.last, s.lastErr
	s.mu.RUnlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rep == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("no run yet"))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.idx.Runs(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleOverview(w http.ResponseWriter, _ *http.Request) {
	ov, err := s.idx.Overview(10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

type routeView struct {
	Route string `json:"route"`
	Path  string `json:"path"`
	URL   string `json:"url,omitempty"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, _ *http.Request) {
	rb := &app.RouteBuilder{Index: s.idx}
	routes, err := rb.BuildAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]routeView, 0, len(routes))
	for _, rt := range routes {
		v := routeView{Route: rt.String(), Path: rt.Path()}
		if rt.Kind == site.RouteItem {
			v.URL = site.CanonicalURL(s.cfg.Site.BaseURL, rt.Category, rt.Slug)
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	c, err := parseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	records, err := s.idx.ListByCategory(c, listOptions(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, listItems(records))
}

type itemView struct {
	index.Record
	URL        string             `json:"url"`
	Navigation content.Navigation `json:"navigation"`
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	c, err := parseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	ref := index.Ref{Category: c, Slug: chi.URLParam(r, "slug")}
	rec, err := s.idx.Get(ref)
	if errors.Is(err, index.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	related, _ := strconv.Atoi(r.URL.Query().Get("related"))
	nav, err := s.navigator().Navigation(ref, related)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, itemView{
		Record:     rec,
		URL:        site.CanonicalURL(s.cfg.Site.BaseURL, c, rec.Slug),
		Navigation: nav,
	})
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	records, err := s.idx.ListByTag(chi.URLParam(r, "tag"), listOptions(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, listItems(records))
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	records, err := s.idx.ListSeries(chi.URLParam(r, "hub"), listOptions(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, listItems(records))
}

// handleSchema serves the JSON Schema of one category, or of the union for
// "all".
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	var c content.Category
	if raw := chi.URLParam(r, "type"); raw != "all" {
		var err error
		if c, err = parseType(raw); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
	}
	doc, err := schema.ExportCategory(c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(doc)
}

func decodeBody(r *http.Request) (any, error) {
	var v any
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]any); ok {
		return map[string]any(ingest.CoerceDates(content.Frontmatter(m))), nil
	}
	return v, nil
}

// handleValidate checks the posted record against ?type, or against the
// union when type is absent.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var res validate.ContentResult
	if t := r.URL.Query().Get("type"); t != "" {
		res = validate.ValidateContentByType(raw, t)
	} else {
		res = validate.ValidateContent(raw)
	}
	status := http.StatusOK
	if !res.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	q := r.URL.Query()
	res := s.runner.Transformer.ProcessContent(raw, q.Get("type"), q.Get("slug"), s.cfg.Transform)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res := transform.ValidateTransformOptions(raw)
	status := http.StatusOK
	if !res.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func listItems(records []index.Record) []content.ListItem {
	out := make([]content.ListItem, 0, len(records))
	for _, r := range records {
		out = append(out, r.ListItem)
	}
	return out
}
