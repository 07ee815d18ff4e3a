package web

import (
	"encoding/json"
	"net/http"

	"appresp/internal/model"
	"appresp/internal/mutate"
	"appresp/internal/query"
	"appresp/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type tagsBody struct {
	Tags []string `json:"tags"`
}

// snapshotResponse carries the whole collection in storage order, which is
// what an external boundary persists, next to the current UI view of it.
type snapshotResponse struct {
	View         string              `json:"view"`
	SelectedID   string              `json:"selectedId,omitempty"`
	Filter       query.Filter        `json:"filter"`
	Applications []model.Application `json:"applications"`
	Count        int                 `json:"count"`
	Visible      []model.Application `json:"visible"`
}

// apiRouter serves the JSON API. It reads the same collection as the HTML UI
// but never touches the UI filter or selection.
func (s *Server) apiRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/applications", s.apiListApplications)
		r.Get("/applications/{appID}", s.apiGetApplication)
		r.Put("/applications/{appID}/questions/{questionID}/tags", s.apiPutTags)
		r.Get("/tags", s.apiTags)
		r.Get("/snapshot", s.apiSnapshot)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "no such endpoint")
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

func writeAPIError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": apiError{Code: code, Message: msg}})
}

func (s *Server) apiListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := model.ParseSortOrder(q.Get("sort"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	f := query.Filter{Tags: q["tag"], Search: q.Get("q"), Sort: sort}
	writeJSON(w, http.StatusOK, query.FilterAndSort(s.snapshot().Apps, f))
}

func (s *Server) apiGetApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appID")
	a, ok := model.FindApplication(s.snapshot().Apps, id)
	if !ok {
		writeAPIError(w, http.StatusNotFound, "not_found", "application not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) apiPutTags(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ReadOnly {
		writeAPIError(w, http.StatusForbidden, "read_only", "server is read-only")
		return
	}
	appID := chi.URLParam(r, "appID")
	qID := chi.URLParam(r, "questionID")
	if _, ok := model.FindApplication(s.snapshot().Apps, appID); !ok {
		writeAPIError(w, http.StatusNotFound, "not_found", "application not found: "+appID)
		return
	}

	var body tagsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	tags := mutate.CleanTags(body.Tags)

	var before model.Application
	sess, _, err := s.editTags(r.Context(), "set", func(sess state.Session) (state.Session, bool) {
		before, _ = model.FindApplication(sess.Apps, appID)
		next := sess.UpdateTags(appID, qID, tags)
		after, _ := model.FindApplication(next.Apps, appID)
		return next, !sameQuestions(before, after)
	})
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	a, _ := model.FindApplication(sess.Apps, appID)
	writeJSON(w, http.StatusOK, a)
}

func sameQuestions(a, b model.Application) bool {
	if len(a.Questions) != len(b.Questions) {
		return false
	}
	for i := range a.Questions {
		x, y := a.Questions[i].Tags, b.Questions[i].Tags
		if len(x) != len(y) {
			return false
		}
		for j := range x {
			if x[j] != y[j] {
				return false
			}
		}
	}
	return true
}

func (s *Server) apiTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.AllTags(s.cfg.Store.KnownTags(), s.snapshot().Apps))
}

func (s *Server) apiSnapshot(w http.ResponseWriter, r *http.Request) {
	sess := s.snapshot()
	visible := sess.Visible()
	apps := sess.Apps
	if apps == nil {
		apps = []model.Application{}
	}
	writeJSON(w, http.StatusOK, snapshotResponse{
		View:         sess.View().String(),
		SelectedID:   sess.SelectedID,
		Filter:       sess.Filter,
		Applications: apps,
		Count:        len(visible),
		Visible:      visible,
	})
}
