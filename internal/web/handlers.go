package web

import (
	"net/http"
	"net/url"
	"strings"

	"appresp/internal/model"
	"appresp/internal/state"

	"go.uber.org/zap"
)

func isDatastarRequest(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("Datastar-Request")), "true")
}

// respondAfterAction answers a state-changing POST. Datastar requests get the
// new main region as a patch; plain forms are redirected.
func (s *Server) respondAfterAction(w http.ResponseWriter, r *http.Request, sess state.Session, fallback string) {
	if isDatastarRequest(r) {
		s.patchMain(w, r, sess)
		return
	}
	redirectBack(w, r, fallback)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.writeHTMLTemplate(w, "layout", s.buildPage(s.snapshot()))
}

func (s *Server) handleApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("appID")
	if _, ok := model.FindApplication(s.snapshot().Apps, id); !ok {
		http.NotFound(w, r)
		return
	}
	sess := s.update(func(sess state.Session) state.Session { return sess.Select(id) })
	s.writeHTMLTemplate(w, "layout", s.buildPage(sess))
}

func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	tag := strings.TrimSpace(r.FormValue("tag"))
	if tag == "" {
		http.Error(w, "missing tag", http.StatusBadRequest)
		return
	}
	sess := s.update(func(sess state.Session) state.Session { return sess.ToggleTag(tag) })
	s.respondAfterAction(w, r, sess, "/")
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.FormValue("search")
	sess := s.update(func(sess state.Session) state.Session { return sess.SetSearch(q) })
	s.respondAfterAction(w, r, sess, "/")
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	sess := s.update(state.Session.ClearFilters)
	s.respondAfterAction(w, r, sess, "/")
}

func (s *Server) handleToggleSort(w http.ResponseWriter, r *http.Request) {
	sess := s.update(state.Session.ToggleSort)
	s.respondAfterAction(w, r, sess, "/")
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("appID")
	sess := s.update(func(sess state.Session) state.Session { return sess.Select(id) })
	if isDatastarRequest(r) {
		s.patchMain(w, r, sess)
		return
	}
	if sess.SelectedID != id {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/applications/"+url.PathEscape(id), http.StatusSeeOther)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := s.update(state.Session.Back)
	if isDatastarRequest(r) {
		s.patchMain(w, r, sess)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleNewApplication is a placeholder: creating applications is not
// supported yet, the click is only logged.
func (s *Server) handleNewApplication(w http.ResponseWriter, r *http.Request) {
	s.log.Info("Add new log clicked")
	if isDatastarRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirectBack(w, r, "/")
}

func (s *Server) handleAddTag(w http.ResponseWriter, r *http.Request) {
	s.handleTagEdit(w, r, "add", func(sess state.Session, appID, qID, tag string) (state.Session, bool) {
		return sess.AddTag(appID, qID, tag)
	})
}

func (s *Server) handleRemoveTag(w http.ResponseWriter, r *http.Request) {
	s.handleTagEdit(w, r, "remove", func(sess state.Session, appID, qID, tag string) (state.Session, bool) {
		return sess.RemoveTag(appID, qID, tag)
	})
}

type tagReducer func(sess state.Session, appID, qID, tag string) (state.Session, bool)

func (s *Server) handleTagEdit(w http.ResponseWriter, r *http.Request, kind string, fn tagReducer) {
	if s.cfg.ReadOnly {
		http.Error(w, "read-only", http.StatusForbidden)
		return
	}
	appID := r.PathValue("appID")
	qID := r.PathValue("questionID")
	tag := r.FormValue("tag")

	sess, changed, err := s.editTags(r.Context(), kind, func(sess state.Session) (state.Session, bool) {
		return fn(sess, appID, qID, tag)
	})
	if err != nil {
		http.Error(w, "save failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Debug("tag edit",
		zap.String("kind", kind),
		zap.String("application", appID),
		zap.String("question", qID),
		zap.String("tag", tag),
		zap.Bool("changed", changed),
	)
	s.respondAfterAction(w, r, sess, "/applications/"+url.PathEscape(appID))
}
