package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"

	"appresp/internal/model"
	"appresp/internal/state"
	"appresp/internal/store"
	"appresp/internal/tagcolor"

	"go.uber.org/zap"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

// DatastarScriptURL is loaded by the page for live updates. Everything also
// works as plain HTML forms without it.
const DatastarScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

type ServerConfig struct {
	Store       store.Store
	Log         *zap.Logger
	ReadOnly    bool
	DefaultSort model.SortOrder
}

// Server holds one Session for the single local user. Every request applies
// its reducer under mu, so actions are handled one at a time.
type Server struct {
	cfg     ServerConfig
	log     *zap.Logger
	tmpl    *template.Template
	hub     *resourceHub
	metrics *metrics

	mu   sync.Mutex
	sess state.Session

	// editMu is held across a tag edit and its save so versions reach the
	// store in the order they were made.
	editMu sync.Mutex
}

func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("web: store is nil")
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = model.SortDateDesc
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	apps, err := cfg.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		log:     cfg.Log,
		tmpl:    tmpl,
		hub:     newResourceHub(),
		metrics: newMetrics(),
		sess:    state.New(apps, cfg.DefaultSort),
	}
	s.metrics.visible.Set(float64(len(apps)))
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /search", s.handleSearchSignal)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /static/tags.css", s.handleTagsCSS)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /filters/tags", s.handleToggleTag)
	mux.HandleFunc("POST /filters/search", s.handleSearch)
	mux.HandleFunc("POST /filters/clear", s.handleClearFilters)
	mux.HandleFunc("POST /sort/toggle", s.handleToggleSort)
	mux.HandleFunc("POST /select/{appID}", s.handleSelect)
	mux.HandleFunc("POST /back", s.handleBack)
	mux.HandleFunc("POST /applications/new", s.handleNewApplication)
	mux.HandleFunc("GET /applications/{appID}", s.handleApplication)
	mux.HandleFunc("POST /applications/{appID}/questions/{questionID}/tags", s.handleAddTag)
	mux.HandleFunc("POST /applications/{appID}/questions/{questionID}/tags/remove", s.handleRemoveTag)
	mux.Handle("/api/", s.apiRouter())
	return s.requestLogger(mux)
}

// Watch reloads the collection whenever the backing file changes on disk,
// until ctx is done. Memory stores have nothing to watch.
func (s *Server) Watch(ctx context.Context) error {
	path := s.cfg.Store.Path()
	if path == "" {
		return nil
	}
	w, err := store.NewWatcher(path, s.log)
	if err != nil {
		return err
	}
	return w.Run(ctx, func() { s.reload(ctx) })
}

func (s *Server) reload(ctx context.Context) {
	apps, err := s.cfg.Store.Load(ctx)
	if err != nil {
		s.log.Warn("reload failed", zap.String("path", s.cfg.Store.Path()), zap.Error(err))
		return
	}
	s.update(func(sess state.Session) state.Session { return sess.Replace(apps) })
	s.log.Info("reloaded data file", zap.String("path", s.cfg.Store.Path()), zap.Int("applications", len(apps)))
}

func (s *Server) snapshot() state.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// update applies fn under the lock and notifies open streams.
func (s *Server) update(fn func(state.Session) state.Session) state.Session {
	s.mu.Lock()
	s.sess = fn(s.sess)
	next := s.sess
	s.mu.Unlock()

	s.metrics.visible.Set(float64(next.Count()))
	s.hub.broadcast()
	return next
}

// editTags runs a tag reducer and persists the result when it changed.
func (s *Server) editTags(ctx context.Context, kind string, fn func(state.Session) (state.Session, bool)) (state.Session, bool, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.sess)
	s.sess = next
	s.mu.Unlock()

	s.metrics.tagMutations.WithLabelValues(kind, boolLabel(changed)).Inc()
	if !changed {
		return next, false, nil
	}
	s.metrics.visible.Set(float64(next.Count()))
	s.hub.broadcast()
	return next, true, s.persist(ctx, next.Apps)
}

func (s *Server) persist(ctx context.Context, apps []model.Application) error {
	if s.cfg.ReadOnly || !s.cfg.Store.Writable() {
		return nil
	}
	if err := s.cfg.Store.Save(ctx, apps); err != nil {
		s.log.Error("save failed", zap.String("path", s.cfg.Store.Path()), zap.Error(err))
		return err
	}
	return nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	ref := strings.TrimSpace(r.Header.Get("Referer"))
	if ref != "" {
		http.Redirect(w, r, ref, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleTagsCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, tagcolor.CSS())
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}
