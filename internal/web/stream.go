package web

import (
	"net/http"
	"time"

	"appresp/internal/state"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"
)

const streamKeepalive = 25 * time.Second

// mainSelector is the region re-rendered on every state change.
const mainSelector = "#app-main"

func (s *Server) renderMain(sess state.Session) (string, error) {
	return s.renderTemplate("main", s.buildPage(sess))
}

func (s *Server) patchMain(w http.ResponseWriter, r *http.Request, sess state.Session) {
	html, err := s.renderMain(sess)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElements(html, datastar.WithSelector(mainSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
}

// handleEvents keeps a stream open and re-renders the main region whenever
// the session changes, from this tab, another tab, or a reload from disk.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	ch, cancel := s.hub.subscribe()
	defer cancel()

	s.metrics.streams.Inc()
	defer s.metrics.streams.Dec()

	send := func() error {
		html, err := s.renderMain(s.snapshot())
		if err != nil {
			return err
		}
		return sse.PatchElements(html, datastar.WithSelector(mainSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
	}
	if err := send(); err != nil {
		s.log.Debug("stream closed", zap.Error(err))
		return
	}

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()
	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepalive.C:
			if err := sse.PatchSignals([]byte("{}")); err != nil {
				return
			}
		case <-ch:
			if err := send(); err != nil {
				s.log.Debug("stream closed", zap.Error(err))
				return
			}
		}
	}
}

type searchSignals struct {
	Search string `json:"search"`
}

// handleSearchSignal applies the live search box value sent as a datastar
// signal and patches the list.
func (s *Server) handleSearchSignal(w http.ResponseWriter, r *http.Request) {
	var sig searchSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess := s.update(func(sess state.Session) state.Session { return sess.SetSearch(sig.Search) })
	s.patchMain(w, r, sess)
}
