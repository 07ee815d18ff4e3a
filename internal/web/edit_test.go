package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"appresp/internal/model"
	"appresp/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_SnapshotKeepsWholeCollectionUnderFilter(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()

	do(t, h, http.MethodPost, "/filters/tags", url.Values{"tag": {"Research"}})
	do(t, h, http.MethodPost, "/sort/toggle", nil)

	var snap snapshotResponse
	decodeData(t, do(t, h, http.MethodGet, "/api/snapshot", nil), &snap)

	ids := make([]string, 0, len(snap.Applications))
	for _, a := range snap.Applications {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.Equal(t, 1, snap.Count)
	require.Len(t, snap.Visible, 1)
	assert.Equal(t, "3", snap.Visible[0].ID)
}

func TestAPI_PutTagsCleansInput(t *testing.T) {
	srv := newTestServer(t, nil, false)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodPut, "/api/applications/2/questions/q3/tags",
		strings.NewReader(`{"tags":["Service","Service","  ",""," Teaching "]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"Service", "Teaching"}, mustQuestion(t, srv, "2", "q3").Tags)
}

// gatedStore blocks its first Save until release is closed.
type gatedStore struct {
	*store.MemoryStore

	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	saves int
	last  []model.Application
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: store.NewMemoryStore(store.MockApplications(), store.KnownTags),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *gatedStore) Writable() bool { return true }

func (g *gatedStore) Save(ctx context.Context, apps []model.Application) error {
	g.mu.Lock()
	g.saves++
	first := g.saves == 1
	g.mu.Unlock()
	if first {
		close(g.started)
		<-g.release
	}
	g.mu.Lock()
	g.last = model.CloneAll(apps)
	g.mu.Unlock()
	return nil
}

func (g *gatedStore) persisted() []model.Application {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

func TestEditTags_SavesInEditOrder(t *testing.T) {
	st := newGatedStore()
	srv := newTestServer(t, st, false)
	h := srv.Handler()

	add := func(tag string) {
		do(t, h, http.MethodPost, "/applications/2/questions/q3/tags", url.Values{"tag": {tag}})
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); add("First") }()
	<-st.started
	go func() { defer wg.Done(); add("Second") }()

	// Give the second edit a chance to run before the first save completes.
	time.Sleep(20 * time.Millisecond)
	close(st.release)
	wg.Wait()

	inMemory := mustQuestion(t, srv, "2", "q3").Tags
	assert.Equal(t, []string{"Service", "Leadership", "Teaching", "Community Impact", "First", "Second"}, inMemory)

	a, ok := model.FindApplication(st.persisted(), "2")
	require.True(t, ok)
	q, ok := a.FindQuestion("q3")
	require.True(t, ok)
	assert.Equal(t, inMemory, q.Tags)
}
