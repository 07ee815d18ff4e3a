package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"appresp/internal/model"
	"appresp/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, st store.Store, readOnly bool) *Server {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore(store.MockApplications(), store.KnownTags)
	}
	srv, err := NewServer(context.Background(), ServerConfig{
		Store:    st,
		Log:      zaptest.NewLogger(t),
		ReadOnly: readOnly,
	})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHome_RendersListNewestFirst(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	rec := do(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Application Response Manager")
	assert.Contains(t, body, "3 applications")
	assert.Contains(t, body, "Newest first")
	assert.Contains(t, body, "Jan 20, 2025, 2:00 PM")
	assert.Contains(t, body, `placeholder="Search responses..."`)

	rhodes := strings.Index(body, "Rhodes Scholarship Application")
	google := strings.Index(body, "Google Software Engineering Internship")
	nsf := strings.Index(body, "NSF Graduate Research Fellowship")
	require.True(t, rhodes > 0 && google > 0 && nsf > 0)
	assert.Less(t, rhodes, google)
	assert.Less(t, google, nsf)
}

func TestToggleTag_FiltersAndRedirects(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()

	rec := do(t, h, http.MethodPost, "/filters/tags", url.Values{"tag": {"Research"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "1 application")
	assert.Contains(t, body, "NSF Graduate Research Fellowship")
	assert.NotContains(t, body, "Rhodes Scholarship Application")
	assert.Contains(t, body, "Active Filters (1)")

	// Toggling again removes the tag.
	do(t, h, http.MethodPost, "/filters/tags", url.Values{"tag": {"Research"}})
	body = do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "3 applications")
	assert.NotContains(t, body, "Active Filters")
}

func TestToggleTag_RequiresTag(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	rec := do(t, h, http.MethodPost, "/filters/tags", url.Values{"tag": {"  "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchWithoutMatches_ShowsFilteredEmptyState(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	do(t, h, http.MethodPost, "/sort/toggle", url.Values{})
	do(t, h, http.MethodPost, "/filters/search", url.Values{"search": {"no such words"}})

	body := do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "0 applications")
	assert.Contains(t, body, "No matching applications")
	assert.Contains(t, body, "Clear Filters")

	do(t, h, http.MethodPost, "/filters/clear", url.Values{})
	body = do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "3 applications")
	// Clearing filters keeps the sort order.
	assert.Contains(t, body, "Oldest first")
}

func TestEmptyCollection_ShowsGettingStarted(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(nil, nil), false).Handler()
	body := do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "0 applications")
	assert.Contains(t, body, "No application logs yet")
}

func TestDatastarRequest_GetsPatch(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	rec := do(t, h, http.MethodPost, "/sort/toggle", url.Values{}, "Datastar-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "#app-main")
	assert.Contains(t, body, "Oldest first")
}

func TestSearchSignal(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	target := "/search?datastar=" + url.QueryEscape(`{"search":"bias"}`)
	rec := do(t, h, http.MethodGet, target, nil, "Datastar-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 application")
	assert.Contains(t, body, "NSF Graduate Research Fellowship")
}

func TestSelectAndBack(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()

	rec := do(t, h, http.MethodPost, "/select/1", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/applications/1", rec.Header().Get("Location"))

	body := do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "Back to all applications")
	assert.Contains(t, body, "Questions &amp; Responses (2)")
	assert.Contains(t, body, "Applied through university career portal")
	assert.Contains(t, body, `placeholder="Type tag name..."`)
	// Sidebar and count header render next to the detail view.
	assert.Contains(t, body, "Filter by Tags")
	assert.Contains(t, body, `id="app-count">3 applications<`)

	rec = do(t, h, http.MethodPost, "/back", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	body = do(t, h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "3 applications")
	assert.NotContains(t, body, "Back to all applications")
}

func TestSelectUnknown_StaysOnList(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	rec := do(t, h, http.MethodPost, "/select/nope", url.Values{})
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/applications/nope", nil).Code)
}

func TestDetail_CollapsedPreviewShowsMoreCount(t *testing.T) {
	apps := store.MockApplications()
	apps[0].Questions[1].Tags = append(apps[0].Questions[1].Tags, "Teamwork")
	h := newTestServer(t, store.NewMemoryStore(apps, store.KnownTags), false).Handler()

	rec := do(t, h, http.MethodGet, "/applications/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "+1 more")
}

func TestAddAndRemoveTag_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	require.NoError(t, store.WriteFile(path, store.MockApplications(), store.KnownTags))
	st, err := store.Open(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	h := newTestServer(t, st, false).Handler()

	rec := do(t, h, http.MethodPost, "/applications/1/questions/q1/tags", url.Values{"tag": {"  Mentoring  "}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/applications/1", rec.Header().Get("Location"))

	reloaded, err := st.Load(context.Background())
	require.NoError(t, err)
	a, _ := model.FindApplication(reloaded, "1")
	q, _ := a.FindQuestion("q1")
	assert.Equal(t, []string{"Leadership", "Teamwork", "Web Development", "Problem Solving", "Mentoring"}, q.Tags)

	do(t, h, http.MethodPost, "/applications/1/questions/q1/tags/remove", url.Values{"tag": {"Leadership"}})
	reloaded, err = st.Load(context.Background())
	require.NoError(t, err)
	a, _ = model.FindApplication(reloaded, "1")
	q, _ = a.FindQuestion("q1")
	assert.Equal(t, []string{"Teamwork", "Web Development", "Problem Solving", "Mentoring"}, q.Tags)
}

func TestTagEdits_RejectedWhenReadOnly(t *testing.T) {
	h := newTestServer(t, nil, true).Handler()
	rec := do(t, h, http.MethodPost, "/applications/1/questions/q1/tags", url.Values{"tag": {"X"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body := do(t, h, http.MethodGet, "/applications/1", nil).Body.String()
	assert.NotContains(t, body, "Add Tag")
}

func TestNewApplication_IsANoop(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	rec := do(t, h, http.MethodPost, "/applications/new", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, do(t, h, http.MethodGet, "/", nil).Body.String(), "3 applications")
}

func TestStaticAssets(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()

	rec := do(t, h, http.MethodGet, "/static/tags.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".tag-purple{")

	rec = do(t, h, http.MethodGet, "/static/app.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".chip")

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()
	do(t, h, http.MethodGet, "/", nil)
	do(t, h, http.MethodPost, "/applications/1/questions/q1/tags", url.Values{"tag": {"Leadership"}})

	body := do(t, h, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, body, `appresp_http_requests_total{route="GET /{$}",status="200"} 1`)
	assert.Contains(t, body, `appresp_tag_mutations_total{changed="false",kind="add"} 1`)
	assert.Contains(t, body, "appresp_visible_applications 3")
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestAPI_ListAndGet(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()

	rec := do(t, h, http.MethodGet, "/api/applications?tag=Research&tag=Python&sort=date-asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var apps []model.Application
	decodeData(t, rec, &apps)
	require.Len(t, apps, 2)
	assert.Equal(t, "3", apps[0].ID)
	assert.Equal(t, "1", apps[1].ID)

	rec = do(t, h, http.MethodGet, "/api/applications?sort=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/applications/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var a model.Application
	decodeData(t, rec, &a)
	assert.Equal(t, "Rhodes Scholarship Application", a.Name)

	rec = do(t, h, http.MethodGet, "/api/applications/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"not_found"`)
}

func TestAPI_PutTags(t *testing.T) {
	srv := newTestServer(t, nil, false)
	h := srv.Handler()

	put := func(target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := put("/api/applications/2/questions/q3/tags", `{"tags":["Service"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var a model.Application
	decodeData(t, rec, &a)
	assert.Equal(t, []string{"Service"}, a.Questions[0].Tags)

	// The UI sees the same collection.
	assert.Equal(t, []string{"Service"}, mustQuestion(t, srv, "2", "q3").Tags)

	// Unknown question leaves the application untouched.
	rec = put("/api/applications/2/questions/nope/tags", `{"tags":["X"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Service"}, mustQuestion(t, srv, "2", "q3").Tags)

	assert.Equal(t, http.StatusNotFound, put("/api/applications/zzz/questions/q3/tags", `{"tags":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, put("/api/applications/2/questions/q3/tags", `{`).Code)
}

func mustQuestion(t *testing.T, srv *Server, appID, qID string) model.Question {
	t.Helper()
	a, ok := model.FindApplication(srv.snapshot().Apps, appID)
	require.True(t, ok)
	q, ok := a.FindQuestion(qID)
	require.True(t, ok)
	return q
}

func TestAPI_TagsAndSnapshot(t *testing.T) {
	h := newTestServer(t, nil, false).Handler()

	var tags []string
	decodeData(t, do(t, h, http.MethodGet, "/api/tags", nil), &tags)
	assert.Equal(t, store.KnownTags, tags)

	do(t, h, http.MethodPost, "/filters/tags", url.Values{"tag": {"Leadership"}})
	var snap snapshotResponse
	decodeData(t, do(t, h, http.MethodGet, "/api/snapshot", nil), &snap)
	assert.Equal(t, "list", snap.View)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, []string{"Leadership"}, snap.Filter.Tags)
	assert.Equal(t, model.SortDateDesc, snap.Filter.Sort)
}

func TestAPI_ReadOnlyRejectsPut(t *testing.T) {
	h := newTestServer(t, nil, true).Handler()
	req := httptest.NewRequest(http.MethodPut, "/api/applications/1/questions/q1/tags", strings.NewReader(`{"tags":[]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
