package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/watchlist"
)

type testEnv struct {
	router  http.Handler
	teams   *watchlist.Source
	store   *state.Store
	frames  *render.LatestFrame
	changed int
}

func newTestEnv(t *testing.T, cfg ServerConfig) *testEnv {
	t.Helper()
	env := &testEnv{
		teams:  watchlist.NewSource(filepath.Join(t.TempDir(), "teams.json"), logging.Noop{}),
		store:  state.NewStore(),
		frames: &render.LatestFrame{},
	}
	env.router = NewRouter(cfg, APIV1Deps{
		Teams:        env.teams,
		Status:       env.store,
		Frames:       env.frames,
		TeamsChanged: func() { env.changed++ },
	}, logging.Noop{})
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	env := newTestEnv(t, ServerConfig{})

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.do(http.MethodGet, "/readyz", "").Code)

	env.store.RecordScan(time.Now(), 2, nil)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/readyz", "").Code)
}

func TestStatusReportsEngineState(t *testing.T) {
	env := newTestEnv(t, ServerConfig{})
	env.store.SetPhase(state.LIVE)
	env.store.SetDisplay(state.ForMessage("no games"))
	env.store.RecordScan(time.Now(), 3, nil)

	rec := env.do(http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "live", got.Phase)
	assert.Equal(t, "message(no games)", got.Display)
	assert.True(t, got.Ready)
	assert.Equal(t, 3, got.Scan.Games)
	assert.NotNil(t, got.Scan.LastSuccess)
	assert.NotNil(t, got.Draw.LastDraw)
}

func TestFramePreview(t *testing.T) {
	env := newTestEnv(t, ServerConfig{})
	require.NoError(t, env.frames.Show(image.NewRGBA(image.Rect(0, 0, render.Width, render.Height))))

	rec := env.do(http.MethodGet, "/api/v1/frame.png?scale=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2*render.Width, 2*render.Height), img.Bounds())

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/v1/frame.png?scale=99", "").Code)
}

func TestTeamsRoundTrip(t *testing.T) {
	env := newTestEnv(t, ServerConfig{})

	rec := env.do(http.MethodGet, "/api/v1/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)
	before, err := watchlist.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, watchlist.Default(), before)

	rec = env.do(http.MethodPut, "/api/v1/teams", `{"nba": ["Chicago Bulls"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	after, err := watchlist.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicago Bulls"}, after[games.NBA])
	assert.Equal(t, watchlist.Default()[games.NFL], after[games.NFL], "missing sports keep their defaults")
	assert.Equal(t, 1, env.changed)

	reloaded := env.teams.Load(context.Background())
	assert.Equal(t, []string{"Chicago Bulls"}, reloaded[games.NBA])
}

func TestTeamsRejectsInvalidDocuments(t *testing.T) {
	env := newTestEnv(t, ServerConfig{})

	rec := env.do(http.MethodPut, "/api/v1/teams", `{"nhl": ["Chicago Blackhawks"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_watch_list")

	rec = env.do(http.MethodPut, "/api/v1/teams", `{"nfl": `+strings.Repeat(" ", maxTeamsBody)+`[]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, env.changed)
}

func TestTeamWritesAreRateLimited(t *testing.T) {
	env := newTestEnv(t, ServerConfig{TeamWritesPerMinute: 1})

	assert.Equal(t, http.StatusOK, env.do(http.MethodPut, "/api/v1/teams", `{"mlb": ["Chicago Cubs"]}`).Code)
	rec := env.do(http.MethodPut, "/api/v1/teams", `{"mlb": ["Chicago Cubs"]}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/v1/teams", "").Code, "reads are not limited")
}

func TestDevCORS(t *testing.T) {
	env := newTestEnv(t, ServerConfig{DevMode: true})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), "unlisted origins get no CORS headers")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, ServerConfig{})
	rec := env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPServerStartStop(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), logging.Noop{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, srv.Start(ctx))

	resp, err := http.Get("http://" + srv.ListenAddr() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	require.NoError(t, srv.Stop())
	assert.Error(t, srv.Start(ctx), "a stopped server cannot restart")
}
