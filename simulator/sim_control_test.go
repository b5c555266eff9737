package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/provider/fixture"
)

func newSimRouter(control *SimControl) http.Handler {
	r := chi.NewRouter()
	registerSimEndpoints(r, control)
	return r
}

func TestSimScenarioSwitchRequestsRescan(t *testing.T) {
	rescans := 0
	control := NewSimControl(fixture.ScenarioNone, func() { rescans++ })
	router := newSimRouter(control)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/scenario/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.ScenarioLive, control.Scenario())
	assert.Equal(t, 1, rescans)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/scenario/overtime", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, rescans)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.ScenarioNone, control.Scenario())
}

func TestSimFaultsInjectFailures(t *testing.T) {
	control := NewSimControl(fixture.ScenarioLive, nil)
	router := newSimRouter(control)
	ctx := context.Background()
	teams := []string{"Green Bay Packers"}

	found, err := control.FetchGames(ctx, games.NFL, teams, -5)
	require.NoError(t, err)
	require.Len(t, found, 1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/faults", strings.NewReader(`{"scanFail": true, "logoFail": true}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = control.FetchGames(ctx, games.NFL, teams, -5)
	assert.ErrorIs(t, err, errSimulated)
	_, err = control.Fetch(ctx, found[0].HomeTeam.LogoURL)
	assert.ErrorIs(t, err, errSimulated)
	_, err = control.FetchUpdate(ctx, found[0])
	assert.NoError(t, err, "updates were not faulted")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/faults", strings.NewReader(`{"logoFail": false}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, SimFaults{ScanFail: true}, control.Faults(), "omitted fields are kept")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/faults", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, control.Reset())
	assert.Equal(t, SimFaults{}, control.Faults())
}
