package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/watchlist"
)

// TeamStore is the watch list behind /api/v1/teams. The concrete
// implementation is *watchlist.Source.
type TeamStore interface {
	Current() watchlist.WatchList
	Save(w watchlist.WatchList) error
}

// StatusSource is typically *state.Store.
type StatusSource interface {
	Snapshot() state.State
}

// FrameSource is typically *render.LatestFrame.
type FrameSource interface {
	PNG(scale int) ([]byte, error)
}

type APIV1Deps struct {
	Teams  TeamStore
	Status StatusSource
	Frames FrameSource

	// TeamsChanged runs after a successful PUT /api/v1/teams.
	TeamsChanged func()
}

// NewRouter builds the router shared by the device and the simulator:
// - /api/v1/* for the API
// - /metrics, /healthz and /readyz for operations
func NewRouter(cfg ServerConfig, deps APIV1Deps, logger logging.Logger) *chi.Mux {
	cfg = cfg.withDefaults()
	logger = logging.OrNoop(logger)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLog(logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORS(cfg.AllowedOrigins))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if deps.Status == nil || !deps.Status.Snapshot().IsReady() {
			writeAPIError(w, http.StatusServiceUnavailable, "not_ready", "no successful scan yet")
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	})
	r.Handle("/metrics", promhttp.Handler())

	api := &apiV1{deps: deps, logger: logger}
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", api.handleStatus)
		r.Get("/frame.png", api.handleFrame)
		r.Get("/teams", api.handleGetTeams)
		r.With(teamWriteLimit(cfg.TeamWritesPerMinute)).Put("/teams", api.handlePutTeams)
	})
	return r
}

func teamWriteLimit(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		perMinute,
		teamWriteWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(teamWriteWindow.Seconds())))
			writeAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "too many watch list updates")
		}),
	)
}

func requestLog(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debugf("web", "%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(started))
		})
	}
}
