// Package metrics exposes Prometheus counters for the display engine and the
// game data provider.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scoreboard"

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Full watch-list scans by result",
	}, []string{"result"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Time spent fetching games for every watched sport",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	RedrawsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redraws_total",
		Help:      "Frames published to the panel by screen",
	}, []string{"screen"})

	DrawFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draw_failures_total",
		Help:      "Draw attempts that left the previous frame on screen",
	}, []string{"screen"})

	LiveUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_updates_total",
		Help:      "Live score polls by result",
	}, []string{"result"})

	ProviderRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Game data provider requests by sport, operation and result",
	}, []string{"sport", "op", "result"})

	displayMode = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "display_mode",
		Help:      "Active display mode (1 for the current mode, 0 otherwise)",
	}, []string{"mode"})
)

var modes = []string{"no_games", "rotate", "live"}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ObserveScan(started time.Time, err error) {
	ScansTotal.WithLabelValues(result(err)).Inc()
	ScanDuration.Observe(time.Since(started).Seconds())
}

func IncRedraw(screen string) {
	RedrawsTotal.WithLabelValues(screen).Inc()
}

func IncDrawFailure(screen string) {
	DrawFailuresTotal.WithLabelValues(screen).Inc()
}

func IncLiveUpdate(err error) {
	LiveUpdatesTotal.WithLabelValues(result(err)).Inc()
}

func IncProviderRequest(sport, op string, err error) {
	if sport == "" {
		sport = "unknown"
	}
	ProviderRequestsTotal.WithLabelValues(sport, op, result(err)).Inc()
}

// SetMode marks mode as the active display mode.
func SetMode(mode string) {
	for _, m := range modes {
		value := 0.0
		if m == mode {
			value = 1.0
		}
		displayMode.WithLabelValues(m).Set(value)
	}
}
