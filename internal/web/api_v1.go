package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/watchlist"
)

const (
	maxTeamsBody      = 64 << 10
	defaultFrameScale = 4
	maxFrameScale     = 16
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type scanResponse struct {
	LastAttempt         *time.Time `json:"lastAttempt,omitempty"`
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastError           string     `json:"lastError,omitempty"`
	Games               int        `json:"games"`
}

type drawResponse struct {
	LastDraw  *time.Time `json:"lastDraw,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	Failures  int        `json:"failures"`
}

type statusResponse struct {
	Phase   string       `json:"phase"`
	Display string       `json:"display"`
	Ready   bool         `json:"ready"`
	Scan    scanResponse `json:"scan"`
	Draw    drawResponse `json:"draw"`
}

type apiV1 struct {
	deps   APIV1Deps
	logger logging.Logger
}

func (a *apiV1) handleStatus(w http.ResponseWriter, r *http.Request) {
	if a.deps.Status == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "status not configured")
		return
	}
	snap := a.deps.Status.Snapshot()
	writeJSON(w, http.StatusOK, statusResponse{
		Phase:   snap.Phase.String(),
		Display: snap.Display.String(),
		Ready:   snap.IsReady(),
		Scan: scanResponse{
			LastAttempt:         timePtr(snap.Scan.LastAttempt),
			LastSuccess:         timePtr(snap.Scan.LastSuccess),
			ConsecutiveFailures: snap.Scan.ConsecutiveFailures,
			LastError:           snap.Scan.LastError,
			Games:               snap.Scan.Games,
		},
		Draw: drawResponse{
			LastDraw:  timePtr(snap.Draw.LastDraw),
			LastError: snap.Draw.LastError,
			Failures:  snap.Draw.Failures,
		},
	})
}

func (a *apiV1) handleFrame(w http.ResponseWriter, r *http.Request) {
	if a.deps.Frames == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "frame preview not configured")
		return
	}
	scale := defaultFrameScale
	if raw := r.URL.Query().Get("scale"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxFrameScale {
			writeAPIError(w, http.StatusBadRequest, "invalid_scale", "scale must be between 1 and "+strconv.Itoa(maxFrameScale))
			return
		}
		scale = parsed
	}
	data, err := a.deps.Frames.PNG(scale)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *apiV1) handleGetTeams(w http.ResponseWriter, r *http.Request) {
	if a.deps.Teams == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "watch list not configured")
		return
	}
	writeWatchList(w, http.StatusOK, a.deps.Teams.Current())
}

func (a *apiV1) handlePutTeams(w http.ResponseWriter, r *http.Request) {
	if a.deps.Teams == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "watch list not configured")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTeamsBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAPIError(w, http.StatusRequestEntityTooLarge, "too_large", "watch list too large")
			return
		}
		writeAPIError(w, http.StatusBadRequest, "read_failed", err.Error())
		return
	}
	list, err := watchlist.Decode(body)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_watch_list", err.Error())
		return
	}
	if err := a.deps.Teams.Save(list); err != nil {
		a.logger.Errorf("web", "save watch list: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	a.logger.Infof("web", "watch list updated (%d teams)", list.Len())
	if a.deps.TeamsChanged != nil {
		a.deps.TeamsChanged()
	}
	writeWatchList(w, http.StatusOK, a.deps.Teams.Current())
}

func writeWatchList(w http.ResponseWriter, status int, list watchlist.WatchList) {
	data, err := watchlist.Encode(list)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
