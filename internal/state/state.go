package state

import (
	"sync"
	"time"
)

// Phase is where the engine is in its lifecycle.
type Phase int

const (
	BOOTING Phase = iota
	SPLASH
	NO_GAMES
	ROTATING
	LIVE
	STOPPED
)

func (p Phase) String() string {
	switch p {
	case SPLASH:
		return "splash"
	case NO_GAMES:
		return "no_games"
	case ROTATING:
		return "rotating"
	case LIVE:
		return "live"
	case STOPPED:
		return "stopped"
	default:
		return "booting"
	}
}

// unhealthyAfter is how many scans in a row may fail before the engine
// reports itself not ready.
const unhealthyAfter = 3

// ScanInfo is the health of the game scans.
type ScanInfo struct {
	LastAttempt         time.Time
	LastSuccess         time.Time
	ConsecutiveFailures int
	LastError           string
	Games               int
}

// DrawInfo records the last draw and draw failures.
type DrawInfo struct {
	LastDraw  time.Time
	LastError string
	Failures  int
}

// State is a copy of the store, as returned by Snapshot.
type State struct {
	Phase   Phase
	Display Candidate
	Scan    ScanInfo
	Draw    DrawInfo
}

// IsReady reports whether recent scans have succeeded.
func (s State) IsReady() bool {
	return !s.Scan.LastSuccess.IsZero() && s.Scan.ConsecutiveFailures < unhealthyAfter
}

// Store publishes the engine's state to readers such as the HTTP API.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetDisplay(c Candidate) {
	store.mu.Lock()
	store.state.Display = c
	store.state.Draw.LastDraw = time.Now()
	store.mu.Unlock()
}

func (store *Store) RecordScan(at time.Time, found int, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	scan := &store.state.Scan
	scan.LastAttempt = at
	if err != nil {
		scan.ConsecutiveFailures++
		scan.LastError = err.Error()
		return
	}
	scan.LastSuccess = at
	scan.ConsecutiveFailures = 0
	scan.LastError = ""
	scan.Games = found
}

func (store *Store) RecordDrawFailure(err error) {
	if err == nil {
		return
	}
	store.mu.Lock()
	store.state.Draw.Failures++
	store.state.Draw.LastError = err.Error()
	store.mu.Unlock()
}
