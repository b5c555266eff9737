// Package engine decides what the panel shows each cycle and runs the scan,
// rotate and live-poll loop.
package engine

import (
	"github.com/rook-computer/scoreboard/internal/games"
)

// ModeKind is what a scan asks the panel to do.
type ModeKind int

const (
	ModeNoGames ModeKind = iota
	ModeRotate
	ModeLive
)

func (k ModeKind) String() string {
	switch k {
	case ModeRotate:
		return "rotate"
	case ModeLive:
		return "live"
	default:
		return "no_games"
	}
}

// Mode is the display mode for one cycle with the games it will show.
type Mode struct {
	Kind  ModeKind
	Games []games.Game
}

// Classify picks the display mode. Any in-progress game pre-empts the
// rotation: only the in-progress games are kept and every scheduled or final
// game is dropped for the cycle. Input order is preserved.
func Classify(all []games.Game) Mode {
	if len(all) == 0 {
		return Mode{Kind: ModeNoGames}
	}
	var live []games.Game
	for _, g := range all {
		if g.Status() == games.StatusInProgress {
			live = append(live, g)
		}
	}
	if len(live) > 0 {
		return Mode{Kind: ModeLive, Games: live}
	}
	return Mode{Kind: ModeRotate, Games: append([]games.Game(nil), all...)}
}
