package state

import (
	"fmt"

	"github.com/rook-computer/scoreboard/internal/games"
)

// Kind is the sort of content on the panel.
type Kind int

const (
	EMPTY Kind = iota
	MESSAGE
	SHOWING
)

func (k Kind) String() string {
	switch k {
	case MESSAGE:
		return "message"
	case SHOWING:
		return "showing"
	default:
		return "empty"
	}
}

// Candidate is something the engine is about to put on the panel. Only Kind
// and Identity take part in redraw decisions.
type Candidate struct {
	Kind     Kind
	Identity string
}

// ForGame identifies a game by its home team display name. Two games with the
// same home team are the same candidate, whatever their score or status.
func ForGame(g games.Game) Candidate {
	return Candidate{Kind: SHOWING, Identity: g.HomeTeam.Name}
}

// ForMessage identifies a full-panel message by its text.
func ForMessage(text string) Candidate {
	return Candidate{Kind: MESSAGE, Identity: text}
}

func (c Candidate) String() string {
	if c.Kind == EMPTY {
		return "empty"
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Identity)
}

// Display tracks what is on the panel right now. The zero value is Empty.
// It is owned by the scheduler goroutine and is not safe for concurrent use.
type Display struct {
	current Candidate
}

func (d *Display) Current() Candidate { return d.current }

// NeedsRedraw reports whether candidate differs from the committed state.
// Empty never matches, so the first call is always true.
func (d *Display) NeedsRedraw(candidate Candidate) bool {
	if d.current.Kind == EMPTY {
		return true
	}
	return d.current != candidate
}

// Commit records candidate as the frame on screen.
func (d *Display) Commit(candidate Candidate) {
	d.current = candidate
}

// Reset returns to Empty, forcing the next candidate to redraw.
func (d *Display) Reset() {
	d.current = Candidate{}
}
