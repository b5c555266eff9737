// Package games holds the game snapshot model shared by providers, the
// display engine and the screens.
package games

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

type Sport string

const (
	NFL    Sport = "nfl"
	NCAAFB Sport = "ncaafb"
	NBA    Sport = "nba"
	NCAABB Sport = "ncaabb"
	MLB    Sport = "mlb"
)

// Sports is the fixed scan order. Rotation order follows it.
var Sports = []Sport{NFL, NCAAFB, NBA, NCAABB, MLB}

// ParseSport accepts the short league identifiers used in the teams file.
func ParseSport(raw string) (Sport, error) {
	sport := Sport(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Sports {
		if sport == known {
			return sport, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q", raw)
}

type Layout int

const (
	LayoutBasketball Layout = iota
	LayoutFootball
)

func (l Layout) String() string {
	if l == LayoutFootball {
		return "football"
	}
	return "basketball"
}

// Layout picks the live layout. Baseball and anything unknown use the
// basketball-style layout.
func (s Sport) Layout() Layout {
	switch s {
	case NFL, NCAAFB:
		return LayoutFootball
	default:
		return LayoutBasketball
	}
}

type Status int

const (
	StatusScheduled Status = iota
	StatusInProgress
	StatusFinal
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusInProgress:
		return "in_progress"
	case StatusFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Team is one side of a contest. Name is the display name and doubles as
// the team identity.
type Team struct {
	Name         string
	Abbreviation string
	Color        color.RGBA
	LogoURL      string
}

type Score struct {
	Home int
	Away int
}

// Detail carries the fields that only exist for a given status.
type Detail interface {
	status() Status
}

type Scheduled struct {
	Start time.Time
}

type InProgress struct {
	Score  Score
	Clock  string
	Period string
}

type Final struct {
	Score Score
}

func (Scheduled) status() Status  { return StatusScheduled }
func (InProgress) status() Status { return StatusInProgress }
func (Final) status() Status      { return StatusFinal }

// Game is one snapshot of a contest. Snapshots are replaced, never mutated.
type Game struct {
	ID       string
	Sport    Sport
	HomeTeam Team
	AwayTeam Team
	Detail   Detail
}

// Status reports the status implied by the detail variant. A game without
// detail counts as scheduled.
func (g Game) Status() Status {
	if g.Detail == nil {
		return StatusScheduled
	}
	return g.Detail.status()
}

// Score returns the score for in-progress and final games.
func (g Game) Score() (Score, bool) {
	switch d := g.Detail.(type) {
	case InProgress:
		return d.Score, true
	case Final:
		return d.Score, true
	default:
		return Score{}, false
	}
}

// Update is the partial record returned by a live poll.
type Update struct {
	Score  Score
	Clock  string
	Period string
}

// WithUpdate returns a new in-progress snapshot carrying the polled values.
func (g Game) WithUpdate(u Update) Game {
	next := g
	next.Detail = InProgress{Score: u.Score, Clock: u.Clock, Period: u.Period}
	return next
}

func (g Game) String() string {
	return fmt.Sprintf("%s %s@%s (%s)", g.Sport, g.AwayTeam.Abbreviation, g.HomeTeam.Abbreviation, g.Status())
}

// ParseColor decodes a six digit hex color, with or without a leading '#'.
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 hex digits", hex)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value), A: 0xFF}, nil
}
