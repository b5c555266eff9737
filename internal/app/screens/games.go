package screens

import (
	"fmt"
	"strconv"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/render"
)

// Column positions on the 128 px panel. Wide content (a three letter
// abbreviation or a three digit score) starts five pixels further left.
const (
	awayWideX   = 34
	awayNarrowX = 39
	homeWideX   = 70
	homeNarrowX = 75
	separatorX  = 60

	topBaseline     = 12
	middleBaseline  = 19
	pregameBaseline = 28
	bottomBaseline  = 30

	smallGlyphWidth = 5
	panelCenterX    = render.Width / 2
)

// Pregame shows the start time and both abbreviations.
func Pregame(g games.Game) (Frame, error) {
	detail, ok := g.Detail.(games.Scheduled)
	if !ok {
		return Frame{}, fmt.Errorf("%w: %s is not scheduled", ErrMalformedGame, g)
	}
	if detail.Start.IsZero() {
		return Frame{}, fmt.Errorf("%w: %s has no start time", ErrMalformedGame, g)
	}
	teams, err := teamTexts(g, pregameBaseline)
	if err != nil {
		return Frame{}, err
	}

	clock := detail.Start.Format("03:04")
	meridiem := detail.Start.Format("PM")
	frame := newGameFrame(PregameName, g)
	frame.Texts = append(teams,
		text(34, 14, render.FontLarge, clock),
		text(78, 14, render.FontLarge, meridiem),
	)
	return frame, nil
}

// Live shows the running score, clock and period. The same frame serves the
// first draw of a live game and every later refresh.
func Live(g games.Game) (Frame, error) {
	detail, ok := g.Detail.(games.InProgress)
	if !ok {
		return Frame{}, fmt.Errorf("%w: %s is not in progress", ErrMalformedGame, g)
	}
	teams, err := teamTexts(g, bottomBaseline)
	if err != nil {
		return Frame{}, err
	}

	frame := newGameFrame(LiveName, g)
	frame.Texts = append(teams, scoreTexts(detail.Score)...)
	if detail.Clock != "" {
		frame.Texts = append(frame.Texts, text(ClockX(detail.Clock), middleBaseline, render.FontSmall, detail.Clock))
	}
	period := detail.Period
	if period == "" && g.Sport.Layout() == games.LayoutFootball {
		period = "Q?"
	}
	if period != "" {
		frame.Texts = append(frame.Texts, text(61, topBaseline, render.FontSmall, period))
	}
	return frame, nil
}

// Postgame shows the final score.
func Postgame(g games.Game) (Frame, error) {
	detail, ok := g.Detail.(games.Final)
	if !ok {
		return Frame{}, fmt.Errorf("%w: %s is not final", ErrMalformedGame, g)
	}
	teams, err := teamTexts(g, bottomBaseline)
	if err != nil {
		return Frame{}, err
	}

	frame := newGameFrame(PostgameName, g)
	frame.Texts = append(teams, text(52, middleBaseline, render.FontSmall, "FINAL"))
	frame.Texts = append(frame.Texts, scoreTexts(detail.Score)...)
	return frame, nil
}

// ForGame picks the full-draw screen matching the game status.
func ForGame(g games.Game) (Frame, error) {
	switch g.Status() {
	case games.StatusInProgress:
		return Live(g)
	case games.StatusFinal:
		return Postgame(g)
	default:
		return Pregame(g)
	}
}

// ClockX centres a small-font clock on the panel.
func ClockX(clock string) int {
	return panelCenterX - (len(clock)*smallGlyphWidth-1)/2
}

// AbbreviationX returns the x position of an abbreviation on either side.
func AbbreviationX(abbreviation string, home bool) int {
	wide := len(abbreviation) == 3
	return sideX(wide, home)
}

// ScoreX returns the x position of a score on either side.
func ScoreX(score int, home bool) int {
	return sideX(score >= 100, home)
}

func sideX(wide, home bool) int {
	switch {
	case home && wide:
		return homeWideX
	case home:
		return homeNarrowX
	case wide:
		return awayWideX
	default:
		return awayNarrowX
	}
}

func newGameFrame(name string, g games.Game) Frame {
	return Frame{
		Name:     name,
		AwayLogo: g.AwayTeam.LogoURL,
		HomeLogo: g.HomeTeam.LogoURL,
	}
}

func teamTexts(g games.Game, baseline int) ([]Text, error) {
	away, home := g.AwayTeam.Abbreviation, g.HomeTeam.Abbreviation
	if away == "" || home == "" {
		return nil, fmt.Errorf("%w: %s is missing a team abbreviation", ErrMalformedGame, g)
	}
	return []Text{
		text(AbbreviationX(away, false), baseline, render.FontLarge, away),
		text(AbbreviationX(home, true), baseline, render.FontLarge, home),
		text(separatorX, baseline, render.FontLarge, "@"),
	}, nil
}

func scoreTexts(score games.Score) []Text {
	return []Text{
		text(ScoreX(score.Away, false), topBaseline, render.FontLarge, strconv.Itoa(score.Away)),
		text(ScoreX(score.Home, true), topBaseline, render.FontLarge, strconv.Itoa(score.Home)),
	}
}
