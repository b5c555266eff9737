package espn

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rook-computer/scoreboard/internal/games"
)

var errMissingCompetitor = errors.New("missing competitor")

// ESPN writes event dates without seconds, e.g. 2025-11-02T18:00Z.
var dateLayouts = []string{"2006-01-02T15:04Z07:00", "2006-01-02T15:04Z", time.RFC3339}

func parseEvent(sport games.Sport, event gjson.Result, zone *time.Location) (games.Game, error) {
	competition := event.Get("competitions.0")
	if !competition.Exists() {
		return games.Game{}, errors.New("no competition")
	}
	home, away, err := parseTeams(competition)
	if err != nil {
		return games.Game{}, err
	}
	game := games.Game{
		ID:       event.Get("id").String(),
		Sport:    sport,
		HomeTeam: home,
		AwayTeam: away,
	}

	status := event.Get("status")
	if !status.Exists() {
		status = competition.Get("status")
	}
	switch statusOf(status) {
	case games.StatusInProgress:
		score, err := parseScore(competition)
		if err != nil {
			return games.Game{}, err
		}
		game.Detail = games.InProgress{
			Score:  score,
			Clock:  status.Get("displayClock").String(),
			Period: PeriodLabel(sport, int(status.Get("period").Int())),
		}
	case games.StatusFinal:
		score, err := parseScore(competition)
		if err != nil {
			return games.Game{}, err
		}
		game.Detail = games.Final{Score: score}
	default:
		start, err := parseDate(event.Get("date").String())
		if err != nil {
			return games.Game{}, err
		}
		game.Detail = games.Scheduled{Start: start.In(zone)}
	}
	return game, nil
}

// statusOf maps the ESPN status type. Names outside the three the panel
// knows (halftime, end of period, delays) fall back to the coarse state.
func statusOf(status gjson.Result) games.Status {
	switch status.Get("type.name").String() {
	case "STATUS_SCHEDULED":
		return games.StatusScheduled
	case "STATUS_IN_PROGRESS":
		return games.StatusInProgress
	case "STATUS_FINAL":
		return games.StatusFinal
	}
	switch status.Get("type.state").String() {
	case "in":
		return games.StatusInProgress
	case "post":
		return games.StatusFinal
	default:
		return games.StatusScheduled
	}
}

func parseTeams(competition gjson.Result) (home, away games.Team, err error) {
	var foundHome, foundAway bool
	competition.Get("competitors").ForEach(func(_, c gjson.Result) bool {
		team := parseTeam(c.Get("team"))
		switch c.Get("homeAway").String() {
		case "home":
			home, foundHome = team, true
		case "away":
			away, foundAway = team, true
		}
		return true
	})
	if !foundHome || !foundAway {
		return games.Team{}, games.Team{}, errMissingCompetitor
	}
	return home, away, nil
}

func parseTeam(t gjson.Result) games.Team {
	team := games.Team{
		Name:         t.Get("displayName").String(),
		Abbreviation: t.Get("abbreviation").String(),
		LogoURL:      t.Get("logo").String(),
		Color:        colorOrWhite(t.Get("color").String()),
	}
	if team.LogoURL == "" {
		team.LogoURL = t.Get("logos.0.href").String()
	}
	return team
}

func colorOrWhite(hex string) color.RGBA {
	c, err := games.ParseColor(hex)
	if err != nil {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return c
}

func parseScore(competition gjson.Result) (games.Score, error) {
	var score games.Score
	var seen int
	var parseErr error
	competition.Get("competitors").ForEach(func(_, c gjson.Result) bool {
		value, err := scoreValue(c.Get("score"))
		if err != nil {
			parseErr = err
			return false
		}
		switch c.Get("homeAway").String() {
		case "home":
			score.Home = value
			seen++
		case "away":
			score.Away = value
			seen++
		}
		return true
	})
	if parseErr != nil {
		return games.Score{}, parseErr
	}
	if seen < 2 {
		return games.Score{}, errMissingCompetitor
	}
	return score, nil
}

// scoreValue reads a score that ESPN sends as a string on scoreboards and
// sometimes as a number or an object on summaries.
func scoreValue(v gjson.Result) (int, error) {
	var n int
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		n = int(v.Int())
	case gjson.JSON:
		return scoreValue(v.Get("value"))
	default:
		raw := strings.TrimSpace(v.String())
		if raw == "" {
			return 0, nil
		}
		var err error
		if n, err = strconv.Atoi(raw); err != nil {
			return 0, fmt.Errorf("score %q: %w", raw, err)
		}
	}
	if n < 0 {
		return 0, fmt.Errorf("score %d is negative", n)
	}
	return n, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("event date %q not recognised", raw)
}

// PeriodLabel renders the period marker drawn next to the live clock.
func PeriodLabel(sport games.Sport, period int) string {
	if period <= 0 {
		return ""
	}
	switch sport {
	case games.NCAABB:
		if period > 2 {
			return "OT"
		}
		return fmt.Sprintf("H%d", period)
	case games.MLB:
		return fmt.Sprintf("I%d", period)
	default:
		if period > 4 {
			return "OT"
		}
		return fmt.Sprintf("Q%d", period)
	}
}
