package fixture

import (
	"image/color"
	"time"

	"github.com/rook-computer/scoreboard/internal/games"
)

func team(name, abbreviation string, c color.RGBA) games.Team {
	return games.Team{Name: name, Abbreviation: abbreviation, Color: c, LogoURL: LogoURL(c)}
}

var (
	packers  = team("Green Bay Packers", "GB", color.RGBA{R: 0x20, G: 0x4e, B: 0x32, A: 0xff})
	bears    = team("Chicago Bears", "CHI", color.RGBA{R: 0x0b, G: 0x1c, B: 0x3a, A: 0xff})
	badgers  = team("Wisconsin Badgers", "WIS", color.RGBA{R: 0xc5, G: 0x05, B: 0x0c, A: 0xff})
	hawkeyes = team("Iowa Hawkeyes", "IOWA", color.RGBA{R: 0xfc, G: 0xd1, B: 0x16, A: 0xff})
	bucks    = team("Milwaukee Bucks", "MIL", color.RGBA{R: 0x00, G: 0x47, B: 0x1b, A: 0xff})
	lakers   = team("Los Angeles Lakers", "LAL", color.RGBA{R: 0x55, G: 0x25, B: 0x83, A: 0xff})
	magic    = team("Orlando Magic", "ORL", color.RGBA{R: 0x00, G: 0x77, B: 0xc0, A: 0xff})
	marq     = team("Marquette Golden Eagles", "MARQ", color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff})
	brewers  = team("Milwaukee Brewers", "MIL", color.RGBA{R: 0x12, G: 0x28, B: 0x4b, A: 0xff})
	cubs     = team("Chicago Cubs", "CHC", color.RGBA{R: 0x0e, G: 0x33, B: 0x86, A: 0xff})
)

func matchup(id string, sport games.Sport, away, home games.Team, detail games.Detail) games.Game {
	return games.Game{ID: id, Sport: sport, AwayTeam: away, HomeTeam: home, Detail: detail}
}

// catalog lists the games of a scenario in scan order.
func catalog(s Scenario, start time.Time) []games.Game {
	switch s {
	case ScenarioRotate:
		return []games.Game{
			matchup("fx-nfl-1", games.NFL, bears, packers, games.Scheduled{Start: start}),
			matchup("fx-ncaafb-1", games.NCAAFB, hawkeyes, badgers, games.Final{Score: games.Score{Home: 24, Away: 10}}),
			matchup("fx-nba-1", games.NBA, lakers, bucks, games.Final{Score: games.Score{Home: 118, Away: 109}}),
			matchup("fx-mlb-1", games.MLB, cubs, brewers, games.Scheduled{Start: start.Add(30 * time.Minute)}),
		}
	case ScenarioLive:
		return []games.Game{
			matchup("fx-nfl-2", games.NFL, packers, bears, games.InProgress{Score: games.Score{Home: 7, Away: 14}, Clock: "12:00", Period: "Q2"}),
			matchup("fx-ncaabb-1", games.NCAABB, marq, badgers, games.InProgress{Score: games.Score{Home: 38, Away: 35}, Clock: "12:00", Period: "H2"}),
		}
	case ScenarioMixed:
		return []games.Game{
			matchup("fx-nfl-1", games.NFL, bears, packers, games.Scheduled{Start: start}),
			matchup("fx-nba-2", games.NBA, bucks, magic, games.InProgress{Score: games.Score{Home: 96, Away: 99}, Clock: "12:00", Period: "Q4"}),
		}
	default:
		return nil
	}
}
