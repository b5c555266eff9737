// Package espn reads scoreboards and live game summaries from the public
// ESPN site API.
package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/provider"
)

const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

const maxBodyBytes = 8 << 20

var sportPaths = map[games.Sport]string{
	games.NFL:    "football/nfl",
	games.NCAAFB: "football/college-football",
	games.NBA:    "basketball/nba",
	games.NCAABB: "basketball/mens-college-basketball",
	games.MLB:    "baseball/mlb",
}

type logger interface {
	Debugf(component string, format string, args ...interface{})
}

// Client implements provider.GameProvider against the ESPN site API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

var _ provider.GameProvider = (*Client)(nil)

func (c *Client) FetchGames(ctx context.Context, sport games.Sport, teams []string, utcOffset int) ([]games.Game, error) {
	path, ok := sportPaths[sport]
	if !ok {
		return nil, fmt.Errorf("espn: unsupported sport %q", sport)
	}
	if len(teams) == 0 {
		return nil, nil
	}
	body, err := c.get(ctx, c.BaseURL+"/"+path+"/scoreboard")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("espn: %s scoreboard is not valid json", sport)
	}

	zone := time.FixedZone(fmt.Sprintf("UTC%+d", utcOffset), utcOffset*3600)
	var out []games.Game
	gjson.GetBytes(body, "events").ForEach(func(_, event gjson.Result) bool {
		game, err := parseEvent(sport, event, zone)
		if err != nil {
			c.debugf("skip %s event %s: %v", sport, event.Get("id").String(), err)
			return true
		}
		for i := 0; i < watchCount(teams, game); i++ {
			out = append(out, game)
		}
		return true
	})
	return out, nil
}

func (c *Client) FetchUpdate(ctx context.Context, game games.Game) (games.Update, error) {
	path, ok := sportPaths[game.Sport]
	if !ok {
		return games.Update{}, fmt.Errorf("espn: unsupported sport %q", game.Sport)
	}
	if game.ID == "" {
		return games.Update{}, fmt.Errorf("espn: %w: game has no id", provider.ErrUnknownGame)
	}
	body, err := c.get(ctx, c.BaseURL+"/"+path+"/summary?event="+url.QueryEscape(game.ID))
	if err != nil {
		return games.Update{}, err
	}

	competition := gjson.GetBytes(body, "header.competitions.0")
	if !competition.Exists() {
		return games.Update{}, fmt.Errorf("espn: %w: %s", provider.ErrUnknownGame, game.ID)
	}
	score, err := parseScore(competition)
	if err != nil {
		return games.Update{}, err
	}
	status := competition.Get("status")
	return games.Update{
		Score:  score,
		Clock:  status.Get("displayClock").String(),
		Period: PeriodLabel(game.Sport, int(status.Get("period").Int())),
	}, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("espn: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("espn: %s: unexpected status %d", req.URL.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("espn: read body: %w", err)
	}
	return body, nil
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Debugf("espn", format, args...)
	}
}

// watchCount is how many watch-list entries name either side of game.
func watchCount(teams []string, game games.Game) int {
	n := 0
	for _, team := range teams {
		if team == game.HomeTeam.Name || team == game.AwayTeam.Name {
			n++
		}
	}
	return n
}
