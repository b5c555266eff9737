// Package watchlist loads, saves and watches the per-sport list of teams the
// panel follows.
package watchlist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/games"
)

// WatchList maps a sport to the display names of its watched teams, in
// order. Duplicates are kept.
type WatchList map[games.Sport][]string

// Clone returns a deep copy.
func (w WatchList) Clone() WatchList {
	out := make(WatchList, len(w))
	for sport, teams := range w {
		out[sport] = append([]string(nil), teams...)
	}
	return out
}

// Len counts watched entries across sports.
func (w WatchList) Len() int {
	n := 0
	for _, teams := range w {
		n += len(teams)
	}
	return n
}

// Decode parses a teams document such as {"nfl": ["Green Bay Packers"]}.
// Unknown sports and blank names are rejected.
func Decode(data []byte) (WatchList, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode watch list: %w", err)
	}
	out := make(WatchList, len(raw))
	for key, teams := range raw {
		sport, err := games.ParseSport(key)
		if err != nil {
			return nil, fmt.Errorf("decode watch list: %w", err)
		}
		names := make([]string, 0, len(teams))
		for _, team := range teams {
			team = strings.TrimSpace(team)
			if team == "" {
				return nil, fmt.Errorf("decode watch list: blank team name for %s", sport)
			}
			names = append(names, team)
		}
		out[sport] = names
	}
	return out, nil
}

// Encode writes the document with every sport present, in scan order.
func Encode(w WatchList) ([]byte, error) {
	doc := make(map[string][]string, len(games.Sports))
	for _, sport := range games.Sports {
		teams := w[sport]
		if teams == nil {
			teams = []string{}
		}
		doc[string(sport)] = teams
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Default returns the built-in watch list.
func Default() WatchList {
	w, err := Decode(assets.DefaultTeamsJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded default teams: %v", err))
	}
	return w
}

// withDefaults fills sports missing from w with the default teams.
func withDefaults(w, defaults WatchList) WatchList {
	out := w.Clone()
	for _, sport := range games.Sports {
		if _, ok := out[sport]; !ok {
			out[sport] = append([]string(nil), defaults[sport]...)
		}
	}
	return out
}
