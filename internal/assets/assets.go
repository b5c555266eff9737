package assets

import _ "embed"

// DefaultTeamsJSON is the watch list used until a teams file exists.
//
//go:embed default_teams.json
var DefaultTeamsJSON []byte
