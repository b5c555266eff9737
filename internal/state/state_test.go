package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/scoreboard/internal/games"
)

func game(home string, detail games.Detail) games.Game {
	return games.Game{
		Sport:    games.NFL,
		HomeTeam: games.Team{Name: home},
		AwayTeam: games.Team{Name: "Away"},
		Detail:   detail,
	}
}

func TestDisplayInitialStateAlwaysRedraws(t *testing.T) {
	var d Display
	assert.Equal(t, EMPTY, d.Current().Kind)
	assert.True(t, d.NeedsRedraw(ForMessage("no games")))
	assert.True(t, d.NeedsRedraw(ForGame(game("Green Bay Packers", nil))))
	assert.True(t, d.NeedsRedraw(Candidate{}), "empty never equals empty")
}

func TestDisplayComparesHomeTeamOnly(t *testing.T) {
	var d Display
	first := game("Green Bay Packers", games.Final{Score: games.Score{Home: 21, Away: 14}})
	d.Commit(ForGame(first))

	rescored := game("Green Bay Packers", games.Final{Score: games.Score{Home: 28, Away: 14}})
	assert.False(t, d.NeedsRedraw(ForGame(rescored)), "score changes do not redraw")

	live := game("Green Bay Packers", games.InProgress{Clock: "2:00", Period: "Q4"})
	assert.False(t, d.NeedsRedraw(ForGame(live)), "status changes do not redraw")

	other := game("Chicago Bears", nil)
	assert.True(t, d.NeedsRedraw(ForGame(other)))
}

func TestDisplayMessageAndGameNeverCollide(t *testing.T) {
	var d Display
	d.Commit(ForMessage("NO GAMES"))
	assert.True(t, d.NeedsRedraw(ForGame(game("NO GAMES", nil))))
	assert.False(t, d.NeedsRedraw(ForMessage("NO GAMES")))
}

func TestDisplayCommitIsIdempotent(t *testing.T) {
	var d Display
	c := ForGame(game("Milwaukee Bucks", nil))
	d.Commit(c)
	d.Commit(c)
	assert.Equal(t, c, d.Current())
	assert.False(t, d.NeedsRedraw(c))

	d.Reset()
	assert.True(t, d.NeedsRedraw(c))
}

func TestCandidateString(t *testing.T) {
	assert.Equal(t, "empty", Candidate{}.String())
	assert.Equal(t, "message(NO GAMES)", ForMessage("NO GAMES").String())
	assert.Equal(t, "showing(Chicago Cubs)", ForGame(game("Chicago Cubs", nil)).String())
}

func TestStoreScanHealth(t *testing.T) {
	store := NewStore()
	require.Equal(t, BOOTING, store.Snapshot().Phase)
	assert.False(t, store.Snapshot().IsReady(), "not ready before the first scan")

	now := time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)
	store.RecordScan(now, 4, nil)
	snap := store.Snapshot()
	assert.True(t, snap.IsReady())
	assert.Equal(t, 4, snap.Scan.Games)

	boom := errors.New("espn down")
	for i := 1; i <= 3; i++ {
		store.RecordScan(now.Add(time.Duration(i)*time.Minute), 0, boom)
	}
	snap = store.Snapshot()
	assert.Equal(t, 3, snap.Scan.ConsecutiveFailures)
	assert.Equal(t, "espn down", snap.Scan.LastError)
	assert.Equal(t, now, snap.Scan.LastSuccess)
	assert.False(t, snap.IsReady())

	store.RecordScan(now.Add(time.Hour), 1, nil)
	snap = store.Snapshot()
	assert.Zero(t, snap.Scan.ConsecutiveFailures)
	assert.Empty(t, snap.Scan.LastError)
	assert.True(t, snap.IsReady())
}

func TestStoreDisplayAndDraws(t *testing.T) {
	store := NewStore()
	store.SetPhase(LIVE)
	store.SetDisplay(ForMessage("NO GAMES"))
	store.RecordDrawFailure(nil)
	store.RecordDrawFailure(errors.New("logo 404"))

	snap := store.Snapshot()
	assert.Equal(t, "live", snap.Phase.String())
	assert.Equal(t, ForMessage("NO GAMES"), snap.Display)
	assert.False(t, snap.Draw.LastDraw.IsZero())
	assert.Equal(t, 1, snap.Draw.Failures)
	assert.Equal(t, "logo 404", snap.Draw.LastError)
}
