package fixture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/provider"
)

func fixedProvider(s Scenario) *Provider {
	p := New(s)
	p.now = func() time.Time { return time.Date(2025, 11, 2, 15, 20, 0, 0, time.UTC) }
	return p
}

func TestFetchGamesFiltersByWatchList(t *testing.T) {
	p := fixedProvider(ScenarioRotate)
	ctx := context.Background()

	got, err := p.FetchGames(ctx, games.NFL, []string{"Green Bay Packers"}, -5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	start := got[0].Detail.(games.Scheduled).Start
	assert.Equal(t, "01:00 PM", start.Format("03:04 PM"))

	got, err = p.FetchGames(ctx, games.NFL, []string{"Green Bay Packers", "Chicago Bears"}, -5)
	require.NoError(t, err)
	assert.Len(t, got, 2, "both sides watched yields the game twice")

	got, err = p.FetchGames(ctx, games.NFL, []string{"Detroit Lions"}, -5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScenarioSwitch(t *testing.T) {
	p := fixedProvider(ScenarioNone)
	got, err := p.FetchGames(context.Background(), games.NBA, []string{"Milwaukee Bucks"}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	p.SetScenario(ScenarioMixed)
	assert.Equal(t, ScenarioMixed, p.Scenario())
	got, err = p.FetchGames(context.Background(), games.NBA, []string{"Milwaukee Bucks"}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, games.StatusInProgress, got[0].Status())
}

func TestFetchUpdateAdvances(t *testing.T) {
	p := fixedProvider(ScenarioLive)
	got, err := p.FetchGames(context.Background(), games.NFL, []string{"Chicago Bears"}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	first, err := p.FetchUpdate(context.Background(), got[0])
	require.NoError(t, err)
	assert.Equal(t, games.Score{Home: 10, Away: 14}, first.Score)
	assert.Equal(t, "11:13", first.Clock)
	assert.Equal(t, "Q2", first.Period)

	second, err := p.FetchUpdate(context.Background(), got[0])
	require.NoError(t, err)
	assert.Equal(t, games.Score{Home: 7, Away: 17}, second.Score)

	_, err = p.FetchUpdate(context.Background(), games.Game{ID: "x", Detail: games.Final{}})
	assert.True(t, errors.Is(err, provider.ErrUnknownGame))
}

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario(" LIVE ")
	require.NoError(t, err)
	assert.Equal(t, ScenarioLive, s)
	_, err = ParseScenario("overtime")
	assert.Error(t, err)
}

func TestLogos(t *testing.T) {
	img, err := Logos{}.Fetch(context.Background(), LogoURL(packers.Color))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	r, g, b, _ := img.At(16, 16).RGBA()
	assert.Equal(t, []uint32{0x20, 0x4e, 0x32}, []uint32{r >> 8, g >> 8, b >> 8})
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Zero(t, r)

	_, err = Logos{}.Fetch(context.Background(), "https://example.com/logo.png")
	assert.Error(t, err)
}
