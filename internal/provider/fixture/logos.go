package fixture

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/rook-computer/scoreboard/internal/games"
	"github.com/rook-computer/scoreboard/internal/render"
)

const logoScheme = "fixture://"

// LogoURL encodes a team color as a logo reference Logos understands.
func LogoURL(c color.RGBA) string {
	return fmt.Sprintf("%s%02x%02x%02x", logoScheme, c.R, c.G, c.B)
}

// Logos is an images.Fetcher that draws a team-colored badge instead of
// downloading a logo.
type Logos struct{}

func (Logos) Fetch(ctx context.Context, url string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hex, ok := strings.CutPrefix(url, logoScheme)
	if !ok {
		return nil, fmt.Errorf("fixture: not a fixture logo: %q", url)
	}
	c, err := games.ParseColor(hex)
	if err != nil {
		return nil, fmt.Errorf("fixture logo: %w", err)
	}

	size := render.LogoSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: render.Black}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(2, 2, size-2, size-2), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img, nil
}
