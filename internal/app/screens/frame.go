// Package screens turns a game snapshot into the text and images of one
// panel frame. Screens only describe a frame; the engine paints it.
package screens

import (
	"errors"
	"image"
	"image/color"

	"github.com/rook-computer/scoreboard/internal/render"
)

// ErrMalformedGame is returned when a game lacks a field its layout needs.
var ErrMalformedGame = errors.New("malformed game")

// Frame names, also used as metric labels.
const (
	PregameName  = "pregame"
	LiveName     = "live"
	PostgameName = "postgame"
	NoGamesName  = "no_games"
	SplashName   = "splash"
)

// Text is a string drawn with its baseline at (X, Y).
type Text struct {
	X, Y  int
	Color color.RGBA
	Size  render.FontSize
	Value string
}

// Image is an already decoded image placed at (X, Y).
type Image struct {
	X, Y int
	Img  image.Image
}

// Frame is everything drawn on one panel frame. Logos are referenced by URL
// and resolved by the painter, which fetches or reuses them.
type Frame struct {
	Name     string
	Texts    []Text
	Images   []Image
	AwayLogo string
	HomeLogo string
}

// HasLogos reports whether the frame shows team logos.
func (f Frame) HasLogos() bool {
	return f.AwayLogo != "" || f.HomeLogo != ""
}

func text(x, y int, size render.FontSize, value string) Text {
	return Text{X: x, Y: y, Color: render.White, Size: size, Value: value}
}
