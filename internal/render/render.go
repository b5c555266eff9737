package render

import (
	"image"
	"image/color"
)

// Panel geometry: two 32x64 panels chained side by side.
const (
	Width    = 128
	Height   = 32
	LogoSize = 32

	// Logo slots are fixed: away on the left edge, home on the right edge.
	AwayLogoX = 0
	HomeLogoX = Width - LogoSize
)

var (
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Black = color.RGBA{A: 0xFF}
)

// FontSize selects one of the panel fonts.
type FontSize int

const (
	FontSmall    FontSize = iota // ~5x8 cells, clock and markers
	FontLarge                    // ~8x13 bold, abbreviations and scores
	FontHeadline                 // ~9x15 bold, full-panel messages
)

func (s FontSize) String() string {
	switch s {
	case FontSmall:
		return "small"
	case FontLarge:
		return "large"
	case FontHeadline:
		return "headline"
	default:
		return "unknown"
	}
}

// Surface is the drawing target owned by the display engine. Drawing goes to
// a back buffer; nothing is visible until Swap.
type Surface interface {
	Clear()
	// DrawText draws s with its baseline at y and its left edge at x.
	DrawText(x, y int, c color.Color, size FontSize, s string) error
	DrawImage(img image.Image, x, y int)
	Swap() error
}

// Sink receives every published frame. Implementations must not retain
// frame after Show returns.
type Sink interface {
	Show(frame *image.RGBA) error
	Close() error
}
