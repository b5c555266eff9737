package screens

import (
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/render/layout"
)

// NoGamesMessage identifies the no-games frame for redraw decisions.
const NoGamesMessage = "no games"

func NoGames() Frame {
	return Frame{
		Name: NoGamesName,
		Texts: []Text{
			text(28, 14, render.FontHeadline, "NO GAMES"),
			text(37, 28, render.FontHeadline, "TODAY!"),
		},
	}
}

const splashTextInset = 6

// Splash shows a QR code for the control API next to a short hint.
func Splash(panelURL string) (Frame, error) {
	panel := image.Rect(0, 0, render.Width, render.Height)
	qrArea, textArea := layout.SplitVertical(panel, render.LogoSize)
	square := layout.FitSquare(qrArea)

	qr, err := render.QRCodeImage(panelURL, square.Dx())
	if err != nil {
		return Frame{}, fmt.Errorf("splash qr code: %w", err)
	}
	textX := textArea.Min.X + splashTextInset
	frame := Frame{
		Name:  SplashName,
		Texts: []Text{text(textX, 14, render.FontLarge, "SCAN")},
	}
	if qr != nil {
		frame.Images = append(frame.Images, Image{X: square.Min.X, Y: square.Min.Y, Img: qr})
	}
	if host := splashHost(panelURL); host != "" {
		frame.Texts = append(frame.Texts, text(textX, 28, render.FontSmall, host))
	}
	return frame, nil
}

func splashHost(panelURL string) string {
	u, err := url.Parse(panelURL)
	if err != nil || u.Host == "" {
		return strings.TrimSpace(panelURL)
	}
	return u.Host
}
