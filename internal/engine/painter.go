package engine

import (
	"context"
	"fmt"
	"image"

	"github.com/rook-computer/scoreboard/internal/app/screens"
	"github.com/rook-computer/scoreboard/internal/images"
	"github.com/rook-computer/scoreboard/internal/render"
)

// Painter puts screen frames on the render surface and owns the logos of
// the game on screen.
type Painter struct {
	Surface render.Surface
	Fetcher images.Fetcher

	logos images.LogoCache
}

// Paint draws frame from scratch. Logos are fetched fresh and, once the frame
// is published, replace the cache under identity. Nothing is drawn if a logo
// cannot be fetched, so the previous frame stays up.
func (p *Painter) Paint(ctx context.Context, identity string, frame screens.Frame) error {
	var away, home image.Image
	if frame.HasLogos() {
		var err error
		if away, err = p.fetch(ctx, frame.AwayLogo); err != nil {
			return fmt.Errorf("away logo: %w", err)
		}
		if home, err = p.fetch(ctx, frame.HomeLogo); err != nil {
			return fmt.Errorf("home logo: %w", err)
		}
	}

	if err := p.compose(frame, away, home); err != nil {
		return err
	}
	if frame.HasLogos() {
		p.logos.Store(identity, away, home)
	} else {
		p.logos.Reset()
	}
	return nil
}

// Refresh redraws frame with the cached logos of identity and never fetches.
// It reports whether the logos were available; without them only the text
// is drawn.
func (p *Painter) Refresh(identity string, frame screens.Frame) (bool, error) {
	away, home, ok := p.logos.Get(identity)
	return ok, p.compose(frame, away, home)
}

// Blank clears the panel and forgets the cached logos.
func (p *Painter) Blank() error {
	p.logos.Reset()
	p.Surface.Clear()
	return p.Surface.Swap()
}

func (p *Painter) fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, nil
	}
	if p.Fetcher == nil {
		return nil, fmt.Errorf("no logo fetcher for %s", url)
	}
	return p.Fetcher.Fetch(ctx, url)
}

func (p *Painter) compose(frame screens.Frame, away, home image.Image) error {
	s := p.Surface
	s.Clear()
	for _, t := range frame.Texts {
		if err := s.DrawText(t.X, t.Y, t.Color, t.Size, t.Value); err != nil {
			return fmt.Errorf("draw %q: %w", t.Value, err)
		}
	}
	for _, img := range frame.Images {
		if img.Img != nil {
			s.DrawImage(img.Img, img.X, img.Y)
		}
	}
	if away != nil {
		s.DrawImage(away, render.AwayLogoX, 0)
	}
	if home != nil {
		s.DrawImage(home, render.HomeLogoX, 0)
	}
	if err := s.Swap(); err != nil {
		return fmt.Errorf("swap: %w", err)
	}
	return nil
}
