package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrUnknownFont is returned by DrawText when no face is loaded for a size.
var ErrUnknownFont = errors.New("render: no face for font size")

// Canvas is a double-buffered Surface. Draw calls land on the back buffer;
// Swap exchanges the buffers and pushes the new front buffer to every sink.
type Canvas struct {
	back  *image.RGBA
	front *image.RGBA
	faces Faces
	sinks []Sink
}

// NewCanvas returns a panel-sized canvas publishing to sinks.
func NewCanvas(faces Faces, sinks ...Sink) *Canvas {
	bounds := image.Rect(0, 0, Width, Height)
	c := &Canvas{
		back:  image.NewRGBA(bounds),
		front: image.NewRGBA(bounds),
		faces: faces,
		sinks: sinks,
	}
	c.Clear()
	draw.Draw(c.front, bounds, &image.Uniform{C: Black}, image.Point{}, draw.Src)
	return c
}

func (c *Canvas) Clear() {
	draw.Draw(c.back, c.back.Bounds(), &image.Uniform{C: Black}, image.Point{}, draw.Src)
}

func (c *Canvas) DrawText(x, y int, col color.Color, size FontSize, s string) error {
	face, ok := c.faces[size]
	if !ok || face == nil {
		return fmt.Errorf("%w: %s", ErrUnknownFont, size)
	}
	drawer := &font.Drawer{
		Dst:  c.back,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(s)
	return nil
}

// MeasureText returns the advance width of s in pixels.
func (c *Canvas) MeasureText(size FontSize, s string) int {
	face, ok := c.faces[size]
	if !ok || face == nil {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.back, dst, img, b.Min, draw.Over)
}

// Swap publishes the back buffer. Sink errors are joined; every sink still
// receives the frame.
func (c *Canvas) Swap() error {
	c.back, c.front = c.front, c.back
	var errs []error
	for _, sink := range c.sinks {
		if err := sink.Show(c.front); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Front returns a copy of the visible frame.
func (c *Canvas) Front() *image.RGBA {
	out := image.NewRGBA(c.front.Bounds())
	copy(out.Pix, c.front.Pix)
	return out
}

// Blank clears the panel immediately. Used on shutdown.
func (c *Canvas) Blank() error {
	c.Clear()
	return c.Swap()
}

// Close closes every sink.
func (c *Canvas) Close() error {
	var errs []error
	for _, sink := range c.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
