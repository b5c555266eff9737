package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	fb "github.com/gonutz/framebuffer"
	"github.com/google/renameio/v2"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/system"
)

// FramebufferSink blits frames to a Linux framebuffer device, scaling the
// panel canvas to the device bounds with nearest-neighbour sampling. This
// covers fbdev-backed matrix drivers as well as an HDMI preview.
type FramebufferSink struct {
	dev     *fb.Device
	logger  logging.Logger
	console bool
}

// OpenFramebufferSink opens path (usually /dev/fb0). When console is true
// the active VT is switched to graphics mode so the cursor does not blink
// through the frame.
func OpenFramebufferSink(path string, console bool, logger logging.Logger) (*FramebufferSink, error) {
	logger = logging.OrNoop(logger)
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())

	if console {
		_ = system.ClaimConsole(logger)
	}
	return &FramebufferSink{dev: dev, logger: logger, console: console}, nil
}

func (s *FramebufferSink) Show(frame *image.RGBA) error {
	if s.dev == nil {
		return nil
	}
	bounds := s.dev.Bounds()
	fbWidth, fbHeight := bounds.Dx(), bounds.Dy()
	srcWidth, srcHeight := frame.Bounds().Dx(), frame.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			p := frame.RGBAAt(sx, sy)
			s.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF})
		}
	}
	return nil
}

func (s *FramebufferSink) Close() error {
	if s.console {
		_ = system.ReleaseConsole(s.logger)
	}
	if s.dev == nil {
		return nil
	}
	s.dev.Close()
	s.dev = nil
	return nil
}

// PNGSink writes every frame to a PNG file, replacing it atomically so a
// reader never sees a partial image. Scale enlarges each LED to a square.
type PNGSink struct {
	Path  string
	Scale int
}

func (s PNGSink) Show(frame *image.RGBA) error {
	data, err := encodePNG(scaleUp(frame, s.Scale))
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write frame %s: %w", s.Path, err)
	}
	return nil
}

func (PNGSink) Close() error { return nil }

// LatestFrame keeps a copy of the last published frame for readers on other
// goroutines (the web API).
type LatestFrame struct {
	mu    sync.RWMutex
	frame *image.RGBA
}

func (l *LatestFrame) Show(frame *image.RGBA) error {
	clone := image.NewRGBA(frame.Bounds())
	copy(clone.Pix, frame.Pix)
	l.mu.Lock()
	l.frame = clone
	l.mu.Unlock()
	return nil
}

func (*LatestFrame) Close() error { return nil }

// Frame returns the last frame, or nil before the first Swap.
func (l *LatestFrame) Frame() *image.RGBA {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frame
}

// PNG encodes the last frame scaled by scale.
func (l *LatestFrame) PNG(scale int) ([]byte, error) {
	frame := l.Frame()
	if frame == nil {
		frame = image.NewRGBA(image.Rect(0, 0, Width, Height))
	}
	return encodePNG(scaleUp(frame, scale))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleUp(frame *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return frame
	}
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			out.SetRGBA(x, y, frame.RGBAAt(b.Min.X+x/scale, b.Min.Y+y/scale))
		}
	}
	return out
}
