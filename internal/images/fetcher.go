// Package images fetches team logos and keeps the logos of the game on
// screen for live redraws.
package images

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/rook-computer/scoreboard/internal/render"
)

// ErrEmptyURL is returned when a team has no logo URL.
var ErrEmptyURL = errors.New("images: empty logo url")

// maxLogoBytes caps logo downloads; team logos are a few hundred KB at most.
const maxLogoBytes = 4 << 20

// Fetcher retrieves and decodes a logo, ready to draw.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcher downloads logos and scales them to the panel logo slot.
type HTTPFetcher struct {
	Client *http.Client
	Size   int
}

// NewHTTPFetcher returns a fetcher producing render.LogoSize squares.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		Client: &http.Client{Timeout: timeout},
		Size:   render.LogoSize,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("logo request %s: %w", url, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch logo %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch logo %s: unexpected status %d", url, resp.StatusCode)
	}

	size := f.Size
	if size <= 0 {
		size = render.LogoSize
	}
	body := io.LimitReader(resp.Body, maxLogoBytes)
	if isSVG(resp.Header.Get("Content-Type"), url) {
		img, err := RasterizeSVG(body, size)
		if err != nil {
			return nil, fmt.Errorf("decode logo %s: %w", url, err)
		}
		return img, nil
	}
	src, _, err := image.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", url, err)
	}
	return Resize(src, size), nil
}

func isSVG(contentType, url string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "image/svg") {
		return true
	}
	u := url
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.EqualFold(path.Ext(u), ".svg")
}

// RasterizeSVG renders an SVG logo straight into a size x size square on
// black, keeping the aspect ratio.
func RasterizeSVG(r io.Reader, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.New("svg has no view box")
	}
	w, h := float64(size), float64(size)
	if icon.ViewBox.W > icon.ViewBox.H {
		h = w * icon.ViewBox.H / icon.ViewBox.W
	} else {
		w = h * icon.ViewBox.W / icon.ViewBox.H
	}
	icon.SetTarget((float64(size)-w)/2, (float64(size)-h)/2, w, h)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: render.Black}, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return dst, nil
}

// Resize scales src into an opaque size x size RGB square. Transparent areas
// become black, which is "off" on the panel.
func Resize(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: render.Black}, image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
