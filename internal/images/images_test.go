package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHTTPFetcherDecodesAndResizes(t *testing.T) {
	body := pngBytes(t, 500, 500, color.RGBA{R: 0xC8, G: 0x10, B: 0x2E, A: 0xFF})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)
	img, err := f.Fetch(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())

	r, g, b, _ := img.At(16, 16).RGBA()
	assert.Equal(t, uint32(0xC8), r>>8)
	assert.Equal(t, uint32(0x10), g>>8)
	assert.Equal(t, uint32(0x2E), b>>8)
}

func TestHTTPFetcherTransparentBecomesBlack(t *testing.T) {
	body := pngBytes(t, 64, 64, color.RGBA{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	img, err := NewHTTPFetcher(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	r, g, b, a := img.At(3, 3).RGBA()
	assert.Zero(t, r+g+b)
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestHTTPFetcherErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)

	_, err := f.Fetch(context.Background(), "")
	assert.True(t, errors.Is(err, ErrEmptyURL))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")

	_, err = f.Fetch(context.Background(), srv.URL+"/garbage")
	assert.ErrorContains(t, err, "decode logo")
}

const redSquareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
<rect x="0" y="0" width="100" height="50" fill="#ff0000"/>
</svg>`

func TestHTTPFetcherRasterizesSVG(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(redSquareSVG))
	}))
	defer srv.Close()

	img, err := NewHTTPFetcher(0).Fetch(context.Background(), srv.URL+"/logo")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())

	r, g, b, _ := img.At(16, 16).RGBA()
	assert.Equal(t, uint32(0xFF), r>>8, "centre is inside the letterboxed logo")
	assert.Zero(t, g+b)

	r, g, b, _ = img.At(16, 1).RGBA()
	assert.Zero(t, r+g+b, "letterbox bands stay black")
}

func TestIsSVG(t *testing.T) {
	assert.True(t, isSVG("image/svg+xml; charset=utf-8", "https://cdn.example/x"))
	assert.True(t, isSVG("", "https://cdn.example/logos/gb.SVG?w=500"))
	assert.False(t, isSVG("image/png", "https://cdn.example/logos/gb.png"))
}

func TestLogoCacheHoldsOneIdentity(t *testing.T) {
	var cache LogoCache
	away := image.NewRGBA(image.Rect(0, 0, 1, 1))
	home := image.NewRGBA(image.Rect(0, 0, 2, 2))

	_, _, ok := cache.Get("")
	assert.False(t, ok, "empty cache never hits")

	cache.Store("Green Bay Packers", away, home)
	gotAway, gotHome, ok := cache.Get("Green Bay Packers")
	require.True(t, ok)
	assert.Same(t, away, gotAway)
	assert.Same(t, home, gotHome)

	_, _, ok = cache.Get("Chicago Bears")
	assert.False(t, ok)

	cache.Store("Chicago Bears", home, away)
	_, _, ok = cache.Get("Green Bay Packers")
	assert.False(t, ok, "storing a new identity evicts the old one")

	cache.Reset()
	_, _, ok = cache.Get("Chicago Bears")
	assert.False(t, ok)
}
