package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// Faces maps each panel font size to a loaded face.
type Faces map[FontSize]font.Face

// Point sizes at 72 DPI, so one point is one LED.
const (
	smallPoints    = 8
	largePoints    = 13
	headlinePoints = 15
)

// LoadFaces builds the panel fonts from the embedded Go Mono faces. A size
// that cannot be built falls back to basicfont so the panel keeps working;
// the returned error lists what fell back.
func LoadFaces() (Faces, error) {
	faces := Faces{}
	var failed []string

	if face, err := openTypeFace(gomono.TTF, smallPoints); err != nil {
		faces[FontSmall] = basicfont.Face7x13
		failed = append(failed, fmt.Sprintf("small: %v", err))
	} else {
		faces[FontSmall] = face
	}

	if face, err := openTypeFace(gomonobold.TTF, largePoints); err != nil {
		faces[FontLarge] = basicfont.Face7x13
		failed = append(failed, fmt.Sprintf("large: %v", err))
	} else {
		faces[FontLarge] = face
	}

	// The headline face goes through freetype, which hints the bold glyphs
	// a little tighter at this size.
	if tt, err := truetype.Parse(gomonobold.TTF); err != nil {
		faces[FontHeadline] = basicfont.Face7x13
		failed = append(failed, fmt.Sprintf("headline: %v", err))
	} else {
		faces[FontHeadline] = truetype.NewFace(tt, &truetype.Options{
			Size:    headlinePoints,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	if len(failed) > 0 {
		return faces, fmt.Errorf("fonts fell back to basicfont: %v", failed)
	}
	return faces, nil
}

func openTypeFace(ttf []byte, points float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{Size: points, DPI: 72, Hinting: font.HintingFull})
}
