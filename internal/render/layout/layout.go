// Package layout holds the small amount of panel geometry shared by screens.
package layout

import "image"

// SplitVertical cuts rect at leftWidth pixels from its left edge. The width
// is clamped to the rectangle, so either half may come back empty.
func SplitVertical(rect image.Rectangle, leftWidth int) (left, right image.Rectangle) {
	rect = rect.Canon()
	cut := rect.Min.X + min(max(leftWidth, 0), rect.Dx())
	left, right = rect, rect
	left.Max.X, right.Min.X = cut, cut
	return left, right
}

// FitSquare returns the largest square inside rect, centred along the longer
// side.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	side := min(rect.Dx(), rect.Dy())
	corner := rect.Min.Add(image.Pt((rect.Dx()-side)/2, (rect.Dy()-side)/2))
	return image.Rectangle{Min: corner, Max: corner.Add(image.Pt(side, side))}
}
