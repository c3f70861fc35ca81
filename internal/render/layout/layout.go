// Package layout places integer boxes inside surfaces.
package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Center returns a rectangle of size (widthPx,heightPx) centered in rect.
// The box may extend past rect when it is larger; odd remainders go right and down.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	if widthPx < 0 {
		widthPx = 0
	}
	if heightPx < 0 {
		heightPx = 0
	}
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// Place returns a rectangle of size (widthPx,heightPx) with its top-left at
// origin, shifted so it stays inside within. When the box is larger than
// within it is anchored at within's top-left.
func Place(within image.Rectangle, origin image.Point, widthPx, heightPx int) image.Rectangle {
	within = Normalize(within)
	x, y := origin.X, origin.Y
	if x+widthPx > within.Max.X {
		x = within.Max.X - widthPx
	}
	if y+heightPx > within.Max.Y {
		y = within.Max.Y - heightPx
	}
	if x < within.Min.X {
		x = within.Min.X
	}
	if y < within.Min.Y {
		y = within.Min.Y
	}
	return image.Rect(x, y, x+widthPx, y+heightPx)
}
