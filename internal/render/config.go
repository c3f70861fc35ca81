package render

import "golang.org/x/image/font/gofont/goregular"

// DefaultFBDevice is the framebuffer opened when FBRenderer.Path is empty.
const DefaultFBDevice = "/dev/fb0"

// Global render configuration for the overlay surface.
var (
	// Default surface size in logical units: five 28px cells wide, one line high.
	DefaultWidth  = 28 * 5
	DefaultHeight = 54

	// FontTTF is the outline font used for the clock digits.
	FontTTF = goregular.TTF

	// Screen position of the overlay's top-left corner.
	DefaultX = 900
	DefaultY = 0
)
