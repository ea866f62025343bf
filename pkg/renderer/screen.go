package renderer

import (
	"github.com/pkg/errors"
)

// Screen is the output resolution and the physical size of the view plane
type Screen struct {
	Width      int     // Pixels
	Height     int     // Pixels
	RealWidth  float64 // View plane width in scene units
	RealHeight float64 // View plane height in scene units
}

// DefaultScreen returns a 640x480 screen over a 4x3 view plane
func DefaultScreen() Screen {
	return Screen{Width: 640, Height: 480, RealWidth: 4.0, RealHeight: 3.0}
}

// WithResolution returns a copy with a new pixel size; the view plane is unchanged
func (s Screen) WithResolution(width, height int) Screen {
	s.Width = width
	s.Height = height
	return s
}

// Validate reports a screen that cannot produce any rays
func (s Screen) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("screen resolution must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.RealWidth <= 0 || s.RealHeight <= 0 {
		return errors.Errorf("view plane size must be positive, got %gx%g", s.RealWidth, s.RealHeight)
	}
	return nil
}

// Pixels returns the number of pixels on the screen
func (s Screen) Pixels() int {
	return s.Width * s.Height
}
