package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Color) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// BlackTexture is the single black texel used when a texture cannot be loaded
func BlackTexture() *ImageTexture {
	return NewImageTexture(1, 1, []core.Color{core.Black})
}

// Evaluate samples the texture at (u, v) using nearest-neighbor filtering.
// U wraps around horizontally; V is clamped.
func (t *ImageTexture) Evaluate(u, v float64) core.Color {
	u -= float64(int(u))
	if u < 0 {
		u += 1.0
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := clamp(int(u*float64(t.Width)), t.Width)
	y := clamp(int((1.0-v)*float64(t.Height)), t.Height)

	return t.Pixels[y*t.Width+x]
}

func clamp(i, size int) int {
	if i >= size {
		return size - 1
	}
	if i < 0 {
		return 0
	}
	return i
}
