package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Environment maps directions onto a spherical texture. It is unlit and
// never recurses.
type Environment struct {
	Texture *ImageTexture
}

// NewEnvironment wraps a texture; nil means a black sky
func NewEnvironment(texture *ImageTexture) *Environment {
	if texture == nil {
		texture = BlackTexture()
	}
	return &Environment{Texture: texture}
}

// SphericalUV returns the texture coordinates of a direction: u follows the
// azimuth around the y axis, v the elevation from -y (0) to +y (1)
func SphericalUV(direction core.Vec3) (u, v float64) {
	d := direction.Normalize()
	u = math.Atan2(d.X, d.Z)/(2*math.Pi) + 0.5
	v = (math.Asin(math.Max(-1, math.Min(1, d.Y))) + math.Pi/2) / math.Pi
	return u, v
}

// Sample returns the texel seen in direction
func (e *Environment) Sample(direction core.Vec3) core.Color {
	return e.Texture.Evaluate(SphericalUV(direction))
}

// Shade treats position as the direction of the ray that reached the sky
func (e *Environment) Shade(ray core.Ray, position, normal core.Vec3, world *core.World, bounces int) (core.HitInfo, bool) {
	return core.NewHitInfo(position, normal).Tint(e.Sample(position)), true
}
