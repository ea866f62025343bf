package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Albedo is a flat color. It ignores light direction and color, and turns
// black as soon as any light is blocked.
type Albedo struct {
	Color core.Color
}

// NewAlbedo creates a flat material
func NewAlbedo(color core.Color) *Albedo {
	return &Albedo{Color: color}
}

// Shade returns the flat color, or black when any light is shadowed
func (a *Albedo) Shade(ray core.Ray, position, normal core.Vec3, world *core.World, bounces int) (core.HitInfo, bool) {
	hit := core.NewHitInfo(position, normal)

	for _, light := range world.Lights {
		shadowRay := core.NewRay(position, light.Direction(position))
		if world.InShadow(shadowRay, light.DistanceTo(position)) {
			return hit.Tint(core.Black), true
		}
	}

	return hit.Tint(a.Color), true
}
