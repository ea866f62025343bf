package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Diffuse is a Lambertian surface
type Diffuse struct {
	Albedo      core.Color
	Coefficient float64 // kd
}

// NewDiffuse creates a Lambertian material
func NewDiffuse(albedo core.Color, coefficient float64) *Diffuse {
	return &Diffuse{Albedo: albedo, Coefficient: coefficient}
}

// radiance sums albedo·L·kd·cos/π over the visible lights
func (d *Diffuse) radiance(lights []litLight) core.Color {
	total := core.Black
	for _, light := range lights {
		total = total.Add(d.Albedo.Multiply(light.color).Scale(d.Coefficient * light.cosine / math.Pi))
	}
	return total
}

// Shade sums the Lambertian contribution of every visible light
func (d *Diffuse) Shade(ray core.Ray, position, normal core.Vec3, world *core.World, bounces int) (core.HitInfo, bool) {
	hit := core.NewHitInfo(position, normal)
	if !world.Lit() {
		return hit.Tint(d.Albedo), true
	}
	return hit.Tint(d.radiance(visibleLights(world, position, normal))), true
}
