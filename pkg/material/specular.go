package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpecularDiffuse adds a Phong highlight to a Lambertian surface
type SpecularDiffuse struct {
	Diffuse
	Specular float64 // ks
	Exponent float64
}

// NewSpecularDiffuse creates a Phong material
func NewSpecularDiffuse(albedo core.Color, diffuse, specular, exponent float64) *SpecularDiffuse {
	return &SpecularDiffuse{
		Diffuse:  Diffuse{Albedo: albedo, Coefficient: diffuse},
		Specular: specular,
		Exponent: exponent,
	}
}

// reflection returns the unit incoming direction and its mirror about normal
func reflection(ray core.Ray, normal core.Vec3) (incoming, reflected core.Vec3) {
	incoming = ray.Direction.Normalize()
	return incoming, incoming.Reflect(normal).Normalize()
}

// local returns the diffuse term plus the specular lobe of every visible
// light. The lobe compares the mirrored view direction with the view
// direction itself, so it does not depend on where the light is.
func (s *SpecularDiffuse) local(ray core.Ray, position, normal core.Vec3, world *core.World) (core.Color, core.Vec3) {
	incoming, reflected := reflection(ray, normal)
	if !world.Lit() {
		return s.Albedo, reflected
	}

	lights := visibleLights(world, position, normal)
	total := s.radiance(lights)
	lobe := -reflected.Dot(incoming)
	if lobe <= 0 {
		return total, reflected
	}
	highlight := math.Pow(lobe, s.Exponent)
	for _, light := range lights {
		total = total.Add(light.color.Scale(s.Specular * light.cosine * highlight))
	}
	return total, reflected
}

// Shade adds a Phong highlight to the diffuse term
func (s *SpecularDiffuse) Shade(ray core.Ray, position, normal core.Vec3, world *core.World, bounces int) (core.HitInfo, bool) {
	color, _ := s.local(ray, position, normal, world)
	return core.NewHitInfo(position, normal).Tint(color), true
}

// SpecularDiffuseReflective is a Phong surface that also mirrors the scene
type SpecularDiffuseReflective struct {
	SpecularDiffuse
	Reflection float64 // kr
}

// NewSpecularDiffuseReflective creates a Phong material with a mirror term
func NewSpecularDiffuseReflective(albedo core.Color, diffuse, specular, exponent, reflection float64) *SpecularDiffuseReflective {
	return &SpecularDiffuseReflective{
		SpecularDiffuse: *NewSpecularDiffuse(albedo, diffuse, specular, exponent),
		Reflection:      reflection,
	}
}

// Shade adds kr times the color seen along the mirrored ray. The budget is
// checked before recursing, so each bounce strictly lowers it.
func (r *SpecularDiffuseReflective) Shade(ray core.Ray, position, normal core.Vec3, world *core.World, bounces int) (core.HitInfo, bool) {
	color, reflected := r.local(ray, position, normal, world)

	if bounces > 0 {
		if mirrored, ok := world.Trace(core.NewRay(position, reflected), bounces-1); ok {
			color = color.Add(mirrored.Scale(r.Reflection))
		}
	}

	return core.NewHitInfo(position, normal).Tint(color), true
}
