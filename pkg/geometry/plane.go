package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	normal   core.Vec3 // Unit normal
	material core.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		normal:   normal.Normalize(),
		material: material,
	}
}

// intersect returns the ray parameter of the crossing, or false when the ray
// runs parallel to the plane
func (p *Plane) intersect(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(p.normal)
	if denominator == 0 {
		return 0, false
	}
	return p.Point.Subtract(ray.Origin).Dot(p.normal) / denominator, true
}

// SurfaceHit tests if a ray intersects with the plane
func (p *Plane) SurfaceHit(ray core.Ray, minDistance float64) (core.Intersection, bool) {
	t, ok := p.intersect(ray)
	if !ok {
		return core.Intersection{}, false
	}
	return hitAt(ray, t, minDistance)
}

// Normal is the same everywhere on the plane
func (p *Plane) Normal(point core.Vec3) core.Vec3 {
	return p.normal
}

// ShadowHit reports whether the plane lies between the ray origin and a light
func (p *Plane) ShadowHit(ray core.Ray, lightDistance float64) bool {
	t, ok := p.intersect(ray)
	return ok && t > core.Epsilon && t < lightDistance
}

// Material returns the plane's material
func (p *Plane) Material() core.Material {
	return p.material
}
