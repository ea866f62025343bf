package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// roots returns both ray parameters where the ray meets the sphere, nearest
// first, or false when the discriminant is negative
func (s *Sphere) roots(ray core.Ray) (float64, float64, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()

	// Normalized quadratic t² + 2·pHalf·t + q = 0
	pHalf := oc.Dot(ray.Direction) / a
	q := (oc.LengthSquared() - s.Radius*s.Radius) / a

	discriminant := pHalf*pHalf - q
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return -pHalf - sqrtD, -pHalf + sqrtD, true
}

// SurfaceHit returns the nearest valid hit. From inside the sphere only the
// farther root lies ahead of the ray.
func (s *Sphere) SurfaceHit(ray core.Ray, minDistance float64) (core.Intersection, bool) {
	t1, t2, ok := s.roots(ray)
	if !ok {
		return core.Intersection{}, false
	}
	if hit, ok := hitAt(ray, t1, minDistance); ok {
		return hit, true
	}
	return hitAt(ray, t2, minDistance)
}

// Normal points outward from the center
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// ShadowHit reports whether either root lies between the ray origin and a light
func (s *Sphere) ShadowHit(ray core.Ray, lightDistance float64) bool {
	t1, t2, ok := s.roots(ray)
	if !ok {
		return false
	}
	return (t1 > core.Epsilon && t1 < lightDistance) || (t2 > core.Epsilon && t2 < lightDistance)
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.material
}
