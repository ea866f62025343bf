package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Every shape in this package is a core.Surface
var (
	_ core.Surface = (*Plane)(nil)
	_ core.Surface = (*Sphere)(nil)
	_ core.Surface = (*BackgroundSurface)(nil)
)

// hitAt builds the intersection for ray parameter t, or reports false when t
// is inside the epsilon band or the hit is not strictly closer than
// minDistance.
func hitAt(ray core.Ray, t, minDistance float64) (core.Intersection, bool) {
	if t <= core.Epsilon {
		return core.Intersection{}, false
	}
	point := ray.At(t)
	distance := point.Subtract(ray.Origin).Length()
	if distance >= minDistance {
		return core.Intersection{}, false
	}
	return core.Intersection{Point: point, Distance: distance}, true
}
