package core

import "math"

// Epsilon is the smallest ray parameter accepted as a hit. Rays leaving a
// surface would otherwise re-hit that surface at t≈0.
const Epsilon = 0.02

// Intersection is a candidate hit reported by a surface
type Intersection struct {
	Point    Vec3    // Hit position (the ray direction for the background)
	Distance float64 // Distance from the ray origin, +Inf for the background
}

// Surface is an analytic shape bound to a material
type Surface interface {
	// SurfaceHit returns the nearest hit with ray parameter above Epsilon
	// that is strictly closer than minDistance.
	SurfaceHit(ray Ray, minDistance float64) (Intersection, bool)

	// Normal returns the unit normal at a point on the surface
	Normal(point Vec3) Vec3

	// ShadowHit reports whether the ray hits the surface with
	// Epsilon < t < lightDistance.
	ShadowHit(ray Ray, lightDistance float64) bool

	Material() Material
}

// Material computes the color of a surface point
type Material interface {
	// Shade returns the tinted hit for a point reached by ray. bounces is the
	// remaining reflection budget.
	Shade(ray Ray, position, normal Vec3, world *World, bounces int) (HitInfo, bool)
}

// Light is a source of direct illumination
type Light interface {
	// Direction returns the unit vector from point toward the light
	Direction(point Vec3) Vec3

	// DistanceTo returns the distance from point to the light
	DistanceTo(point Vec3) float64

	// Color returns the radiance reaching position
	Color(position, normal Vec3) Color
}

// HitInfo is the result of shading a hit
type HitInfo struct {
	Position Vec3
	Normal   Vec3
	color    *Color
}

// NewHitInfo creates an untinted hit
func NewHitInfo(position, normal Vec3) HitInfo {
	return HitInfo{Position: position, Normal: normal}
}

// Tint returns a copy of the hit carrying color c
func (h HitInfo) Tint(c Color) HitInfo {
	h.color = &c
	return h
}

// Color returns the accumulated color, or black if none was set
func (h HitInfo) Color() Color {
	if h.color == nil {
		return Black
	}
	return *h.color
}

// Infinity is the distance to directional lights and the background
var Infinity = math.Inf(1)
