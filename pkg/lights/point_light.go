package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits from a single position, optionally with inverse-square falloff
type PointLight struct {
	position core.Vec3
	color    core.Color
	falloff  bool
}

// NewPointLight creates a point light with constant intensity
func NewPointLight(position core.Vec3, color core.Color, brightness float64) *PointLight {
	return &PointLight{
		position: position,
		color:    color.Scale(brightness),
	}
}

// WithFalloff enables 1/d² attenuation and returns the light
func (pl *PointLight) WithFalloff() *PointLight {
	pl.falloff = true
	return pl
}

// Falloff reports whether the light attenuates with distance
func (pl *PointLight) Falloff() bool {
	return pl.falloff
}

// Position returns the light position
func (pl *PointLight) Position() core.Vec3 {
	return pl.position
}

// Type returns LightTypePoint
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Direction returns the unit vector from point toward the light
func (pl *PointLight) Direction(point core.Vec3) core.Vec3 {
	return pl.position.Subtract(point).Normalize()
}

// DistanceTo returns the Euclidean distance to the light
func (pl *PointLight) DistanceTo(point core.Vec3) float64 {
	return pl.position.Subtract(point).Length()
}

// Color returns the radiance at position, divided by the squared distance
// when falloff is enabled
func (pl *PointLight) Color(position, normal core.Vec3) core.Color {
	if !pl.falloff {
		return pl.color
	}
	return pl.color.Scale(1.0 / pl.position.Subtract(position).LengthSquared())
}
