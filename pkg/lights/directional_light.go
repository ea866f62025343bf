package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is infinitely far away and shines from one direction
type DirectionalLight struct {
	direction core.Vec3  // Unit vector pointing toward the light
	color     core.Color // Radiance, already scaled by brightness
}

// NewDirectionalLight creates a light shining from direction (which need not
// be normalized) with color scaled by brightness
func NewDirectionalLight(direction core.Vec3, color core.Color, brightness float64) *DirectionalLight {
	return &DirectionalLight{
		direction: direction.Normalize(),
		color:     color.Scale(brightness),
	}
}

// Type returns LightTypeDirectional
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Direction is the same for every point
func (dl *DirectionalLight) Direction(point core.Vec3) core.Vec3 {
	return dl.direction
}

// DistanceTo is always infinite
func (dl *DirectionalLight) DistanceTo(point core.Vec3) float64 {
	return core.Infinity
}

// Color is constant
func (dl *DirectionalLight) Color(position, normal core.Vec3) core.Color {
	return dl.color
}
