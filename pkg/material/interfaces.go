package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Every shading model in this package is a core.Material
var (
	_ core.Material = (*Albedo)(nil)
	_ core.Material = (*Diffuse)(nil)
	_ core.Material = (*SpecularDiffuse)(nil)
	_ core.Material = (*SpecularDiffuseReflective)(nil)
	_ core.Material = (*Environment)(nil)
)

// litLight is a light that reaches a surface point unoccluded
type litLight struct {
	color  core.Color
	cosine float64 // normal · direction to the light, always > 0
}

// visibleLights returns the lights facing normal that are not blocked by any
// surface between position and the light
func visibleLights(world *core.World, position, normal core.Vec3) []litLight {
	visible := make([]litLight, 0, len(world.Lights))
	for _, light := range world.Lights {
		direction := light.Direction(position)
		cosine := normal.Dot(direction)
		if cosine <= 0 {
			continue
		}
		if world.InShadow(core.NewRay(position, direction), light.DistanceTo(position)) {
			continue
		}
		visible = append(visible, litLight{
			color:  light.Color(position, normal),
			cosine: cosine,
		})
	}
	return visible
}
