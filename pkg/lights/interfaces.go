package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// LightType names the kind of a light
type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeCustom      LightType = "custom" // Any other core.Light
)

// Light is a core.Light that also reports its kind
type Light interface {
	core.Light
	Type() LightType
}
