package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"pgregory.net/rand"
)

// DefaultSphereFieldSeed is used when no seed is given
const DefaultSphereFieldSeed = 42

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS, cubed
	lc := cube(l + 0.3963377774*a + 0.2158037573*b)
	mc := cube(l - 0.1055613458*a - 0.0638541728*b)
	sc := cube(l - 0.0894841775*a - 1.2914855480*b)

	// LMS -> linear RGB
	return core.NewColor(
		unit(+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc),
		unit(-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc),
		unit(-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc),
	)
}

func cube(v float64) float64 { return v * v * v }

func unit(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// NewSphereFieldScene scatters spheres of random size, color and finish over
// a mirror-tinted floor. The same seed always produces the same scene.
func NewSphereFieldScene(seed uint64) *Scene {
	if seed == 0 {
		seed = DefaultSphereFieldSeed
	}
	random := rand.New(seed)

	s := New("spherefield", renderer.CameraConfig{
		Eye:            core.NewVec3(0, 7, 22),
		LookAt:         core.NewVec3(0, 1, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 6,
	})
	s.Description = "Seeded random field of Phong and mirror spheres"

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		material.NewSpecularDiffuseReflective(core.NewColor(0.6, 0.6, 0.6), 0.8, 0.1, 20, 0.25)))

	const gridSize = 7
	const spacing = 2.6
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			radius := 0.4 + random.Float64()*0.5
			x := (float64(i)-float64(gridSize-1)/2)*spacing + (random.Float64()-0.5)*0.8
			z := (float64(j)-float64(gridSize-1)/2)*spacing + (random.Float64()-0.5)*0.8
			color := oklchToRGB(0.7, 0.08+random.Float64()*0.15, random.Float64()*360)

			var m core.Material
			switch random.Intn(3) {
			case 0:
				m = material.NewDiffuse(color, 0.9)
			case 1:
				m = material.NewSpecularDiffuse(color, 0.7, 0.4, 5+random.Float64()*40)
			default:
				m = material.NewSpecularDiffuseReflective(color, 0.5, 0.3, 20, 0.2+random.Float64()*0.6)
			}
			s.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius, m))
		}
	}

	return s.AddLight(
		lights.NewDirectionalLight(core.NewVec3(-0.5, 1, 0.6), core.NewColor(1, 0.97, 0.9), 2.2),
		lights.NewPointLight(core.NewVec3(6, 6, 8), core.NewColor(0.6, 0.8, 1), 120).WithFalloff(),
	)
}
