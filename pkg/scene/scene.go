package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Description  string
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	Screen       renderer.Screen
	World        *core.World // Surfaces in scan order, and lights
	Bounces      int         // Reflection budget of each primary ray
}

// New creates an empty scene with the default screen and bounce budget
func New(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Screen:       renderer.DefaultScreen(),
		World:        core.NewWorld(),
		Bounces:      renderer.DefaultBounces,
	}
}

// Add appends surfaces in scan order
func (s *Scene) Add(surfaces ...core.Surface) *Scene {
	s.World.AddSurface(surfaces...)
	return s
}

// AddLight appends lights
func (s *Scene) AddLight(lights ...core.Light) *Scene {
	s.World.AddLight(lights...)
	return s
}

// SetCamera replaces the camera
func (s *Scene) SetCamera(config renderer.CameraConfig) {
	s.CameraConfig = config
	s.Camera = renderer.NewCamera(config)
}

// Accessors used by the renderer
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }
func (s *Scene) GetScreen() renderer.Screen  { return s.Screen }
func (s *Scene) GetWorld() *core.World       { return s.World }
func (s *Scene) GetBounces() int             { return s.Bounces }

// GetPrimitiveCount returns the number of surfaces in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World.Surfaces)
}

// GetLightTypes returns the kind of each light in order. Lights from outside
// the lights package are reported as "custom".
func (s *Scene) GetLightTypes() []lights.LightType {
	types := make([]lights.LightType, 0, len(s.World.Lights))
	for _, l := range s.World.Lights {
		if typed, ok := l.(lights.Light); ok {
			types = append(types, typed.Type())
		} else {
			types = append(types, lights.LightTypeCustom)
		}
	}
	return types
}
