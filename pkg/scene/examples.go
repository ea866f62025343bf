package scene

import (
	"context"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var (
	white = core.ColorFromRGB8(255, 255, 255)
	red   = core.ColorFromRGB8(255, 0, 0)
	green = core.ColorFromRGB8(0, 255, 0)
	blue  = core.ColorFromRGB8(0, 0, 255)
)

// zUp is the camera used by most examples: z is up, looking across the xy
// ground plane
func zUp(eye, lookAt core.Vec3) renderer.CameraConfig {
	return renderer.CameraConfig{
		Eye:            eye,
		LookAt:         lookAt,
		Up:             core.NewVec3(0, 0, 1),
		ScreenDistance: 20,
	}
}

var groundZ = core.NewVec3(0, 0, 1)

// NewPlanesScene creates two flat planes tilted toward each other
func NewPlanesScene() *Scene {
	s := New("planes", renderer.CameraConfig{
		Eye:            core.NewVec3(100, 0, 2),
		LookAt:         core.NewVec3(0, 0, 2),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 50,
	})
	s.Description = "Two flat-colored planes meeting at a horizon line"
	return s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 2), material.NewAlbedo(core.ColorFromRGB8(0, 150, 255))),
		geometry.NewPlane(core.NewVec3(0, 0, -2), core.NewVec3(0, -1, 1), material.NewAlbedo(red)),
	)
}

// flatSpheres are the unlit spheres shared by the spheres and lights examples
func flatSpheres() []core.Surface {
	return []core.Surface{
		geometry.NewPlane(core.NewVec3(0, 0, 0), groundZ, material.NewAlbedo(blue)),
		geometry.NewSphere(core.NewVec3(0, -3.5, 1.5), 2, material.NewAlbedo(green)),
		geometry.NewSphere(core.NewVec3(0, 3, 0), 2, material.NewAlbedo(core.ColorFromRGB8(255, 255, 0))),
		geometry.NewSphere(core.NewVec3(-5, 0, 6.5), 3, material.NewAlbedo(core.ColorFromRGB8(200, 0, 100))),
	}
}

// NewSpheresScene creates flat spheres on a plane with no lights
func NewSpheresScene() *Scene {
	s := New("spheres", zUp(core.NewVec3(100, 0, 2), core.NewVec3(0, 0, 2)))
	s.Description = "Flat-colored spheres on a plane, no lights"
	return s.Add(flatSpheres()...)
}

// NewLightsScene adds two directional lights to the spheres so shadows black
// out the flat materials
func NewLightsScene() *Scene {
	s := New("lights", zUp(core.NewVec3(100, 0, 50), core.NewVec3(0, 0, 5)))
	s.Description = "Flat spheres with two directional lights casting hard shadows"
	return s.Add(flatSpheres()...).AddLight(
		lights.NewDirectionalLight(core.NewVec3(1, 1, 1), white, 1),
		lights.NewDirectionalLight(core.NewVec3(1, -1, 1), white, 1),
	)
}

// NewPointLightsScene lights a single sphere with a point light
func NewPointLightsScene() *Scene {
	s := New("pointlights", zUp(core.NewVec3(100, 100, 30), core.NewVec3(0, 0, 5)))
	s.Description = "A sphere shadowing the ground under a point light"
	return s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), groundZ, material.NewAlbedo(blue)),
		geometry.NewSphere(core.NewVec3(0, 0, 4), 3, material.NewAlbedo(red)),
	).AddLight(
		lights.NewPointLight(core.NewVec3(0, 10, 4), white, 1),
	)
}

// NewDiffuseScene shades Lambertian surfaces with point and directional lights
func NewDiffuseScene() *Scene {
	s := New("diffuse", zUp(core.NewVec3(100, 100, 30), core.NewVec3(0, 0, 5)))
	s.Description = "Lambertian spheres under constant, falloff and directional lights"
	return s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), groundZ, material.NewDiffuse(blue, 0.5)),
		geometry.NewSphere(core.NewVec3(0, 0, 4), 3, material.NewDiffuse(red, 0.6)),
		geometry.NewSphere(core.NewVec3(-5, 10, 6), 3, material.NewDiffuse(core.ColorFromRGB8(20, 255, 20), 0.6)),
	).AddLight(
		lights.NewPointLight(core.NewVec3(0, 10, 4), white, 5),
		lights.NewPointLight(core.NewVec3(0, 10, 4), white, 50).WithFalloff(),
		lights.NewDirectionalLight(core.NewVec3(0, 10, 4), white, 5),
	)
}

// NewReflectionScene uses Phong materials with a mirror term on every surface
func NewReflectionScene() *Scene {
	s := New("reflection", zUp(core.NewVec3(100, 100, 30), core.NewVec3(0, 0, 5)))
	s.Description = "Mirror-like Phong spheres reflecting each other and the ground"
	return s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), groundZ, material.NewSpecularDiffuseReflective(blue, 0.5, 0.2, 10, 1)),
		geometry.NewSphere(core.NewVec3(0, 0, 4), 3, material.NewSpecularDiffuseReflective(red, 0.6, 0.1, 5, 1)),
		geometry.NewSphere(core.NewVec3(-5, 10, 6), 3, material.NewSpecularDiffuseReflective(green, 0.6, 0.1, 5, 1)),
	).AddLight(
		lights.NewPointLight(core.NewVec3(0, 10, 4), white, 6),
		lights.NewDirectionalLight(core.NewVec3(0, 10, 4), white, 5),
	)
}

// NewBackgroundScene surrounds reflective spheres with an environment map.
// An empty texture location uses a generated sky gradient.
func NewBackgroundScene(ctx context.Context, opts Options) *Scene {
	s := New("background", renderer.CameraConfig{
		Eye:            core.NewVec3(12, 12, 16),
		LookAt:         core.NewVec3(0, 0, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 10,
	})
	s.Description = "Reflective spheres inside an environment map lit by colored point lights"
	s.Screen = renderer.Screen{Width: 1920, Height: 1080, RealWidth: 16, RealHeight: 9}

	var sky *geometry.BackgroundSurface
	if opts.BackgroundTexture != "" {
		sky = geometry.LoadBackgroundSurface(ctx, opts.BackgroundTexture, loaders.ImageOptions{MaxWidth: opts.TextureMaxWidth}, opts.Logger)
	} else {
		sky = geometry.NewBackgroundSurface(SkyTexture(256, 128))
	}

	return s.Add(
		geometry.NewPlane(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), material.NewSpecularDiffuseReflective(white, 0.5, 0.1, 10, 0)),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 3, material.NewSpecularDiffuseReflective(red, 1, 0.3, 5, 0.8)),
		geometry.NewSphere(core.NewVec3(8, 0, 0), 3, material.NewSpecularDiffuseReflective(green, 0.6, 0.2, 5, 0.3)),
		geometry.NewSphere(core.NewVec3(-8, 0, 0), 3, material.NewSpecularDiffuseReflective(blue, 1, 0.1, 5, 0.1)),
		sky,
	).AddLight(
		lights.NewPointLight(core.NewVec3(14, 2, -2), core.ColorFromRGB8(255, 0, 255), 70).WithFalloff(),
		lights.NewPointLight(core.NewVec3(-10, 2, -5), core.ColorFromRGB8(255, 255, 0), 90).WithFalloff(),
		lights.NewPointLight(core.NewVec3(0, 2, 5), core.ColorFromRGB8(0, 255, 255), 100).WithFalloff(),
	)
}

// SkyTexture generates an equirectangular sky: a blue gradient above the
// horizon and a dark ground below it
func SkyTexture(width, height int) *material.ImageTexture {
	zenith := core.NewColor(0.25, 0.45, 0.85)
	horizon := core.NewColor(0.85, 0.9, 1.0)
	ground := core.NewColor(0.2, 0.18, 0.15)

	pixels := make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		// Row 0 looks straight up
		elevation := 1 - 2*(float64(y)+0.5)/float64(height)
		c := ground
		if elevation > 0 {
			c = horizon.Scale(1 - elevation).Add(zenith.Scale(elevation))
		}
		for x := 0; x < width; x++ {
			pixels[y*width+x] = c
		}
	}
	return material.NewImageTexture(width, height, pixels)
}
