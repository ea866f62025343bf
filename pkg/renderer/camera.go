package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye            core.Vec3 // Camera position
	LookAt         core.Vec3 // Point the camera is looking at
	Up             core.Vec3 // Up direction (usually (0,1,0))
	ScreenDistance float64   // Distance from the eye to the view plane
}

// Camera generates primary rays from a fixed orthonormal basis
type Camera struct {
	config CameraConfig

	// Basis: w points backward from the view, u right, v up
	u, v, w core.Vec3
}

// NewCamera derives the camera basis from eye, look-at and up
func NewCamera(config CameraConfig) *Camera {
	w := config.Eye.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		config: config,
		u:      u,
		v:      v,
		w:      w,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Basis returns the u, v, w camera axes
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// GetRay returns the primary ray through the center of pixel (x, y).
// Pixel rows grow downward.
func (c *Camera) GetRay(screen Screen, x, y int) core.Ray {
	factorU := (float64(x)+0.5)*(screen.RealWidth/float64(screen.Width)) - 0.5*screen.RealWidth
	factorV := 0.5*screen.RealHeight - (float64(y)+0.5)*(screen.RealHeight/float64(screen.Height))

	direction := core.LinearCombine(
		factorU, c.u,
		factorV, c.v,
		-c.config.ScreenDistance, c.w,
	)
	return core.NewRay(c.config.Eye, direction)
}
