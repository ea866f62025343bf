package geometry

import (
	"context"
	"log/slog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// BackgroundSurface is an enclosing sky dome at infinity. It is only hit by
// rays that hit nothing else and never casts shadows.
type BackgroundSurface struct {
	environment *material.Environment
}

// NewBackgroundSurface creates a sky from an already loaded texture
func NewBackgroundSurface(texture *material.ImageTexture) *BackgroundSurface {
	return &BackgroundSurface{environment: material.NewEnvironment(texture)}
}

// LoadBackgroundSurface loads the sky texture from a path or bucket URL. A
// texture that cannot be loaded is replaced by a single black pixel.
func LoadBackgroundSurface(ctx context.Context, location string, opts loaders.ImageOptions, logger *slog.Logger) *BackgroundSurface {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := loaders.LoadImage(ctx, location, opts)
	if err != nil {
		logger.Warn("background texture unavailable, using black", "location", location, "error", err)
		return NewBackgroundSurface(nil)
	}

	logger.Debug("loaded background texture", "location", location, "width", data.Width, "height", data.Height)
	return NewBackgroundSurface(material.NewImageTexture(data.Width, data.Height, data.Pixels))
}

// Texture returns the sky texture
func (b *BackgroundSurface) Texture() *material.ImageTexture {
	return b.environment.Texture
}

// SurfaceHit reports the ray direction at infinite distance once no other
// surface has been hit
func (b *BackgroundSurface) SurfaceHit(ray core.Ray, minDistance float64) (core.Intersection, bool) {
	if minDistance < core.Infinity {
		return core.Intersection{}, false
	}
	return core.Intersection{Point: ray.Direction, Distance: core.Infinity}, true
}

// Normal faces inward, toward the viewer inside the dome
func (b *BackgroundSurface) Normal(point core.Vec3) core.Vec3 {
	return point.Normalize().Negate()
}

// ShadowHit is always false, the background never casts shadows
func (b *BackgroundSurface) ShadowHit(ray core.Ray, lightDistance float64) bool {
	return false
}

// Material returns the environment material
func (b *BackgroundSurface) Material() core.Material {
	return b.environment
}
