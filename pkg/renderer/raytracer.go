package renderer

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/uuid"
)

// DefaultBounces is the reflection budget of a primary ray
const DefaultBounces = 10

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetScreen() Screen
	GetWorld() *core.World
	GetBounces() int
}

// Raytracer handles the rendering process. Pixels are traced one after
// another on the calling goroutine.
type Raytracer struct {
	camera  *Camera
	screen  Screen
	world   *core.World
	bounces int
	logger  *slog.Logger
}

// NewRaytracer creates a new raytracer for scene. A nil logger uses slog.Default().
func NewRaytracer(scene Scene, logger *slog.Logger) *Raytracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Raytracer{
		camera:  scene.GetCamera(),
		screen:  scene.GetScreen(),
		world:   scene.GetWorld(),
		bounces: scene.GetBounces(),
		logger:  logger,
	}
}

// SetBounces overrides the scene's reflection budget
func (rt *Raytracer) SetBounces(bounces int) {
	rt.bounces = bounces
}

// SetScreen overrides the scene's screen
func (rt *Raytracer) SetScreen(screen Screen) {
	rt.screen = screen
}

// Screen returns the screen that will be rendered
func (rt *Raytracer) Screen() Screen {
	return rt.screen
}

// PixelColor traces the primary ray of pixel (x, y). Misses are black.
func (rt *Raytracer) PixelColor(x, y int) (core.Color, bool) {
	return rt.world.Trace(rt.camera.GetRay(rt.screen, x, y), rt.bounces)
}

// Render traces every pixel of the screen and returns the image
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats) {
	stats := RenderStats{
		RenderID:    uuid.NewString(),
		TotalPixels: rt.screen.Pixels(),
		Bounces:     rt.bounces,
	}
	logger := rt.logger.With("render_id", stats.RenderID)
	logger.InfoContext(ctx, "render started",
		"width", rt.screen.Width,
		"height", rt.screen.Height,
		"surfaces", len(rt.world.Surfaces),
		"lights", len(rt.world.Lights),
		"bounces", rt.bounces)

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.screen.Width, rt.screen.Height))

	for y := 0; y < rt.screen.Height; y++ {
		for x := 0; x < rt.screen.Width; x++ {
			c, hit := rt.PixelColor(x, y)
			if hit {
				stats.HitPixels++
			} else {
				stats.MissPixels++
			}
			img.SetRGBA(x, y, c.ToRGBA())
		}
	}

	stats.Elapsed = time.Since(start)
	logger.InfoContext(ctx, "render finished",
		"hit_pixels", stats.HitPixels,
		"miss_pixels", stats.MissPixels,
		"elapsed", stats.Elapsed)

	return img, stats
}
