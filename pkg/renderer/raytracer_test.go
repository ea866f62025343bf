package renderer

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MockScene implements Scene for testing
type MockScene struct {
	camera  *Camera
	screen  Screen
	world   *core.World
	bounces int
}

func (m MockScene) GetCamera() *Camera    { return m.camera }
func (m MockScene) GetScreen() Screen     { return m.screen }
func (m MockScene) GetWorld() *core.World { return m.world }
func (m MockScene) GetBounces() int       { return m.bounces }

var (
	planeBlue = core.ColorFromRGB8(0, 150, 255)
	planeRed  = core.ColorFromRGB8(255, 0, 0)
)

func planesScene() MockScene {
	world := core.NewWorld()
	world.AddSurface(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 2), material.NewAlbedo(planeBlue)),
		geometry.NewPlane(core.NewVec3(0, 0, -2), core.NewVec3(0, -1, 1), material.NewAlbedo(planeRed)),
	)
	return MockScene{
		camera:  planesCamera(),
		screen:  DefaultScreen(),
		world:   world,
		bounces: DefaultBounces,
	}
}

// planeDistance solves the plane equation independently of the geometry package
func planeDistance(ray core.Ray, point, normal core.Vec3) (float64, bool) {
	n := normal.Normalize()
	denominator := ray.Direction.Dot(n)
	if denominator == 0 {
		return 0, false
	}
	t := point.Subtract(ray.Origin).Dot(n) / denominator
	if t <= core.Epsilon {
		return 0, false
	}
	return ray.At(t).Subtract(ray.Origin).Length(), true
}

func TestRaytracer_PlanesScenario(t *testing.T) {
	scene := planesScene()
	img, stats := NewRaytracer(scene, nil).Render(context.Background())

	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Fatalf("Expected 640x480 image, got %v", img.Bounds())
	}

	// The middle column crosses from the red plane on top to the blue plane below
	if got := img.RGBAAt(320, 0); got != planeRed.ToRGBA() {
		t.Errorf("Expected red at the top, got %v", got)
	}
	if got := img.RGBAAt(320, 479); got != planeBlue.ToRGBA() {
		t.Errorf("Expected blue at the bottom, got %v", got)
	}

	blue, red, black := 0, 0, 0
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			ray := scene.camera.GetRay(scene.screen, x, y)
			d1, hit1 := planeDistance(ray, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 2))
			d2, hit2 := planeDistance(ray, core.NewVec3(0, 0, -2), core.NewVec3(0, -1, 1))

			want := color.RGBA{A: 255}
			switch {
			case hit1 && (!hit2 || d1 <= d2):
				want = planeBlue.ToRGBA()
				blue++
			case hit2:
				want = planeRed.ToRGBA()
				red++
			default:
				black++
			}

			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}

	if blue == 0 || red == 0 {
		t.Errorf("Expected both planes on screen, got %d blue and %d red pixels", blue, red)
	}
	if stats.TotalPixels != 640*480 || stats.HitPixels != blue+red || stats.MissPixels != black {
		t.Errorf("Unexpected stats %+v (blue=%d red=%d black=%d)", stats, blue, red, black)
	}
}

func TestRaytracer_EmptySceneIsBlack(t *testing.T) {
	scene := MockScene{
		camera:  planesCamera(),
		screen:  DefaultScreen().WithResolution(8, 6),
		world:   core.NewWorld(),
		bounces: DefaultBounces,
	}

	img, stats := NewRaytracer(scene, nil).Render(context.Background())
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if got := img.RGBAAt(x, y); got != (color.RGBA{A: 255}) {
				t.Fatalf("Pixel (%d,%d): expected opaque black, got %v", x, y, got)
			}
		}
	}
	if stats.MissPixels != 48 || stats.HitPixels != 0 {
		t.Errorf("Expected 48 misses, got %+v", stats)
	}
	if stats.Coverage() != 0 {
		t.Errorf("Expected zero coverage, got %f", stats.Coverage())
	}
}

func TestRaytracer_Overrides(t *testing.T) {
	// Camera looks down at a mirror floor; a red sphere hangs above it
	mirror := material.NewSpecularDiffuseReflective(core.Black, 0, 0, 1, 1)
	world := core.NewWorld()
	world.AddSurface(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), mirror),
		geometry.NewSphere(core.NewVec3(0, 20, 0), 5, material.NewAlbedo(core.NewColor(1, 0, 0))),
	)

	scene := MockScene{
		camera: NewCamera(CameraConfig{
			Eye:            core.NewVec3(0, 10, 0.001),
			LookAt:         core.NewVec3(0, 0, 0),
			Up:             core.NewVec3(0, 1, 0),
			ScreenDistance: 1,
		}),
		screen:  Screen{Width: 1, Height: 1, RealWidth: 0.01, RealHeight: 0.01},
		world:   world,
		bounces: DefaultBounces,
	}

	rt := NewRaytracer(scene, nil)
	if c, _ := rt.PixelColor(0, 0); c != core.NewColor(1, 0, 0) {
		t.Errorf("Expected the mirrored sphere, got %v", c)
	}

	rt.SetBounces(0)
	if c, _ := rt.PixelColor(0, 0); c != core.Black {
		t.Errorf("Expected a black mirror without bounces, got %v", c)
	}

	rt.SetScreen(DefaultScreen().WithResolution(4, 2))
	img, stats := rt.Render(context.Background())
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 || stats.TotalPixels != 8 {
		t.Errorf("Expected the overridden 4x2 screen, got %v with %d pixels", img.Bounds(), stats.TotalPixels)
	}
	if stats.Bounces != 0 {
		t.Errorf("Expected stats to report the overridden budget, got %d", stats.Bounces)
	}
}

func TestRaytracer_LogsRenderID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	scene := planesScene()
	scene.screen = scene.screen.WithResolution(4, 3)
	_, stats := NewRaytracer(scene, logger).Render(context.Background())

	if stats.RenderID == "" {
		t.Fatal("Expected a render ID")
	}
	out := buf.String()
	for _, want := range []string{"render started", "render finished", "render_id=" + stats.RenderID} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderStats(t *testing.T) {
	stats := RenderStats{TotalPixels: 4, HitPixels: 3, MissPixels: 1, Elapsed: 1500 * time.Microsecond}
	if stats.Coverage() != 0.75 {
		t.Errorf("Expected coverage 0.75, got %f", stats.Coverage())
	}
	if got := stats.String(); got != "4 pixels (3 hit, 1 miss, 75.0% coverage) in 2ms" {
		t.Errorf("Unexpected summary %q", got)
	}
}
