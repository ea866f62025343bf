package scene

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Options tunes how scenes are built
type Options struct {
	Logger *slog.Logger

	// BackgroundTexture replaces the generated sky of the background scene
	BackgroundTexture string
	// TextureMaxWidth downscales wider environment maps
	TextureMaxWidth int
	// Seed for randomly generated scenes; zero uses the scene default
	Seed uint64
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

type builtin struct {
	description string
	build       func(ctx context.Context, opts Options) *Scene
}

var builtins = map[string]builtin{
	"planes":      {"Two flat-colored planes meeting at a horizon line", func(context.Context, Options) *Scene { return NewPlanesScene() }},
	"spheres":     {"Flat-colored spheres on a plane, no lights", func(context.Context, Options) *Scene { return NewSpheresScene() }},
	"lights":      {"Flat spheres with two directional lights casting hard shadows", func(context.Context, Options) *Scene { return NewLightsScene() }},
	"pointlights": {"A sphere shadowing the ground under a point light", func(context.Context, Options) *Scene { return NewPointLightsScene() }},
	"diffuse":     {"Lambertian spheres under constant, falloff and directional lights", func(context.Context, Options) *Scene { return NewDiffuseScene() }},
	"reflection":  {"Mirror-like Phong spheres reflecting each other and the ground", func(context.Context, Options) *Scene { return NewReflectionScene() }},
	"background":  {"Reflective spheres inside an environment map lit by colored point lights", NewBackgroundScene},
	"spherefield": {"Seeded random field of Phong and mirror spheres", func(_ context.Context, opts Options) *Scene { return NewSphereFieldScene(opts.Seed) }},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin creates the named built-in scene
func Builtin(ctx context.Context, name string, opts Options) (*Scene, error) {
	b, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return b.build(ctx, opts), nil
}

// IsSceneFile reports whether name refers to a scene file rather than a
// built-in scene
func IsSceneFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Load resolves a built-in scene name or a scene file path
func Load(ctx context.Context, name string, opts Options) (*Scene, error) {
	if IsSceneFile(name) {
		return LoadFile(ctx, name, opts)
	}
	return Builtin(ctx, name, opts)
}
