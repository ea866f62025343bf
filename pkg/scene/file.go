package scene

import (
	"bytes"
	"context"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk description of a scene, in YAML or JSON
type File struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	Camera      CameraSpec    `yaml:"camera" json:"camera"`
	Screen      ScreenSpec    `yaml:"screen" json:"screen"`
	Bounces     *int          `yaml:"bounces" json:"bounces"`
	Surfaces    []SurfaceSpec `yaml:"surfaces" json:"surfaces"`
	Lights      []LightSpec   `yaml:"lights" json:"lights"`
}

// CameraSpec places the camera. Up defaults to +Z, screen distance to 20.
type CameraSpec struct {
	Eye            []float64 `yaml:"eye" json:"eye"`
	LookAt         []float64 `yaml:"look_at" json:"look_at"`
	Up             []float64 `yaml:"up" json:"up"`
	ScreenDistance float64   `yaml:"screen_distance" json:"screen_distance"`
}

// ScreenSpec overrides the non-zero fields of the default screen
type ScreenSpec struct {
	Width      int     `yaml:"width" json:"width"`
	Height     int     `yaml:"height" json:"height"`
	RealWidth  float64 `yaml:"real_width" json:"real_width"`
	RealHeight float64 `yaml:"real_height" json:"real_height"`
}

// SurfaceSpec holds exactly one shape
type SurfaceSpec struct {
	Plane      *PlaneSpec      `yaml:"plane" json:"plane"`
	Sphere     *SphereSpec     `yaml:"sphere" json:"sphere"`
	Background *BackgroundSpec `yaml:"background" json:"background"`
	Material   *MaterialSpec   `yaml:"material" json:"material"`
}

type PlaneSpec struct {
	Point  []float64 `yaml:"point" json:"point"`
	Normal []float64 `yaml:"normal" json:"normal"`
}

type SphereSpec struct {
	Center []float64 `yaml:"center" json:"center"`
	Radius float64   `yaml:"radius" json:"radius"`
}

type BackgroundSpec struct {
	Texture  string `yaml:"texture" json:"texture"`
	MaxWidth int    `yaml:"max_width" json:"max_width"`
}

// MaterialSpec colors are 8-bit channel values, or a packed 0xRRGGBBAA
// string whose alpha is ignored
type MaterialSpec struct {
	Type       string    `yaml:"type" json:"type"`
	Color      []float64 `yaml:"color" json:"color"`
	Packed     string    `yaml:"packed" json:"packed"`
	Diffuse    float64   `yaml:"diffuse" json:"diffuse"`
	Specular   float64   `yaml:"specular" json:"specular"`
	Exponent   float64   `yaml:"exponent" json:"exponent"`
	Reflection float64   `yaml:"reflection" json:"reflection"`
}

// LightSpec holds exactly one light kind
type LightSpec struct {
	Directional *DirectionalSpec `yaml:"directional" json:"directional"`
	Point       *PointSpec       `yaml:"point" json:"point"`
	Color       []float64        `yaml:"color" json:"color"`
	Packed      string           `yaml:"packed" json:"packed"`
	Brightness  *float64         `yaml:"brightness" json:"brightness"`
}

type DirectionalSpec struct {
	Direction []float64 `yaml:"direction" json:"direction"`
}

type PointSpec struct {
	Position []float64 `yaml:"position" json:"position"`
	Falloff  bool      `yaml:"falloff" json:"falloff"`
}

// Parse decodes a scene file. The format follows the extension of name:
// .json is JSON, anything else YAML. Unknown fields are rejected.
func Parse(name string, data []byte) (*File, error) {
	var f File
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(data, &f, json.RejectUnknownMembers(true)); err != nil {
			return nil, errors.Wrapf(err, "parsing JSON scene %q", name)
		}
		return &f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(err, "parsing YAML scene %q", name)
	}
	return &f, nil
}

// LoadFile reads and builds a scene file from a path or bucket URL
func LoadFile(ctx context.Context, location string, opts Options) (*Scene, error) {
	data, err := loaders.ReadAll(ctx, location)
	if err != nil {
		return nil, err
	}
	f, err := Parse(location, data)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(path.Base(filepath.ToSlash(location)), filepath.Ext(location))
	}

	s, err := f.Build(ctx, location, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", location)
	}
	opts.logger().Debug("loaded scene file", "location", location, "surfaces", len(f.Surfaces), "lights", len(f.Lights))
	return s, nil
}

// Build constructs the scene. Relative texture paths are resolved against
// base, the location the file was read from.
func (f *File) Build(ctx context.Context, base string, opts Options) (*Scene, error) {
	cameraConfig, err := f.Camera.config()
	if err != nil {
		return nil, errors.Wrap(err, "camera")
	}

	s := New(f.Name, cameraConfig)
	s.Description = f.Description
	s.Screen = f.Screen.apply(s.Screen)
	if err := s.Screen.Validate(); err != nil {
		return nil, errors.Wrap(err, "screen")
	}
	if f.Bounces != nil {
		if *f.Bounces < 0 {
			return nil, errors.Errorf("bounces must not be negative, got %d", *f.Bounces)
		}
		s.Bounces = *f.Bounces
	}

	for i, spec := range f.Surfaces {
		surface, err := spec.build(ctx, base, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "surfaces[%d]", i)
		}
		s.Add(surface)
	}

	for i, spec := range f.Lights {
		light, err := spec.build()
		if err != nil {
			return nil, errors.Wrapf(err, "lights[%d]", i)
		}
		s.AddLight(light)
	}

	return s, nil
}

func vec3(field string, v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, errors.Errorf("%s needs 3 components, got %d", field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// rgb8 converts an [r, g, b] triple of 0..255 values
func rgb8(field string, v []float64) (core.Color, error) {
	if len(v) != 3 {
		return core.Color{}, errors.Errorf("%s needs 3 channels, got %d", field, len(v))
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return core.Color{}, errors.Errorf("%s channel %g is outside 0..255", field, c)
		}
	}
	return core.NewColor(v[0]/255, v[1]/255, v[2]/255), nil
}

// specColor reads a color given either as channels or packed. ok is false
// when neither is set.
func specColor(channels []float64, packed string) (c core.Color, ok bool, err error) {
	switch {
	case channels != nil && packed != "":
		return core.Color{}, false, errors.New("set color or packed, not both")
	case packed != "":
		v, err := strconv.ParseUint(packed, 0, 32)
		if err != nil {
			return core.Color{}, false, errors.Errorf("packed %q is not a 0xRRGGBBAA value", packed)
		}
		return core.ColorFromPacked(uint32(v)), true, nil
	case channels != nil:
		c, err := rgb8("color", channels)
		return c, err == nil, err
	}
	return core.Color{}, false, nil
}

func (c CameraSpec) config() (renderer.CameraConfig, error) {
	eye, err := vec3("eye", c.Eye)
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	lookAt, err := vec3("look_at", c.LookAt)
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	if eye == lookAt {
		return renderer.CameraConfig{}, errors.New("eye and look_at must differ")
	}

	up := core.NewVec3(0, 0, 1)
	if c.Up != nil {
		if up, err = vec3("up", c.Up); err != nil {
			return renderer.CameraConfig{}, err
		}
	}
	if up.Cross(eye.Subtract(lookAt)).LengthSquared() == 0 {
		return renderer.CameraConfig{}, errors.New("up must not be parallel to the view direction")
	}

	distance := c.ScreenDistance
	if distance == 0 {
		distance = 20
	}
	if distance < 0 {
		return renderer.CameraConfig{}, errors.Errorf("screen_distance must be positive, got %g", distance)
	}

	return renderer.CameraConfig{Eye: eye, LookAt: lookAt, Up: up, ScreenDistance: distance}, nil
}

// apply overrides the non-zero fields of screen
func (sc ScreenSpec) apply(screen renderer.Screen) renderer.Screen {
	if sc.Width != 0 {
		screen.Width = sc.Width
	}
	if sc.Height != 0 {
		screen.Height = sc.Height
	}
	if sc.RealWidth != 0 {
		screen.RealWidth = sc.RealWidth
	}
	if sc.RealHeight != 0 {
		screen.RealHeight = sc.RealHeight
	}
	return screen
}

func (sp SurfaceSpec) build(ctx context.Context, base string, opts Options) (core.Surface, error) {
	shapes := 0
	for _, set := range []bool{sp.Plane != nil, sp.Sphere != nil, sp.Background != nil} {
		if set {
			shapes++
		}
	}
	if shapes != 1 {
		return nil, errors.Errorf("needs exactly one of plane, sphere or background, got %d", shapes)
	}

	if sp.Background != nil {
		if sp.Material != nil {
			return nil, errors.New("background takes no material")
		}
		if sp.Background.Texture == "" {
			return geometry.NewBackgroundSurface(nil), nil
		}
		maxWidth := sp.Background.MaxWidth
		if maxWidth == 0 {
			maxWidth = opts.TextureMaxWidth
		}
		location := loaders.ResolveRelative(base, sp.Background.Texture)
		return geometry.LoadBackgroundSurface(ctx, location, loaders.ImageOptions{MaxWidth: maxWidth}, opts.Logger), nil
	}

	if sp.Material == nil {
		return nil, errors.New("missing material")
	}
	m, err := sp.Material.build()
	if err != nil {
		return nil, errors.Wrap(err, "material")
	}

	if sp.Plane != nil {
		point, err := vec3("point", sp.Plane.Point)
		if err != nil {
			return nil, err
		}
		normal, err := vec3("normal", sp.Plane.Normal)
		if err != nil {
			return nil, err
		}
		if normal.LengthSquared() == 0 {
			return nil, errors.New("plane normal must not be zero")
		}
		return geometry.NewPlane(point, normal, m), nil
	}

	center, err := vec3("center", sp.Sphere.Center)
	if err != nil {
		return nil, err
	}
	if sp.Sphere.Radius <= 0 {
		return nil, errors.Errorf("sphere radius must be positive, got %g", sp.Sphere.Radius)
	}
	return geometry.NewSphere(center, sp.Sphere.Radius, m), nil
}

func (ms MaterialSpec) build() (core.Material, error) {
	albedo, ok, err := specColor(ms.Color, ms.Packed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("missing color")
	}

	switch strings.ToLower(ms.Type) {
	case "albedo":
		return material.NewAlbedo(albedo), nil
	case "diffuse":
		return material.NewDiffuse(albedo, ms.Diffuse), nil
	case "specular":
		return material.NewSpecularDiffuse(albedo, ms.Diffuse, ms.Specular, ms.Exponent), nil
	case "reflective":
		return material.NewSpecularDiffuseReflective(albedo, ms.Diffuse, ms.Specular, ms.Exponent, ms.Reflection), nil
	case "":
		return nil, errors.New("missing type")
	default:
		return nil, errors.Errorf("unknown type %q (want albedo, diffuse, specular or reflective)", ms.Type)
	}
}

func (ls LightSpec) build() (core.Light, error) {
	color, ok, err := specColor(ls.Color, ls.Packed)
	if err != nil {
		return nil, err
	}
	if !ok {
		color = core.NewColor(1, 1, 1)
	}
	brightness := 1.0
	if ls.Brightness != nil {
		brightness = *ls.Brightness
	}

	switch {
	case ls.Directional != nil && ls.Point != nil:
		return nil, errors.New("needs exactly one of directional or point, got both")
	case ls.Directional != nil:
		direction, err := vec3("direction", ls.Directional.Direction)
		if err != nil {
			return nil, err
		}
		if direction.LengthSquared() == 0 {
			return nil, errors.New("light direction must not be zero")
		}
		return lights.NewDirectionalLight(direction, color, brightness), nil
	case ls.Point != nil:
		position, err := vec3("position", ls.Point.Position)
		if err != nil {
			return nil, err
		}
		light := lights.NewPointLight(position, color, brightness)
		if ls.Point.Falloff {
			light = light.WithFalloff()
		}
		return light, nil
	default:
		return nil, errors.New("needs exactly one of directional or point")
	}
}
