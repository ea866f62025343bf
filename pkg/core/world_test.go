package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// flatMaterial shades every hit with a fixed color
type flatMaterial struct {
	color Color
}

func (m flatMaterial) Shade(ray Ray, position, normal Vec3, world *World, bounces int) (HitInfo, bool) {
	return NewHitInfo(position, normal).Tint(m.color), true
}

// wallSurface is hit at a fixed distance along any ray
type wallSurface struct {
	distance float64
	material Material
	blocks   bool
}

func (s wallSurface) SurfaceHit(ray Ray, minDistance float64) (Intersection, bool) {
	if s.distance >= minDistance {
		return Intersection{}, false
	}
	return Intersection{Point: ray.At(s.distance), Distance: s.distance}, true
}

func (s wallSurface) Normal(point Vec3) Vec3 { return NewVec3(0, 0, 1) }

func (s wallSurface) ShadowHit(ray Ray, lightDistance float64) bool {
	return s.blocks && s.distance < lightDistance
}

func (s wallSurface) Material() Material { return s.material }

func TestWorld_TraceMiss(t *testing.T) {
	world := NewWorld()
	c, ok := world.Trace(NewRay(Vec3{}, NewVec3(0, 0, -1)), 3)
	if ok {
		t.Error("Expected miss in empty world")
	}
	if c != Black {
		t.Errorf("Expected black for a miss, got %v", c)
	}
}

func TestWorld_NearestIndependentOfOrder(t *testing.T) {
	red := wallSurface{distance: 5, material: flatMaterial{NewColor(1, 0, 0)}}
	blue := wallSurface{distance: 3, material: flatMaterial{NewColor(0, 0, 1)}}
	ray := NewRay(Vec3{}, NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		surfaces []Surface
	}{
		{"near first", []Surface{blue, red}},
		{"far first", []Surface{red, blue}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := NewWorld()
			world.AddSurface(tt.surfaces...)
			c, ok := world.Trace(ray, 0)
			if !ok {
				t.Fatal("Expected hit")
			}
			if diff := cmp.Diff(NewColor(0, 0, 1), c); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWorld_TieKeepsFirst(t *testing.T) {
	first := wallSurface{distance: 4, material: flatMaterial{NewColor(0, 1, 0)}}
	second := wallSurface{distance: 4, material: flatMaterial{NewColor(1, 0, 1)}}
	world := NewWorld()
	world.AddSurface(first, second)

	c, _ := world.Trace(NewRay(Vec3{}, NewVec3(1, 0, 0)), 0)
	if c != NewColor(0, 1, 0) {
		t.Errorf("Expected first inserted surface to win the tie, got %v", c)
	}
}

func TestWorld_InShadow(t *testing.T) {
	world := NewWorld()
	world.AddSurface(
		wallSurface{distance: 2, material: flatMaterial{}, blocks: false},
		wallSurface{distance: 6, material: flatMaterial{}, blocks: true},
	)
	ray := NewRay(Vec3{}, NewVec3(0, 1, 0))

	if world.InShadow(ray, 5) {
		t.Error("Occluder beyond the light must not cast a shadow")
	}
	if !world.InShadow(ray, 10) {
		t.Error("Occluder before the light must cast a shadow")
	}
}

func TestHitInfo_DefaultsToBlack(t *testing.T) {
	info := NewHitInfo(NewVec3(1, 2, 3), NewVec3(0, 1, 0))
	if info.Color() != Black {
		t.Errorf("Expected untinted hit to be black, got %v", info.Color())
	}
	tinted := info.Tint(NewColor(0.2, 0.4, 0.6))
	if tinted.Color() != NewColor(0.2, 0.4, 0.6) {
		t.Errorf("Unexpected tint %v", tinted.Color())
	}
	if info.Color() != Black {
		t.Error("Tint must not modify the original hit")
	}
}
