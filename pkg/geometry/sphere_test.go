package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
)

func TestSphere_SurfaceHit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, DummyMaterial{})

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"perpendicular offset beyond radius", core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1))},
		{"sideways past the sphere", core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))},
		{"sphere behind ray", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := sphere.SurfaceHit(tt.ray, core.Infinity); isHit {
				t.Errorf("Expected miss, but got hit at distance %f", hit.Distance)
			}
		})
	}
}

func TestSphere_SurfaceHit_DistanceIsDMinusR(t *testing.T) {
	tests := []struct {
		name      string
		center    core.Vec3
		radius    float64
		origin    core.Vec3
		direction core.Vec3
	}{
		{"unit sphere from z", core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)},
		{"large sphere from x", core.NewVec3(0, 0, 0), 3, core.NewVec3(-10, 0, 0), core.NewVec3(1, 0, 0)},
		{"offset center, unnormalized direction", core.NewVec3(1, 2, 3), 0.5, core.NewVec3(1, 2, 9), core.NewVec3(0, 0, -7)},
		{"diagonal approach", core.NewVec3(0, 0, 0), 2, core.NewVec3(4, 4, 4), core.NewVec3(-1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, DummyMaterial{})
			ray := core.NewRay(tt.origin, tt.direction)

			hit, isHit := sphere.SurfaceHit(ray, core.Infinity)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			d := tt.origin.Subtract(tt.center).Length()
			if math.Abs(hit.Distance-(d-tt.radius)) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", d-tt.radius, hit.Distance)
			}

			// Normal at the hit faces back along the ray
			normal := sphere.Normal(hit.Point)
			if diff := cmp.Diff(tt.direction.Normalize().Negate(), normal, approx); diff != "" {
				t.Errorf("Normal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSphere_SurfaceHit_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.SurfaceHit(ray, core.Infinity)
	if !isHit {
		t.Fatal("Expected the far wall to be hit from inside")
	}
	if diff := cmp.Diff(core.NewVec3(0, 0, 2), hit.Point, approx); diff != "" {
		t.Errorf("Hit point mismatch (-want +got):\n%s", diff)
	}
}

func TestSphere_SurfaceHit_RespectsMinDistance(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	// Near root at 4, far root at 6
	if _, isHit := sphere.SurfaceHit(ray, 4); isHit {
		t.Error("Hit at exactly minDistance must be rejected")
	}
	if _, isHit := sphere.SurfaceHit(ray, 3.5); isHit {
		t.Error("Hit beyond minDistance must be rejected")
	}
	if _, isHit := sphere.SurfaceHit(ray, 4.5); !isHit {
		t.Error("Hit closer than minDistance must be accepted")
	}
}

func TestSphere_SurfaceHit_SkipsSelfIntersection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, DummyMaterial{})

	// Leaving the surface outward: both roots are at or behind the origin
	out := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if hit, isHit := sphere.SurfaceHit(out, core.Infinity); isHit {
		t.Errorf("Expected no self hit, got %v", hit)
	}

	// Leaving the surface inward: the root at t=0 is skipped, the far side is found
	in := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit, isHit := sphere.SurfaceHit(in, core.Infinity)
	if !isHit {
		t.Fatal("Expected far side hit")
	}
	if math.Abs(hit.Distance-2) > 1e-9 {
		t.Errorf("Expected distance 2, got %f", hit.Distance)
	}
}

func TestSphere_ShadowHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 5, 0), 1.0, DummyMaterial{})
	up := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name          string
		ray           core.Ray
		lightDistance float64
		expected      bool
	}{
		{"sphere between point and light", up, 10, true},
		{"sphere in front of directional light", up, core.Infinity, true},
		{"light before the sphere", up, 3, false},
		{"light inside the sphere", up, 5, true},
		{"ray misses", core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), core.Infinity, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sphere.ShadowHit(tt.ray, tt.lightDistance); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}
