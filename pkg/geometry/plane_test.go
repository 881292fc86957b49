package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
)

func TestPlane_Hit(t *testing.T) {
	// Horizontal plane at y=0; the normal is normalized on construction
	plane := NewPlane(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, 0), testMaterial)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		shouldHit bool
		expectedT float64
	}{
		{"straight down", core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), true, 1},
		{"from below", core.NewVec3(3, -2, 1), core.NewVec3(0, 1, 0), true, 2},
		{"oblique", core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0), true, math.Sqrt2},
		{"parallel", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), false, 0},
		{"behind origin", core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := plane.Hit(mustRay(t, tt.origin, tt.direction), 0, 1000)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if diff := cmp.Diff(core.NewVec3(0, 1, 0), hit.Normal, approx); diff != "" {
				t.Errorf("Plane normal should be fixed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlane_Hit_Interval(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -2), testMaterial)
	ray := mustRay(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := plane.Hit(ray, 0, 1.5); isHit {
		t.Error("Expected miss when plane lies beyond tMax")
	}
	if _, isHit := plane.Hit(ray, 2.5, 10); isHit {
		t.Error("Expected miss when plane lies before tMin")
	}
	if hit, isHit := plane.Hit(ray, 0, 2); !isHit || hit.T != 2 {
		t.Error("Expected hit exactly at inclusive tMax")
	}
}
