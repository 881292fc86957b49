package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
)

func TestTriangle_Hit_Centroid(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1), testMaterial)
	ray := mustRay(t, core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1))

	beta, gamma, tHit, ok := triangle.solve(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected centroid hit, but got miss")
	}
	if beta < 0 || gamma < 0 || beta+gamma > 1 {
		t.Errorf("Barycentric coordinates out of range: beta=%f gamma=%f", beta, gamma)
	}
	if math.Abs(beta-1.0/3) > 1e-9 || math.Abs(gamma-1.0/3) > 1e-9 {
		t.Errorf("Expected beta=gamma=1/3 at the centroid, got beta=%f gamma=%f", beta, gamma)
	}

	expectedT := core.NewVec3(2.0/3, 2.0/3, 2.0/3).Length()
	if math.Abs(tHit-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got %f", expectedT, tHit)
	}

	hit, isHit := triangle.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Hit disagrees with solve")
	}
	if diff := cmp.Diff(core.NewVec3(1, 1, 1).Normalize(), hit.Normal, approx); diff != "" {
		t.Errorf("Normal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(core.NewVec3(1.0/3, 1.0/3, 1.0/3), ray.At(hit.T), approx); diff != "" {
		t.Errorf("Hit point mismatch (-want +got):\n%s", diff)
	}
}

func TestTriangle_Hit(t *testing.T) {
	// Triangle in the XY plane
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{"hits interior", core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1), 0, 10, true, 1},
		{"hits edge", core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1), 0, 10, true, 1},
		{"hits from behind", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1), 0, 10, true, 1},
		{"outside hypotenuse", core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1), 0, 10, false, 0},
		{"outside negative side", core.NewVec3(-0.1, 0.5, -1), core.NewVec3(0, 0, 1), 0, 10, false, 0},
		{"parallel to plane", core.NewVec3(0.25, 0.25, 0.5), core.NewVec3(1, 0, 0), 0, 10, false, 0},
		{"beyond tMax", core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1), 0, 0.5, false, 0},
		{"behind origin", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1), 0, 10, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(mustRay(t, tt.origin, tt.direction), tt.tMin, tt.tMax)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestTriangle_NormalIsFixed(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial)
	want := core.NewVec3(0, 0, 1)

	for _, origin := range []core.Vec3{core.NewVec3(0.2, 0.2, -3), core.NewVec3(0.2, 0.2, 3)} {
		direction := core.NewVec3(0, 0, -origin.Z)
		hit, isHit := triangle.Hit(mustRay(t, origin, direction), 0, 10)
		if !isHit {
			t.Fatalf("Expected hit from %v", origin)
		}
		if diff := cmp.Diff(want, hit.Normal, approx); diff != "" {
			t.Errorf("Normal from %v should not flip (-want +got):\n%s", origin, diff)
		}
	}
}

func TestTriangle_Hit_Scale(t *testing.T) {
	for _, scale := range []float64{1e-7, 1e-3, 1, 1e6} {
		triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(scale, 0, 0), core.NewVec3(0, scale, 0), testMaterial)

		tests := []struct {
			name      string
			origin    core.Vec3
			direction core.Vec3
			shouldHit bool
		}{
			{"hits interior", core.NewVec3(0.25*scale, 0.25*scale, -1), core.NewVec3(0, 0, 1), true},
			{"misses outside", core.NewVec3(scale, scale, -1), core.NewVec3(0, 0, 1), false},
			{"parallel to plane", core.NewVec3(0.25*scale, 0.25*scale, 0.5), core.NewVec3(1, 0, 0), false},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("scale=%g/%s", scale, tt.name), func(t *testing.T) {
				hit, isHit := triangle.Hit(mustRay(t, tt.origin, tt.direction), 0, 10)
				if isHit != tt.shouldHit {
					t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
				}
				if isHit && math.Abs(hit.T-1) > 1e-9 {
					t.Errorf("Expected t=1, got %f", hit.T)
				}
			})
		}
	}
}

func TestTriangle_Hit_Degenerate(t *testing.T) {
	// Collinear vertices enclose no area
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), testMaterial)

	hit, isHit := triangle.Hit(mustRay(t, core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)), 0, 10)
	if isHit || hit != nil {
		t.Errorf("Expected miss on a degenerate triangle, got hit at t=%f", hit.T)
	}
}
