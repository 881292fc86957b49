package core

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	directions := []Vec3{
		NewVec3(0, 0, -1),
		NewVec3(3, 4, 0),
		NewVec3(-1, -1, -1),
		NewVec3(1e-7, 0, 0),
		NewVec3(250, -13, 42),
	}

	for _, d := range directions {
		ray, err := NewRay(NewVec3(1, 2, 3), d)
		if err != nil {
			t.Fatalf("NewRay(%v) returned error: %v", d, err)
		}
		if math.Abs(ray.Direction.Length()-1) > 1e-12 {
			t.Errorf("Direction %v not normalized: length %f", d, ray.Direction.Length())
		}
		if ray.Direction.Dot(d) <= 0 {
			t.Errorf("Normalized direction %v flipped relative to %v", ray.Direction, d)
		}
	}
}

func TestNewRay_ZeroDirection(t *testing.T) {
	_, err := NewRay(NewVec3(0, 0, 0), Vec3{})
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestRay_At(t *testing.T) {
	ray, err := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -2))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(NewVec3(0, 0, 2), ray.At(3), approx); diff != "" {
		t.Errorf("At mismatch (-want +got):\n%s", diff)
	}
}
