package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var testMaterial = material.NewMaterial(core.Gray, core.Gray, core.Black, 1)

func mustRay(t *testing.T, origin, direction core.Vec3) core.Ray {
	t.Helper()
	ray, err := core.NewRay(origin, direction)
	if err != nil {
		t.Fatalf("NewRay(%v, %v): %v", origin, direction, err)
	}
	return ray
}
