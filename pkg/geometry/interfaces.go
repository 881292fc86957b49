package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Intersection records where a ray met a surface. It is only valid for the
// duration of the shading call that produced it.
type Intersection struct {
	Surface  Surface            // Primitive that was hit (not owned)
	T        float64            // Parameter t along the ray
	Normal   core.Vec3          // Unit surface normal, never flipped toward the ray
	Material *material.Material // Material of the primitive that was hit
}

// Surface is anything that can be hit by a ray. Hit returns the closest
// intersection with t in [tMin, tMax]. Implementations are immutable after
// construction and safe for concurrent use.
type Surface interface {
	Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool)
}
