package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon is the |N·D| below which a ray is parallel to a plane
const parallelEpsilon = 1e-8

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Normal   core.Vec3 // Unit normal
	Point    core.Vec3 // A point on the plane
	Material *material.Material
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(normal, point core.Vec3, material *material.Material) *Plane {
	return &Plane{
		Normal:   normal.Normalize(),
		Point:    point,
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	// t = N·(P - O) / N·D
	t := p.Normal.Dot(p.Point.Subtract(ray.Origin)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	return &Intersection{
		Surface:  p,
		T:        t,
		Normal:   p.Normal,
		Material: p.Material,
	}, true
}
