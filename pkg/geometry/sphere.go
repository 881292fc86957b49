package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape. Radius must be positive; a sphere with
// a zero or negative radius is never hit.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere. radius must be positive.
func NewSphere(center core.Vec3, radius float64, material *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	// (P-C)/r would point inward
	if s.Radius <= 0 {
		return nil, false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c

	// A zero discriminant is a grazing touch; treat it as a miss along with
	// rays that pass the sphere entirely
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Near root first, then the far one
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	return &Intersection{
		Surface:  s,
		T:        root,
		Normal:   point.Subtract(s.Center).Divide(s.Radius),
		Material: s.Material,
	}, true
}
