package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// determinantEpsilon bounds |cos| of the angle between the unit ray direction
// and the triangle's normal below which the ray is considered parallel to the
// triangle's plane. The determinant is scaled by |e1 x e2| before comparing so
// the test does not depend on the triangle's size.
const determinantEpsilon = 1e-12

// Triangle represents a single flat-shaded triangle. Winding is fixed: the
// normal is (V1-V2) x (V1-V3).
type Triangle struct {
	V1, V2, V3 core.Vec3
	Material   *material.Material
	normal     core.Vec3 // Cached unit normal
	area2      float64   // Cached |(V1-V2) x (V1-V3)|, twice the area
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v1, v2, v3 core.Vec3, material *material.Material) *Triangle {
	t := &Triangle{
		V1:       v1,
		V2:       v2,
		V3:       v3,
		Material: material,
	}
	cross := v1.Subtract(v2).Cross(v1.Subtract(v3))
	t.area2 = cross.Length()
	t.normal = cross.Normalize()
	return t
}

// Hit tests if a ray intersects with the triangle
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	_, _, tHit, ok := t.solve(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	return &Intersection{
		Surface:  t,
		T:        tHit,
		Normal:   t.normal,
		Material: t.Material,
	}, true
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// solve finds the barycentric coordinates (beta, gamma) and ray parameter of
// the hit point using Cramer's rule on
//
//	beta(V1-V2) + gamma(V1-V3) + t*D = V1 - O
//
// It returns ok=false when the ray is parallel to the plane, t is outside
// [tMin, tMax] or the point falls outside the triangle.
func (t *Triangle) solve(ray core.Ray, tMin, tMax float64) (beta, gamma, tHit float64, ok bool) {
	e1 := t.V1.Subtract(t.V2)
	e2 := t.V1.Subtract(t.V3)
	rhs := t.V1.Subtract(ray.Origin)

	a, b, c := e1.X, e1.Y, e1.Z
	d, e, f := e2.X, e2.Y, e2.Z
	g, h, i := ray.Direction.X, ray.Direction.Y, ray.Direction.Z
	j, k, l := rhs.X, rhs.Y, rhs.Z

	eiMinusHf := e*i - h*f
	gfMinusDi := g*f - d*i
	dhMinusEg := d*h - e*g

	det := a*eiMinusHf + b*gfMinusDi + c*dhMinusEg
	// Degenerate triangles have no area to hit
	if t.area2 == 0 || math.Abs(det) < determinantEpsilon*t.area2 {
		return 0, 0, 0, false
	}

	akMinusJb := a*k - j*b
	jcMinusAl := j*c - a*l
	blMinusKc := b*l - k*c

	// Reject on t first; it is the cheapest early out
	tHit = -(f*akMinusJb + e*jcMinusAl + d*blMinusKc) / det
	if tHit < tMin || tHit > tMax {
		return 0, 0, 0, false
	}

	gamma = (i*akMinusJb + h*jcMinusAl + g*blMinusKc) / det
	if gamma < 0 || gamma > 1 {
		return 0, 0, 0, false
	}

	beta = (j*eiMinusHf + k*gfMinusDi + l*dhMinusEg) / det
	if beta < 0 || beta > 1-gamma {
		return 0, 0, 0, false
	}

	return beta, gamma, tHit, true
}
