package core

import "errors"

// ErrInvalidDirection is returned when a ray is built from a zero-length direction
var ErrInvalidDirection = errors.New("ray direction must be non-zero")

// Ray is a half-line origin + t*direction. Direction is always unit length
// for rays built with NewRay.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vec3) (Ray, error) {
	length := direction.Length()
	if length == 0 {
		return Ray{}, ErrInvalidDirection
	}
	return Ray{Origin: origin, Direction: direction.Divide(length)}, nil
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
