package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrDegenerateFrame is returned when the camera basis cannot be built,
// i.e. the up hint is parallel to the viewing direction
var ErrDegenerateFrame = errors.New("camera up vector is parallel to view direction")

const frameEpsilon = 1e-9

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up hint; zero means +Z
	AspectRatio float64   // Width / height; zero means 1
	VFov        float64   // Vertical field of view in degrees; zero means 90
}

// DefaultCameraConfig returns the camera used when a scene has none
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(1, 1, 1),
		LookAt:      core.NewVec3(-1, -1, -1),
		Up:          core.NewVec3(0, 0, 1),
		AspectRatio: 1.0,
		VFov:        90.0,
	}
}

// Camera generates primary rays. u, v, w form a right-handed orthonormal
// frame with w pointing from the image plane back toward the eye.
type Camera struct {
	config     CameraConfig
	center     core.Vec3
	u, v, w    core.Vec3
	halfHeight float64 // tan(fov/2)
	halfWidth  float64 // aspect * halfHeight
}

// NewCamera builds the view frame for config
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 0, 1)
	}
	if config.AspectRatio == 0 {
		config.AspectRatio = 1.0
	}
	if config.VFov == 0 {
		config.VFov = 90.0
	}
	if config.AspectRatio < 0 {
		return nil, fmt.Errorf("invalid aspect ratio %g", config.AspectRatio)
	}
	if config.VFov < 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("invalid field of view %g degrees", config.VFov)
	}

	back := config.Center.Subtract(config.LookAt)
	if back.Length() < frameEpsilon {
		return nil, fmt.Errorf("%w: eye and look-at coincide", ErrDegenerateFrame)
	}
	w := back.Normalize()

	right := config.Up.Normalize().Cross(w)
	if right.Length() < frameEpsilon {
		return nil, ErrDegenerateFrame
	}
	u := right.Normalize()
	v := w.Cross(u)

	halfHeight := math.Tan(config.VFov * math.Pi / 360.0)

	return &Camera{
		config:     config,
		center:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: halfHeight,
		halfWidth:  config.AspectRatio * halfHeight,
	}, nil
}

// GenerateRay returns the primary ray through the center of pixel (x, y) of
// a width x height image whose origin is the top-left corner
func (c *Camera) GenerateRay(x, y, width, height int) core.Ray {
	px := (2*(float64(x)+0.5)/float64(width) - 1) * c.halfWidth
	py := (1 - 2*(float64(y)+0.5)/float64(height)) * c.halfHeight

	// The -w term keeps the direction non-zero, so this never needs NewRay's check
	direction := c.u.Multiply(px).Add(c.v.Multiply(py)).Subtract(c.w)
	return core.Ray{Origin: c.center, Direction: direction.Normalize()}
}

// Center returns the eye position
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Basis returns the camera frame vectors u (right), v (up), w (backward)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from, with defaults applied
func (c *Camera) Config() CameraConfig {
	return c.config
}
