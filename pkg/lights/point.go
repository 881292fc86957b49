package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ShadowEpsilon offsets shadow ray origins along the normal and shortens the
// occlusion interval so a surface does not shadow itself
const ShadowEpsilon = 1e-4

// PointLight emits in all directions from a single point with inverse-square falloff
type PointLight struct {
	Center    core.Vec3
	Intensity core.Color
}

// NewPointLight creates a new point light
func NewPointLight(center core.Vec3, intensity core.Color) *PointLight {
	return &PointLight{Center: center, Intensity: intensity}
}

// Type implements the Light interface
func (p *PointLight) Type() LightType {
	return LightTypePoint
}

// Illuminate evaluates the shadow-tested Blinn-Phong contribution of the light
func (p *PointLight) Illuminate(world geometry.Surface, ray core.Ray, hit *geometry.Intersection) core.Color {
	if hit.Material == nil {
		return core.Black
	}

	point := ray.At(hit.T)
	toLight := p.Center.Subtract(point)
	dist := toLight.Length()
	if dist == 0 {
		return core.Black
	}
	l := toLight.Divide(dist)

	n := hit.Normal
	if n.Dot(l) <= 0 {
		// Light is behind the surface
		return core.Black
	}

	shadowRay := core.Ray{Origin: point.Add(n.Multiply(ShadowEpsilon)), Direction: l}
	if _, occluded := world.Hit(shadowRay, 0, dist-ShadowEpsilon); occluded {
		return core.Black
	}

	irradiance := p.Intensity.Divide(dist * dist)
	v := ray.Direction.Negate()
	return hit.Material.Reflect(l, v, n).MultiplyColor(irradiance)
}
