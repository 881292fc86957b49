package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// AmbientLight adds a constant base illumination everywhere, shadows included
type AmbientLight struct {
	Intensity core.Color
}

// NewAmbientLight creates a new ambient light
func NewAmbientLight(intensity core.Color) *AmbientLight {
	return &AmbientLight{Intensity: intensity}
}

// Type implements the Light interface
func (a *AmbientLight) Type() LightType {
	return LightTypeAmbient
}

// Illuminate returns intensity ⊙ material ambient. No rays are cast.
func (a *AmbientLight) Illuminate(world geometry.Surface, ray core.Ray, hit *geometry.Intersection) core.Color {
	if hit.Material == nil {
		return core.Black
	}
	return a.Intensity.MultiplyColor(hit.Material.Ambient)
}
