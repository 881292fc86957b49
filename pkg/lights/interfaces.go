package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

type LightType string

const (
	LightTypeAmbient LightType = "ambient"
	LightTypePoint   LightType = "point"
)

// Light contributes color at a ray/surface intersection
type Light interface {
	Type() LightType

	// Illuminate returns this light's contribution at the intersection.
	// world is used to cast shadow rays.
	Illuminate(world geometry.Surface, ray core.Ray, hit *geometry.Intersection) core.Color
}
