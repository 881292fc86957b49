package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// halfVectorEpsilon is the length below which L+V is treated as zero
const halfVectorEpsilon = 1e-12

// Material holds Blinn-Phong reflectance coefficients. Materials are shared
// by pointer between surfaces and must not be modified after creation.
type Material struct {
	Ambient   core.Color // Reflected fraction of ambient light
	Diffuse   core.Color // Lambertian coefficient
	Specular  core.Color // Highlight coefficient, also gates mirror reflection
	Shininess float64    // Blinn-Phong exponent
}

// NewMaterial creates a new material. Negative shininess is clamped to zero.
func NewMaterial(ambient, diffuse, specular core.Color, shininess float64) *Material {
	return &Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: max(0, shininess),
	}
}

// Reflect evaluates the diffuse and specular BRDF terms for a unit light
// direction l, unit view direction v and unit normal n. The ambient term is
// not included.
func (m *Material) Reflect(l, v, n core.Vec3) core.Color {
	diffuse := m.Diffuse.Multiply(math.Max(0, n.Dot(l)))

	half := l.Add(v)
	length := half.Length()
	if length < halfVectorEpsilon {
		return diffuse
	}
	half = half.Divide(length)

	highlight := math.Pow(math.Max(0, n.Dot(half)), m.Shininess)
	return diffuse.Add(m.Specular.Multiply(highlight))
}

// IsReflective reports whether mirror reflection off this material can
// contribute any light
func (m *Material) IsReflective() bool {
	return !m.Specular.IsBlack()
}
