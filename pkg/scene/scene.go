package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ReflectionEpsilon offsets reflection ray origins along the normal so a
// mirror does not immediately re-hit itself
const ReflectionEpsilon = 1e-6

// Scene contains all the elements needed for rendering. It is read-only while
// a render is in progress; AddSurface, AddLight and ChangeCamera must not be
// called concurrently with Render.
type Scene struct {
	Camera     *geometry.Camera
	Surfaces   *geometry.SurfaceGroup // Objects in the scene
	Lights     []lights.Light         // Lights in the scene, summed in order
	Background core.Color             // Color of rays that escape the scene
	MaxBounces int                    // Maximum reflection depth, 0 disables mirrors
}

// NewScene creates an empty scene with a gray background and a single
// reflection bounce. A nil camera is replaced by the default camera.
func NewScene(camera *geometry.Camera) *Scene {
	if camera == nil {
		camera = DefaultCamera()
	}
	return &Scene{
		Camera:     camera,
		Surfaces:   geometry.NewSurfaceGroup(),
		Lights:     make([]lights.Light, 0),
		Background: core.Gray,
		MaxBounces: 1,
	}
}

// DefaultCamera sits at (1,1,1) looking back toward the origin with +Z up
func DefaultCamera() *geometry.Camera {
	return mustCamera(geometry.DefaultCameraConfig())
}

// mustCamera builds a camera from a config known to be valid
func mustCamera(config geometry.CameraConfig) *geometry.Camera {
	camera, err := geometry.NewCamera(config)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in camera: %v", err))
	}
	return camera
}

// AddSurface adds surfaces to the scene
func (s *Scene) AddSurface(surfaces ...geometry.Surface) {
	s.Surfaces.Add(surfaces...)
}

// AddLight adds lights to the scene
func (s *Scene) AddLight(l ...lights.Light) {
	s.Lights = append(s.Lights, l...)
}

// ChangeCamera swaps the camera used for subsequent renders
func (s *Scene) ChangeCamera(camera *geometry.Camera) {
	s.Camera = camera
}

// Hit finds the closest surface along the ray within [t0, t1]
func (s *Scene) Hit(ray core.Ray, t0, t1 float64) (*geometry.Intersection, bool) {
	return s.Surfaces.Hit(ray, t0, t1)
}

// Shade computes the color seen along a ray. depth counts the reflection
// bounces taken so far and never exceeds MaxBounces.
func (s *Scene) Shade(ray core.Ray, depth int) core.Color {
	hit, ok := s.Hit(ray, 0, math.Inf(1))
	if !ok {
		return s.Background
	}

	color := core.Black
	for _, light := range s.Lights {
		color = color.Add(light.Illuminate(s.Surfaces, ray, hit))
	}

	if depth < s.MaxBounces && hit.Material != nil && hit.Material.IsReflective() {
		point := ray.At(hit.T)
		reflected := core.Ray{
			Origin:    point.Add(hit.Normal.Multiply(ReflectionEpsilon)),
			Direction: ray.Direction.Reflect(hit.Normal),
		}
		color = color.Add(hit.Material.Specular.MultiplyColor(s.Shade(reflected, depth+1)))
	}

	return color
}

// Render traces one primary ray per pixel and returns unclamped colors in
// row-major order with the origin at the top left.
func (s *Scene) Render(width, height int) [][]core.Color {
	pixels := make([][]core.Color, 0, height)
	// The callback never fails so neither does RenderRows
	_ = s.RenderRows(width, height, func(y int, row []core.Color) error {
		pixels = append(pixels, row)
		return nil
	})
	return pixels
}

// RenderRows renders rows top to bottom and hands each finished row to fn.
// A non-nil error from fn stops the render and is returned.
func (s *Scene) RenderRows(width, height int, fn func(y int, row []core.Color) error) error {
	for y := 0; y < height; y++ {
		row := make([]core.Color, width)
		for x := 0; x < width; x++ {
			row[x] = s.Shade(s.Camera.GenerateRay(x, y, width, height), 0)
		}
		if err := fn(y, row); err != nil {
			return err
		}
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, surface := range s.Surfaces.Surfaces() {
		count += countPrimitives(surface)
	}
	return count
}

// countPrimitives counts primitives in a single surface, descending into meshes and groups
func countPrimitives(surface geometry.Surface) int {
	switch obj := surface.(type) {
	case *geometry.TriangleMesh:
		return obj.GetTriangleCount()
	case *geometry.SurfaceGroup:
		count := 0
		for _, child := range obj.Surfaces() {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}
