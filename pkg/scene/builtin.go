package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Orbit animation parameters
const (
	OrbitRadius = 15.0
	OrbitHeight = 4.0
	OrbitFov    = 64.0
)

// builtinInfo describes a scene constructor for listings
type builtinInfo struct {
	name        string
	displayName string
	description string
	create      func() *Scene
}

var builtins = []builtinInfo{
	{"spheres", "Spheres", "Red and gold spheres beside a mirror triangle over a shiny floor", NewSpheresScene},
	{"disc", "Ambient Disc", "Unit sphere lit only by ambient light", NewDiscScene},
	{"orbit", "Orbit", "Three glossy balls under colored point lights", NewOrbitScene},
}

// NewSpheresScene creates the demo scene: two spheres, a mirror triangle and a
// shiny ground plane lit by two point lights and an ambient light
func NewSpheresScene() *Scene {
	eye := core.NewVec3(4, 8, 1.5)
	camera := mustCamera(geometry.CameraConfig{
		Center:      eye,
		LookAt:      eye.Add(core.NewVec3(-1, -3, -0.5)),
		Up:          core.NewVec3(0, 0, 1),
		AspectRatio: 1.0,
		VFov:        90.0,
	})

	s := NewScene(camera)
	s.Background = core.Black
	s.MaxBounces = 2

	s.AddLight(
		lights.NewPointLight(core.NewVec3(10, 3, 0), core.NewColor(25, 25, 25)),
		lights.NewPointLight(core.NewVec3(-2, 0, 5), core.NewColor(25, 25, 25)),
		lights.NewAmbientLight(core.NewColor(0.5, 0.5, 0.5)),
	)

	s.AddSurface(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.MustLookup("red_matte")),
		geometry.NewSphere(core.NewVec3(5, 0, 0), 2, material.MustLookup("gold_metal")),
		geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -2), material.MustLookup("shiny_plane")),
		geometry.NewTriangle(
			core.NewVec3(-3, 2, 3),
			core.NewVec3(-2, 7, 2),
			core.NewVec3(-1.5, 5, 5),
			material.MustLookup("blue_mirror"),
		),
	)

	return s
}

// NewDiscScene creates a unit sphere with a purely ambient white material
// under a white ambient light. Seen from (0,0,5) it renders as a flat white
// disc on black.
func NewDiscScene() *Scene {
	camera := mustCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        90.0,
	})

	s := NewScene(camera)
	s.Background = core.Black

	ambientWhite := material.NewMaterial(core.White, core.Black, core.Black, 0)
	s.AddSurface(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, ambientWhite))
	s.AddLight(lights.NewAmbientLight(core.White))

	return s
}

// NewOrbitScene creates three glossy balls on a dark floor, each lit by a
// point light of a different primary color. The camera starts at frame 0 of
// OrbitCamera.
func NewOrbitScene() *Scene {
	camera, err := OrbitCamera(0, 1)
	if err != nil {
		panic(fmt.Sprintf("invalid orbit camera: %v", err))
	}

	s := NewScene(camera)
	s.Background = core.Black
	s.MaxBounces = 2

	glossy := material.MustLookup("white_glossy")
	s.AddSurface(
		geometry.NewSphere(core.NewVec3(5, 0, 0), 1, glossy),
		geometry.NewSphere(core.NewVec3(0, 5, 0), 1, glossy),
		geometry.NewSphere(core.NewVec3(-5, -5, 0), 1, glossy),
		geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), material.MustLookup("black_plane")),
	)

	s.AddLight(
		lights.NewAmbientLight(core.NewColor(0.5, 0.5, 0.5)),
		lights.NewPointLight(core.NewVec3(16, 0, 5), core.NewColor(100, 0, 0)),
		lights.NewPointLight(core.NewVec3(0, 16, 5), core.NewColor(0, 100, 0)),
		lights.NewPointLight(core.NewVec3(-1.5, -1.5, 5), core.NewColor(0, 0, 100)),
	)

	return s
}

// OrbitCamera returns the camera for one frame of a full circle around the
// origin, looking inward and slightly down
func OrbitCamera(frame, frames int) (*geometry.Camera, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", frames)
	}

	angle := 2 * math.Pi * float64(frame) / float64(frames)
	cos, sin := math.Cos(angle), math.Sin(angle)
	eye := core.NewVec3(OrbitRadius*cos, OrbitRadius*sin, OrbitHeight)

	return geometry.NewCamera(geometry.CameraConfig{
		Center:      eye,
		LookAt:      eye.Add(core.NewVec3(-cos, -sin, -0.5)),
		Up:          core.NewVec3(0, 0, 1),
		AspectRatio: 1.0,
		VFov:        OrbitFov,
	})
}

// BuiltinNames returns the names accepted by Create, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.name)
	}
	sort.Strings(names)
	return names
}

// Create resolves a built-in scene name or a path to a .json scene file
func Create(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadFile(name)
	}

	for _, b := range builtins {
		if b.name == name {
			return b.create(), nil
		}
	}

	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
}
