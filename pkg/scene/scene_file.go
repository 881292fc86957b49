package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// File is the JSON layout of a scene file
type File struct {
	// Optional metadata shown in scene listings
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Background *Color                  `json:"background,omitempty"`
	MaxBounces *int                    `json:"maxBounces,omitempty"`
	Camera     *CameraSpec             `json:"camera,omitempty"`
	Materials  map[string]MaterialSpec `json:"materials,omitempty"`

	Spheres   []SphereSpec   `json:"spheres,omitempty"`
	Triangles []TriangleSpec `json:"triangles,omitempty"`
	Planes    []PlaneSpec    `json:"planes,omitempty"`
	Meshes    []MeshSpec     `json:"meshes,omitempty"`

	PointLights   []PointLightSpec   `json:"pointLights,omitempty"`
	AmbientLights []AmbientLightSpec `json:"ambientLights,omitempty"`
}

// Vec3 is a JSON [x, y, z] triple
type Vec3 [3]float64

func (v Vec3) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// UnmarshalJSON requires exactly three numbers
func (v *Vec3) UnmarshalJSON(data []byte) error {
	xyz, err := decodeTriple(data)
	if err != nil {
		return fmt.Errorf("vector must be [x, y, z]: %w", err)
	}
	*v = xyz
	return nil
}

// decodeTriple decodes a JSON array that must hold exactly three numbers.
// Fixed-size Go arrays would silently pad or truncate instead.
func decodeTriple(data []byte) ([3]float64, error) {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return [3]float64{}, err
	}
	if len(values) != 3 {
		return [3]float64{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return [3]float64{values[0], values[1], values[2]}, nil
}

// Color is either a JSON [r, g, b] triple or the name of a predefined color
type Color core.Color

// UnmarshalJSON accepts "red" as well as [1, 0, 0]
func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		named, err := core.ColorByName(name)
		if err != nil {
			return err
		}
		*c = Color(named)
		return nil
	}

	rgb, err := decodeTriple(data)
	if err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	*c = Color(core.NewColor(rgb[0], rgb[1], rgb[2]))
	return nil
}

// CameraSpec overrides fields of the default camera. Direction is an
// alternative to LookAt and is relative to the eye.
type CameraSpec struct {
	Eye       *Vec3   `json:"eye,omitempty"`
	LookAt    *Vec3   `json:"lookAt,omitempty"`
	Direction *Vec3   `json:"direction,omitempty"`
	Up        *Vec3   `json:"up,omitempty"`
	Aspect    float64 `json:"aspect,omitempty"`
	Fov       float64 `json:"fov,omitempty"`
}

type MaterialSpec struct {
	Ambient   Color   `json:"ambient"`
	Diffuse   Color   `json:"diffuse"`
	Specular  Color   `json:"specular"`
	Shininess float64 `json:"shininess"`
}

type SphereSpec struct {
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

type TriangleSpec struct {
	V1       Vec3   `json:"v1"`
	V2       Vec3   `json:"v2"`
	V3       Vec3   `json:"v3"`
	Material string `json:"material"`
}

type PlaneSpec struct {
	Normal   Vec3   `json:"normal"`
	Point    Vec3   `json:"point"`
	Material string `json:"material"`
}

// MeshSpec loads an OBJ, STL or PLY file. Rotation is in degrees.
type MeshSpec struct {
	Path        string  `json:"path"`
	Material    string  `json:"material"`
	FitUnitCube bool    `json:"fitUnitCube,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Rotation    *Vec3   `json:"rotation,omitempty"`
	Translation *Vec3   `json:"translation,omitempty"`
}

type PointLightSpec struct {
	Center    Vec3  `json:"center"`
	Intensity Color `json:"intensity"`
}

type AmbientLightSpec struct {
	Intensity Color `json:"intensity"`
}

// LoadFile reads a JSON scene file. Relative mesh paths resolve against the
// directory holding the file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := decode(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return s, nil
}

// Decode builds a scene from JSON. Relative mesh paths resolve against the
// working directory.
func Decode(r io.Reader) (*Scene, error) {
	return decode(r, ".")
}

func decode(r io.Reader, baseDir string) (*Scene, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	return file.Build(baseDir)
}

// Build turns a decoded file into a scene
func (f *File) Build(baseDir string) (*Scene, error) {
	camera, err := f.camera()
	if err != nil {
		return nil, err
	}

	s := NewScene(camera)
	if f.Background != nil {
		s.Background = core.Color(*f.Background)
	}
	if f.MaxBounces != nil {
		if *f.MaxBounces < 0 {
			return nil, fmt.Errorf("maxBounces must not be negative, got %d", *f.MaxBounces)
		}
		s.MaxBounces = *f.MaxBounces
	}

	// Materials declared in the file are shared by every surface naming them
	local := make(map[string]*material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		local[name] = material.NewMaterial(
			core.Color(spec.Ambient), core.Color(spec.Diffuse), core.Color(spec.Specular), spec.Shininess)
	}
	resolve := func(name string) (*material.Material, error) {
		if m, ok := local[name]; ok {
			return m, nil
		}
		return material.Lookup(name)
	}

	for i, spec := range f.Spheres {
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, spec.Radius)
		}
		m, err := resolve(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSurface(geometry.NewSphere(spec.Center.vec(), spec.Radius, m))
	}

	for i, spec := range f.Triangles {
		m, err := resolve(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		s.AddSurface(geometry.NewTriangle(spec.V1.vec(), spec.V2.vec(), spec.V3.vec(), m))
	}

	for i, spec := range f.Planes {
		if spec.Normal.vec() == (core.Vec3{}) {
			return nil, fmt.Errorf("plane %d: normal must be non-zero", i)
		}
		m, err := resolve(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.AddSurface(geometry.NewPlane(spec.Normal.vec(), spec.Point.vec(), m))
	}

	for i, spec := range f.Meshes {
		m, err := resolve(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		mesh, err := geometry.LoadMesh(resolvePath(baseDir, spec.Path), m, spec.loadOptions())
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		s.AddSurface(mesh)
	}

	for _, spec := range f.PointLights {
		s.AddLight(lights.NewPointLight(spec.Center.vec(), core.Color(spec.Intensity)))
	}
	for _, spec := range f.AmbientLights {
		s.AddLight(lights.NewAmbientLight(core.Color(spec.Intensity)))
	}

	return s, nil
}

// camera merges the file's camera fields over the default camera. A nil
// result means the scene keeps the default.
func (f *File) camera() (*geometry.Camera, error) {
	if f.Camera == nil {
		return nil, nil
	}

	config := geometry.DefaultCameraConfig()
	spec := f.Camera
	if spec.Eye != nil {
		config.Center = spec.Eye.vec()
	}
	switch {
	case spec.LookAt != nil && spec.Direction != nil:
		return nil, fmt.Errorf("camera: lookAt and direction are mutually exclusive")
	case spec.LookAt != nil:
		config.LookAt = spec.LookAt.vec()
	case spec.Direction != nil:
		config.LookAt = config.Center.Add(spec.Direction.vec())
	}
	if spec.Up != nil {
		config.Up = spec.Up.vec()
	}
	if spec.Aspect != 0 {
		config.AspectRatio = spec.Aspect
	}
	if spec.Fov != 0 {
		config.VFov = spec.Fov
	}

	camera, err := geometry.NewCamera(config)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	return camera, nil
}

func (m MeshSpec) loadOptions() *geometry.MeshLoadOptions {
	options := &geometry.MeshLoadOptions{FitUnitCube: m.FitUnitCube}
	if m.Scale == 0 && m.Rotation == nil && m.Translation == nil {
		return options
	}

	transform := &geometry.TriangleMeshOptions{Scale: m.Scale}
	if m.Rotation != nil {
		radians := m.Rotation.vec().Multiply(math.Pi / 180)
		transform.Rotation = &radians
	}
	if m.Translation != nil {
		transform.Translation = m.Translation.vec()
	}
	options.Transform = transform
	return options
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
