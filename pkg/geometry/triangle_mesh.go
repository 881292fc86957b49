package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMesh is a collection of triangles sharing one material. It keeps
// the triangles in a flat SurfaceGroup.
type TriangleMesh struct {
	*SurfaceGroup
	material *material.Material
}

// TriangleMeshOptions contains optional transforms applied to the vertices,
// in the order scale, rotate, translate
type TriangleMeshOptions struct {
	Scale       float64    // Uniform scale; zero means 1
	Rotation    *core.Vec3 // Optional rotation in radians around X, Y, Z
	Center      *core.Vec3 // Optional center point for rotation
	Translation core.Vec3  // Offset added last
}

// NewTriangleMesh creates a mesh from vertices and face indices.
// Each group of 3 indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	working := vertices
	if options != nil {
		working = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			working[i] = options.apply(vertex)
		}
	}

	mesh := &TriangleMesh{
		SurfaceGroup: NewSurfaceGroup(),
		material:     mat,
	}

	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(working) || i1 >= len(working) || i2 >= len(working) {
			return nil, fmt.Errorf("face %d references vertex out of range", i/3)
		}
		mesh.Add(NewTriangle(working[i0], working[i1], working[i2], mat))
	}

	return mesh, nil
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return tm.Len()
}

// Material returns the material shared by every triangle
func (tm *TriangleMesh) Material() *material.Material {
	return tm.material
}

func (o *TriangleMeshOptions) apply(vertex core.Vec3) core.Vec3 {
	if o.Scale != 0 {
		vertex = vertex.Multiply(o.Scale)
	}
	if o.Rotation != nil {
		if o.Center != nil {
			vertex = vertex.Subtract(*o.Center)
		}
		vertex = rotateVertex(vertex, *o.Rotation)
		if o.Center != nil {
			vertex = vertex.Add(*o.Center)
		}
	}
	return vertex.Add(o.Translation)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
