package geometry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MeshLoadOptions controls how a mesh file is placed in the scene
type MeshLoadOptions struct {
	FitUnitCube bool // Rescale into the [-1, 1] cube before other transforms
	Transform   *TriangleMeshOptions
}

// LoadMesh reads an OBJ, STL or PLY file into a triangle mesh
func LoadMesh(path string, mat *material.Material, options *MeshLoadOptions) (*TriangleMesh, error) {
	var (
		src *fauxgl.Mesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		src, err = fauxgl.LoadOBJ(path)
	case ".stl":
		src, err = fauxgl.LoadSTL(path)
	case ".ply":
		src, err = fauxgl.LoadPLY(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh %s: %w", path, err)
	}

	if options != nil && options.FitUnitCube {
		src.BiUnitCube()
	}

	vertices, faces := flattenMesh(src)

	var transform *TriangleMeshOptions
	if options != nil {
		transform = options.Transform
	}
	return NewTriangleMesh(vertices, faces, mat, transform)
}

// flattenMesh converts fauxgl triangles to a vertex list with face indices.
// Vertices are not deduplicated.
func flattenMesh(src *fauxgl.Mesh) ([]core.Vec3, []int) {
	vertices := make([]core.Vec3, 0, len(src.Triangles)*3)
	faces := make([]int, 0, len(src.Triangles)*3)
	for _, t := range src.Triangles {
		for _, v := range [3]fauxgl.Vertex{t.V1, t.V2, t.V3} {
			faces = append(faces, len(vertices))
			vertices = append(vertices, core.NewVec3(v.Position.X, v.Position.Y, v.Position.Z))
		}
	}
	return vertices, faces
}
