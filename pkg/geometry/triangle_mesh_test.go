package geometry

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func quadVertices() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0), // 0
		core.NewVec3(1, 0, 0), // 1
		core.NewVec3(1, 1, 0), // 2
		core.NewVec3(0, 1, 0), // 3
	}
	faces := []int{
		0, 1, 2, // first triangle
		0, 2, 3, // second triangle
	}
	return vertices, faces
}

func TestTriangleMesh_Hit(t *testing.T) {
	vertices, faces := quadVertices()
	mesh, err := NewTriangleMesh(vertices, faces, testMaterial, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mesh.GetTriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}

	tests := []struct {
		name      string
		origin    core.Vec3
		shouldHit bool
	}{
		{"first triangle", core.NewVec3(0.75, 0.25, 1), true},
		{"second triangle", core.NewVec3(0.25, 0.75, 1), true},
		{"outside quad", core.NewVec3(1.5, 0.5, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := mesh.Hit(mustRay(t, tt.origin, core.NewVec3(0, 0, -1)), 0, 10)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if _, ok := hit.Surface.(*Triangle); !ok {
				t.Errorf("Expected the intersection to reference a triangle, got %T", hit.Surface)
			}
			if hit.Material != testMaterial {
				t.Error("Expected mesh material on intersection")
			}
		})
	}
}

func TestTriangleMesh_Errors(t *testing.T) {
	vertices, _ := quadVertices()

	if _, err := NewTriangleMesh(vertices, []int{0, 1}, testMaterial, nil); err == nil {
		t.Error("Expected error for face list not a multiple of 3")
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 9}, testMaterial, nil); err == nil {
		t.Error("Expected error for out of range index")
	}
}

func TestTriangleMesh_Transform(t *testing.T) {
	vertices, faces := quadVertices()
	rotation := core.NewVec3(0, 0, math.Pi/2)
	mesh, err := NewTriangleMesh(vertices, faces, testMaterial, &TriangleMeshOptions{
		Scale:       2,
		Rotation:    &rotation,
		Translation: core.NewVec3(0, 0, -5),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Scaled to 2x2, rotated 90 degrees about Z into the -X half, then moved to z=-5
	if _, isHit := mesh.Hit(mustRay(t, core.NewVec3(-1, 1, 0), core.NewVec3(0, 0, -1)), 0, 10); !isHit {
		t.Error("Expected hit inside transformed quad")
	}
	if _, isHit := mesh.Hit(mustRay(t, core.NewVec3(1, 1, 0), core.NewVec3(0, 0, -1)), 0, 10); isHit {
		t.Error("Expected miss where the quad used to be")
	}
}

func TestLoadMesh_OBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	obj := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3\nf 1 3 4\n"
	if err := os.WriteFile(path, []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadMesh(path, testMaterial, nil)
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}

	hit, isHit := mesh.Hit(mustRay(t, core.NewVec3(0.5, 0.4, 2), core.NewVec3(0, 0, -1)), 0, 10)
	if !isHit {
		t.Fatal("Expected hit on loaded mesh")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
}

func TestLoadMesh_UnsupportedFormat(t *testing.T) {
	if _, err := LoadMesh("model.fbx", testMaterial, nil); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
