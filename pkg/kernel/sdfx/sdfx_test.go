package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/scadtree/pkg/kernel"
)

// testCells keeps marching cubes fast in tests.
const testCells = 40

// mustSolid unwraps a primitive's result: mustSolid(t)(k.Box(1, 1, 1)).
func mustSolid(t *testing.T) func(kernel.Solid, error) kernel.Solid {
	return func(s kernel.Solid, err error) kernel.Solid {
		t.Helper()
		if err != nil {
			t.Fatalf("primitive failed: %v", err)
		}
		return s
	}
}

func checkBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], wantMax[i])
		}
	}
}

func TestNewCells(t *testing.T) {
	if got := New().Cells(); got != DefaultMeshCells {
		t.Errorf("default cells = %d, want %d", got, DefaultMeshCells)
	}
	if got := New(WithCells(64)).Cells(); got != 64 {
		t.Errorf("cells = %d, want 64", got)
	}
	if got := New(WithCells(0)).Cells(); got != DefaultMeshCells {
		t.Errorf("zero cells = %d, want default", got)
	}
}

func TestBox(t *testing.T) {
	k := New(WithCells(testCells))
	box := mustSolid(t)(k.Box(100, 50, 25))
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoxRejectsNegativeSize(t *testing.T) {
	if _, err := New().Box(1, -1, 1); err == nil {
		t.Fatal("expected error for negative box size")
	}
}

func TestSphere(t *testing.T) {
	k := New(WithCells(testCells))
	s := mustSolid(t)(k.Sphere(10))
	checkBounds(t, s, [3]float64{-10, -10, -10}, [3]float64{10, 10, 10}, 0.01)

	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	min, max := mesh.Bounds()
	for i := 0; i < 3; i++ {
		if min[i] < -10.5 || max[i] > 10.5 {
			t.Errorf("mesh axis %d spans %f..%f, want within the radius", i, min[i], max[i])
		}
	}
}

func TestCylinder(t *testing.T) {
	k := New(WithCells(testCells))
	cyl := mustSolid(t)(k.Cylinder(50, 10, 10))
	checkBounds(t, cyl, [3]float64{-10, -10, -25}, [3]float64{10, 10, 25}, 0.01)

	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
}

func TestCone(t *testing.T) {
	k := New(WithCells(testCells))
	cone := mustSolid(t)(k.Cylinder(20, 8, 2))
	checkBounds(t, cone, [3]float64{-8, -8, -10}, [3]float64{8, 8, 10}, 0.01)
}

func TestDifference(t *testing.T) {
	k := New(WithCells(testCells))

	box := mustSolid(t)(k.Box(100, 100, 100))
	boxMesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	cyl := mustSolid(t)(k.Cylinder(120, 20, 20))
	diff := k.Difference(box, cyl)
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestUnion(t *testing.T) {
	k := New(WithCells(testCells))
	box1 := mustSolid(t)(k.Box(50, 50, 50))
	box2 := k.Translate(mustSolid(t)(k.Box(50, 50, 50)), 30, 0, 0)
	u := k.Union(box1, box2)
	checkBounds(t, u, [3]float64{-25, -25, -25}, [3]float64{55, 25, 25}, 0.01)

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestIntersection(t *testing.T) {
	k := New(WithCells(testCells))
	box1 := mustSolid(t)(k.Box(100, 100, 100))
	box2 := k.Translate(mustSolid(t)(k.Box(100, 100, 100)), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	mesh, err := k.ToMesh(inter)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("intersection mesh is empty")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := mustSolid(t)(k.Box(10, 10, 10))
	translated := k.Translate(box, 100, 200, 300)

	// The box is centered, so it ends up centered on (100, 200, 300).
	checkBounds(t, translated, [3]float64{95, 195, 295}, [3]float64{105, 205, 305}, 0.5)
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := mustSolid(t)(k.Box(100, 50, 25))
	checkBounds(t, box, [3]float64{-50, -25, -12.5}, [3]float64{50, 25, 12.5}, 0.01)
}

func TestRotate(t *testing.T) {
	k := New()
	box := mustSolid(t)(k.Box(100, 10, 10))

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestRotateAxis(t *testing.T) {
	k := New()
	box := mustSolid(t)(k.Box(100, 10, 10))

	// A quarter turn about z moves the long edge onto y, as with Rotate.
	rotated := k.RotateAxis(box, 90, 0, 0, 1)
	checkBounds(t, rotated, [3]float64{-5, -50, -5}, [3]float64{5, 50, 5}, 1.0)
}

func TestScale(t *testing.T) {
	k := New()
	box := mustSolid(t)(k.Box(10, 10, 10))
	scaled := k.Scale(box, 2, 1, 0.5)
	checkBounds(t, scaled, [3]float64{-10, -5, -2.5}, [3]float64{10, 5, 2.5}, 0.01)
}
