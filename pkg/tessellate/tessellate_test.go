package tessellate_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/chazu/scadtree/pkg/kernel"
	"github.com/chazu/scadtree/pkg/kernel/sdfx"
	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/scene"
	"github.com/chazu/scadtree/pkg/shape"
	"github.com/chazu/scadtree/pkg/tessellate"
	"github.com/chazu/scadtree/pkg/value"
)

// traceSolid records how it was built.
type traceSolid struct {
	trace string
}

func (s *traceSolid) BoundingBox() (min, max [3]float64) { return }

// traceKernel builds traceSolids so tests can check exactly which kernel
// calls a tree turns into.
type traceKernel struct {
	meshes int
}

func tr(s kernel.Solid) string { return s.(*traceSolid).trace }

func solidf(format string, args ...any) kernel.Solid {
	return &traceSolid{trace: fmt.Sprintf(format, args...)}
}

func (k *traceKernel) Box(x, y, z float64) (kernel.Solid, error) {
	return solidf("box(%g,%g,%g)", x, y, z), nil
}
func (k *traceKernel) Sphere(r float64) (kernel.Solid, error) {
	return solidf("sphere(%g)", r), nil
}
func (k *traceKernel) Cylinder(h, r1, r2 float64) (kernel.Solid, error) {
	return solidf("cylinder(%g,%g,%g)", h, r1, r2), nil
}
func (k *traceKernel) Union(a, b kernel.Solid) kernel.Solid {
	return solidf("union(%s,%s)", tr(a), tr(b))
}
func (k *traceKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return solidf("difference(%s,%s)", tr(a), tr(b))
}
func (k *traceKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return solidf("intersection(%s,%s)", tr(a), tr(b))
}
func (k *traceKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return solidf("translate(%g,%g,%g,%s)", x, y, z, tr(s))
}
func (k *traceKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return solidf("rotate(%g,%g,%g,%s)", x, y, z, tr(s))
}
func (k *traceKernel) RotateAxis(s kernel.Solid, a, x, y, z float64) kernel.Solid {
	return solidf("rotate_axis(%g,%g,%g,%g,%s)", a, x, y, z, tr(s))
}
func (k *traceKernel) Scale(s kernel.Solid, x, y, z float64) kernel.Solid {
	return solidf("scale(%g,%g,%g,%s)", x, y, z, tr(s))
}

// ToMesh stores the trace in PartName so tests can read it back.
func (k *traceKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	k.meshes++
	return &kernel.Mesh{PartName: tr(s)}, nil
}

var _ kernel.Kernel = (*traceKernel)(nil)

func trace(t *testing.T, n *scad.Node) string {
	t.Helper()
	m, err := tessellate.Tessellate(n, &traceKernel{})
	if err != nil {
		t.Fatalf("Tessellate() error = %v", err)
	}
	return m.PartName
}

func TestTessellatePrimitives(t *testing.T) {
	tests := []struct {
		name string
		s    shape.Shape
		want string
	}{
		{"cube", shape.Cube{Size: 10}, "translate(5,5,5,box(10,10,10))"},
		{"centered box", shape.Cube{XYZ: &value.Vec3{X: 1, Y: 2, Z: 3}, Center: value.Ptr(true)}, "box(1,2,3)"},
		{"sphere diameter", shape.Sphere{Size: value.Diameter(6)}, "sphere(3)"},
		{"cylinder", shape.Cylinder{Height: 10, Bottom: value.Radius(2), Top: value.Radius(2)}, "translate(0,0,5,cylinder(10,2,2))"},
		{"centered cone", shape.Cylinder{Height: 4, Bottom: value.Diameter(6), Top: value.Diameter(2), Center: value.Ptr(true)}, "cylinder(4,3,1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trace(t, shape.MustPrimitive(tt.s)); got != tt.want {
				t.Errorf("trace = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTessellateModifiers(t *testing.T) {
	ball := shape.MustPrimitive(shape.Sphere{Size: value.Radius(1)})
	tests := []struct {
		name string
		m    scad.Leaf
		want string
	}{
		{"translate", shape.Translate3D{V: value.V3(1, 2, 3)}, "translate(1,2,3,sphere(1))"},
		{"rotate xyz", shape.RotateXYZ(90, 0, 45), "rotate(90,0,45,sphere(1))"},
		{"rotate about axis", shape.RotateAbout(value.Deg(30), value.V3(1, 1, 0)), "rotate_axis(30,1,1,0,sphere(1))"},
		{"rotate about z", shape.Rotate3D{A: value.Deg(15)}, "rotate(0,0,15,sphere(1))"},
		{"scale", shape.Scale3D{V: value.V3(2, 1, 1)}, "scale(2,1,1,sphere(1))"},
		{"color", shape.Color{C: value.Named("red")}, "sphere(1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trace(t, shape.MustApply(tt.m, ball)); got != tt.want {
				t.Errorf("trace = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTessellateBooleans(t *testing.T) {
	a := shape.MustPrimitive(shape.Sphere{Size: value.Radius(1)})
	b := shape.MustPrimitive(shape.Sphere{Size: value.Radius(2)})
	c := shape.MustPrimitive(shape.Sphere{Size: value.Radius(3)})

	t.Run("difference chain", func(t *testing.T) {
		n := a.Sub(b).Sub(c)
		want := "difference(difference(sphere(1),sphere(2)),sphere(3))"
		if got := trace(t, n); got != want {
			t.Errorf("trace = %s, want %s", got, want)
		}
	})
	t.Run("intersection", func(t *testing.T) {
		want := "intersection(sphere(1),sphere(2))"
		if got := trace(t, a.Mul(b)); got != want {
			t.Errorf("trace = %s, want %s", got, want)
		}
	})
	t.Run("implicit union under a transform", func(t *testing.T) {
		n := shape.MustApply(shape.Translate3D{V: value.V3(0, 0, 1)}, a, b)
		want := "translate(0,0,1,union(sphere(1),sphere(2)))"
		if got := trace(t, n); got != want {
			t.Errorf("trace = %s, want %s", got, want)
		}
	})
	t.Run("union with a single child", func(t *testing.T) {
		n := shape.MustApply(scad.Union{}, a)
		if got := trace(t, n); got != "sphere(1)" {
			t.Errorf("trace = %s, want sphere(1)", got)
		}
	})
}

func TestTessellateUnsupported(t *testing.T) {
	square := shape.MustPrimitive(shape.Square{Size: 1})
	tests := []struct {
		name string
		n    *scad.Node
	}{
		{"2D root", square},
		{"polyhedron", shape.MustPrimitive(shape.Polyhedron{
			Points: []value.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}},
			Faces:  [][]int{{0, 1, 2}, {0, 1, 3}, {1, 2, 3}, {0, 2, 3}},
		})},
		{"linear extrude", shape.MustApply(shape.LinearExtrude{Height: 1}, square)},
		{"hull", shape.MustApply(shape.Hull{}, shape.MustPrimitive(shape.Cube{Size: 1}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tessellate.Tessellate(tt.n, &traceKernel{})
			var ue *tessellate.UnsupportedError
			if !errors.As(err, &ue) {
				t.Fatalf("error = %v, want *UnsupportedError", err)
			}
			if ue.Body == "" {
				t.Error("UnsupportedError.Body is empty")
			}
		})
	}
}

func TestTessellateSharedSubtree(t *testing.T) {
	post := shape.MustPrimitive(shape.Sphere{Size: value.Radius(1)})
	n := shape.MustApply(scad.Union{},
		shape.MustApply(shape.Translate3D{V: value.V3(1, 0, 0)}, post),
		shape.MustApply(shape.Translate3D{V: value.V3(-1, 0, 0)}, post),
	)
	want := "union(translate(1,0,0,sphere(1)),translate(-1,0,0,sphere(1)))"
	if got := trace(t, n); got != want {
		t.Errorf("trace = %s, want %s", got, want)
	}
}

func TestTessellateScene(t *testing.T) {
	s := scene.New()
	cube := shape.MustPrimitive(shape.Cube{Size: 1, Center: value.Ptr(true)})
	s.AddRoot(cube)
	s.AddRoot(shape.MustPrimitive(shape.Circle{Size: value.Radius(1)}))
	s.AddRoot(shape.MustPrimitive(shape.Sphere{Size: value.Radius(1)}).WithComment("ball"))
	s.AddRoot(shape.MustPrimitive(shape.Sphere{Size: value.Radius(2)}))
	if err := s.Define("block", cube); err != nil {
		t.Fatal(err)
	}

	k := &traceKernel{}
	meshes, err := tessellate.TessellateScene(s, k)
	if err != nil {
		t.Fatalf("TessellateScene() error = %v", err)
	}
	var names []string
	for _, m := range meshes {
		names = append(names, m.PartName)
	}
	want := []string{"block", "ball", "root 3"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("names = %q, want %q", names, want)
	}
	if k.meshes != 3 {
		t.Errorf("ToMesh called %d times, want 3", k.meshes)
	}
}

func TestTessellateNilScene(t *testing.T) {
	meshes, err := tessellate.TessellateScene(nil, &traceKernel{})
	if err != nil || meshes != nil {
		t.Errorf("TessellateScene(nil) = %v, %v", meshes, err)
	}
}

// The remaining tests run the real sdfx kernel end to end.

func newKernel() kernel.Kernel {
	return sdfx.New(sdfx.WithCells(40))
}

func TestSdfxCubeBounds(t *testing.T) {
	n := shape.MustPrimitive(shape.Cube{Size: 10})
	m, err := tessellate.Tessellate(n, newKernel())
	if err != nil {
		t.Fatalf("Tessellate() error = %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	min, max := m.Bounds()
	const tol = 0.5
	for i := 0; i < 3; i++ {
		if math.Abs(float64(min[i])) > tol || math.Abs(float64(max[i])-10) > tol {
			t.Errorf("axis %d spans %f..%f, want ~0..10", i, min[i], max[i])
		}
	}
}

func TestSdfxDifference(t *testing.T) {
	k := newKernel()
	box := shape.MustPrimitive(shape.Cube{Size: 20, Center: value.Ptr(true)})
	hole := shape.MustPrimitive(shape.Cylinder{Height: 30, Bottom: value.Radius(4), Top: value.Radius(4), Center: value.Ptr(true)})

	plain, err := tessellate.Tessellate(box, k)
	if err != nil {
		t.Fatalf("Tessellate(box) error = %v", err)
	}
	drilled, err := tessellate.Tessellate(box.Sub(hole), k)
	if err != nil {
		t.Fatalf("Tessellate(difference) error = %v", err)
	}
	if drilled.TriangleCount() <= plain.TriangleCount() {
		t.Errorf("difference has %d triangles, box has %d", drilled.TriangleCount(), plain.TriangleCount())
	}
}
