// Package tessellate walks a scad tree and produces triangle meshes using
// a geometry kernel. Only the 3D subset with a direct kernel counterpart is
// supported: cubes, spheres and cylinders under translate, rotate, scale,
// color and the three boolean operations.
package tessellate

import (
	"fmt"
	"strconv"

	"github.com/chazu/scadtree/pkg/kernel"
	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/scene"
	"github.com/chazu/scadtree/pkg/shape"
)

// UnsupportedError reports a node the kernel cannot build.
type UnsupportedError struct {
	Body   string // the node's body, "{ ... }" for blocks
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s: %s", e.Body, e.Reason)
}

func unsupported(n *scad.Node, reason string) error {
	body := n.Body()
	if n.Kind() == scad.NodeBlock {
		body = "{ ... }"
	}
	return &UnsupportedError{Body: body, Reason: reason}
}

// walker converts nodes to solids. Shared subtrees are built once.
type walker struct {
	k    kernel.Kernel
	memo map[*scad.Node]kernel.Solid
}

// Tessellate builds root with k and meshes the result. The tree is only
// read, never modified.
func Tessellate(root *scad.Node, k kernel.Kernel) (*kernel.Mesh, error) {
	if root.Dimension() != scad.ThreeD {
		return nil, fmt.Errorf("tessellate: %w", unsupported(root, root.Dimension().String()+" geometry has no mesh"))
	}
	w := &walker{k: k, memo: make(map[*scad.Node]kernel.Solid)}
	solid, err := w.solid(root)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed: %w", err)
	}
	return mesh, nil
}

// TessellateScene produces one mesh per 3D root of s, in root order. Other
// roots are skipped. Each mesh is named after the root's defined name,
// then its comment, then its position.
func TessellateScene(s *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	names := make(map[*scad.Node]string, len(s.NameIndex))
	for _, name := range s.Names() {
		n := s.Lookup(name)
		if _, taken := names[n]; !taken {
			names[n] = name
		}
	}

	var meshes []*kernel.Mesh
	for i, root := range s.Roots {
		if root.Dimension() != scad.ThreeD {
			continue
		}
		mesh, err := Tessellate(root, k)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		mesh.PartName = partName(root, i, names)
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func partName(root *scad.Node, i int, names map[*scad.Node]string) string {
	if name, ok := names[root]; ok {
		return name
	}
	if c, ok := root.Comment(); ok && c != "" {
		return c
	}
	return "root " + strconv.Itoa(i)
}

func (w *walker) solid(n *scad.Node) (kernel.Solid, error) {
	if s, ok := w.memo[n]; ok {
		return s, nil
	}

	var (
		s   kernel.Solid
		err error
	)
	switch n.Kind() {
	case scad.NodePrimitive:
		s, err = w.primitive(n)
	case scad.NodeModifier:
		s, err = w.modifier(n)
	case scad.NodeBlock:
		s, err = w.fold(n, scad.OpUnion, n.Children())
	default:
		err = fmt.Errorf("unknown node kind: %v", n.Kind())
	}
	if err != nil {
		return nil, err
	}
	w.memo[n] = s
	return s, nil
}

// primitive creates geometry for a primitive node, placed the way
// OpenSCAD places it: cubes and cylinders start at the origin unless
// centered.
func (w *walker) primitive(n *scad.Node) (kernel.Solid, error) {
	switch p := n.Leaf().(type) {
	case shape.Cube:
		ext := p.Extent()
		s, err := w.k.Box(ext.X, ext.Y, ext.Z)
		if err != nil {
			return nil, err
		}
		if !centered(p.Center) {
			s = w.k.Translate(s, ext.X/2, ext.Y/2, ext.Z/2)
		}
		return s, nil

	case shape.Sphere:
		return w.k.Sphere(p.Radius())

	case shape.Cylinder:
		bottom, top := p.Radii()
		s, err := w.k.Cylinder(p.Height, bottom, top)
		if err != nil {
			return nil, err
		}
		if !centered(p.Center) {
			s = w.k.Translate(s, 0, 0, p.Height/2)
		}
		return s, nil
	}
	return nil, unsupported(n, "no kernel primitive")
}

func centered(c *bool) bool { return c != nil && *c }

// modifier builds the child and applies the modifier's operation to it.
func (w *walker) modifier(n *scad.Node) (kernel.Solid, error) {
	if op, ok := scad.OperatorOf(n); ok {
		child := n.Child()
		operands := []*scad.Node{child}
		if child.Kind() == scad.NodeBlock {
			operands = child.Children()
		}
		return w.fold(n, op, operands)
	}

	child, err := w.solid(n.Child())
	if err != nil {
		return nil, err
	}

	switch m := n.Leaf().(type) {
	case shape.Translate3D:
		return w.k.Translate(child, m.V.X, m.V.Y, m.V.Z), nil

	case shape.Rotate3D:
		switch {
		case m.Euler != nil:
			e := m.Euler
			return w.k.Rotate(child, e[0].Degrees(), e[1].Degrees(), e[2].Degrees()), nil
		case m.Axis != nil:
			return w.k.RotateAxis(child, m.A.Degrees(), m.Axis.X, m.Axis.Y, m.Axis.Z), nil
		default:
			return w.k.Rotate(child, 0, 0, m.A.Degrees()), nil
		}

	case shape.Scale3D:
		return w.k.Scale(child, m.V.X, m.V.Y, m.V.Z), nil

	case shape.Color:
		// Meshes carry no color.
		return child, nil
	}
	return nil, unsupported(n, "no kernel operation")
}

// fold combines operands left to right with op.
func (w *walker) fold(n *scad.Node, op scad.Operator, operands []*scad.Node) (kernel.Solid, error) {
	if len(operands) == 0 {
		return nil, unsupported(n, "no operands")
	}
	acc, err := w.solid(operands[0])
	if err != nil {
		return nil, err
	}
	for _, o := range operands[1:] {
		s, err := w.solid(o)
		if err != nil {
			return nil, err
		}
		switch op {
		case scad.OpUnion:
			acc = w.k.Union(acc, s)
		case scad.OpDifference:
			acc = w.k.Difference(acc, s)
		case scad.OpIntersection:
			acc = w.k.Intersection(acc, s)
		}
	}
	return acc, nil
}
