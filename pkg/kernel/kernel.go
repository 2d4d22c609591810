// Package kernel defines the abstract geometry kernel the mesh preview is
// built on. Implementations provide solid modeling and boolean operations
// behind this interface, so the tessellator never depends on a specific
// backend.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
//
// Primitives are centered on the origin; callers place them. Primitive
// constructors fail on sizes the backend cannot represent.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, bottom, top float64) (Solid, error) // a cone when bottom != top

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid                    // Euler angles in degrees, x then y then z
	RotateAxis(s Solid, angle float64, x, y, z float64) Solid // degrees about the axis (x, y, z)
	Scale(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
