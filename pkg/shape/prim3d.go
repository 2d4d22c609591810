package shape

import (
	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/value"
)

// Cube is cube(). XYZ, when set, replaces the single edge length Size.
type Cube struct {
	Size   float64
	XYZ    *value.Vec3
	Center *bool
}

func (Cube) Dimension() scad.Dimension { return scad.ThreeD }

func (c Cube) Body() string {
	var a value.Args
	if c.XYZ != nil {
		a.Add("size", *c.XYZ)
	} else {
		a.Add("size", value.Number(c.Size))
	}
	a.AddBool("center", c.Center)
	return a.Call("cube")
}

// Extent returns the edge lengths along each axis.
func (c Cube) Extent() value.Vec3 {
	if c.XYZ != nil {
		return *c.XYZ
	}
	return value.V3(c.Size, c.Size, c.Size)
}

func (c Cube) Validate() error {
	e := c.Extent()
	for _, f := range []struct {
		name string
		v    float64
	}{{"size.x", e.X}, {"size.y", e.Y}, {"size.z", e.Z}} {
		if err := checkNonNegative("cube", f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Sphere is sphere().
type Sphere struct {
	Size value.RoundSize
	Fa   *float64
	Fs   *float64
	Fn   *uint64
}

func (Sphere) Dimension() scad.Dimension { return scad.ThreeD }

func (s Sphere) Body() string {
	var a value.Args
	a.Add(s.Size.Key(), s.Size).
		AddNumber("$fa", s.Fa).
		AddInt("$fn", s.Fn).
		AddNumber("$fs", s.Fs)
	return a.Call("sphere")
}

// Radius returns the radius whatever way the size was given.
func (s Sphere) Radius() float64 { return radius(s.Size) }

func (s Sphere) Validate() error {
	if err := checkPositive("sphere", s.Size.Key(), s.Size.Size); err != nil {
		return err
	}
	return checkResolution("sphere", s.Fa, s.Fs)
}

func radius(r value.RoundSize) float64 {
	if r.Diameter {
		return r.Size / 2
	}
	return r.Size
}

// SphereBuilder sets exactly one of r and d.
type SphereBuilder struct {
	s     Sphere
	sizes int
}

// NewSphere starts a sphere.
func NewSphere() *SphereBuilder { return &SphereBuilder{} }

func (b *SphereBuilder) R(r float64) *SphereBuilder {
	b.s.Size = value.Radius(r)
	b.sizes++
	return b
}

func (b *SphereBuilder) D(d float64) *SphereBuilder {
	b.s.Size = value.Diameter(d)
	b.sizes++
	return b
}

func (b *SphereBuilder) Fa(fa float64) *SphereBuilder { b.s.Fa = &fa; return b }
func (b *SphereBuilder) Fs(fs float64) *SphereBuilder { b.s.Fs = &fs; return b }
func (b *SphereBuilder) Fn(fn uint64) *SphereBuilder  { b.s.Fn = &fn; return b }

func (b *SphereBuilder) Build() (Sphere, error) {
	if b.sizes != 1 {
		return Sphere{}, invalid("sphere", "size", "exactly one of r and d must be set")
	}
	return b.s, b.s.Validate()
}

// Cylinder is cylinder(). When Bottom and Top are equal it renders a
// single r or d; otherwise it is a cone written with r1/r2 or d1/d2.
type Cylinder struct {
	Height float64
	Bottom value.RoundSize
	Top    value.RoundSize
	Center *bool
	Fa     *float64
	Fs     *float64
	Fn     *uint64
}

func (Cylinder) Dimension() scad.Dimension { return scad.ThreeD }

func (c Cylinder) Body() string {
	var a value.Args
	a.Add("h", value.Number(c.Height))
	if c.Bottom == c.Top {
		a.Add(c.Bottom.Key(), c.Bottom)
	} else {
		a.Add(c.Bottom.Key()+"1", c.Bottom).Add(c.Top.Key()+"2", c.Top)
	}
	a.AddBool("center", c.Center).
		AddNumber("$fa", c.Fa).
		AddInt("$fn", c.Fn).
		AddNumber("$fs", c.Fs)
	return a.Call("cylinder")
}

// Radii returns the bottom and top radii.
func (c Cylinder) Radii() (bottom, top float64) {
	return radius(c.Bottom), radius(c.Top)
}

func (c Cylinder) Validate() error {
	if err := checkPositive("cylinder", "h", c.Height); err != nil {
		return err
	}
	if c.Bottom.Diameter != c.Top.Diameter {
		return invalid("cylinder", "size", "radius and diameter cannot be mixed")
	}
	if err := checkNonNegative("cylinder", c.Bottom.Key()+"1", c.Bottom.Size); err != nil {
		return err
	}
	if err := checkNonNegative("cylinder", c.Top.Key()+"2", c.Top.Size); err != nil {
		return err
	}
	if c.Bottom.Size == 0 && c.Top.Size == 0 {
		return invalid("cylinder", "size", "both ends have zero size")
	}
	return checkResolution("cylinder", c.Fa, c.Fs)
}

// CylinderBuilder picks one of r, d, r1/r2 or d1/d2.
type CylinderBuilder struct {
	c     Cylinder
	sizes int
}

// NewCylinder starts a cylinder of height h.
func NewCylinder(h float64) *CylinderBuilder {
	return &CylinderBuilder{c: Cylinder{Height: h}}
}

func (b *CylinderBuilder) R(r float64) *CylinderBuilder {
	return b.ends(value.Radius(r), value.Radius(r))
}

func (b *CylinderBuilder) D(d float64) *CylinderBuilder {
	return b.ends(value.Diameter(d), value.Diameter(d))
}

// Cone sets distinct bottom and top radii.
func (b *CylinderBuilder) Cone(r1, r2 float64) *CylinderBuilder {
	return b.ends(value.Radius(r1), value.Radius(r2))
}

// ConeD sets distinct bottom and top diameters.
func (b *CylinderBuilder) ConeD(d1, d2 float64) *CylinderBuilder {
	return b.ends(value.Diameter(d1), value.Diameter(d2))
}

func (b *CylinderBuilder) ends(bottom, top value.RoundSize) *CylinderBuilder {
	b.c.Bottom, b.c.Top = bottom, top
	b.sizes++
	return b
}

func (b *CylinderBuilder) Center(c bool) *CylinderBuilder { b.c.Center = &c; return b }
func (b *CylinderBuilder) Fa(fa float64) *CylinderBuilder { b.c.Fa = &fa; return b }
func (b *CylinderBuilder) Fs(fs float64) *CylinderBuilder { b.c.Fs = &fs; return b }
func (b *CylinderBuilder) Fn(fn uint64) *CylinderBuilder  { b.c.Fn = &fn; return b }

func (b *CylinderBuilder) Build() (Cylinder, error) {
	if b.sizes != 1 {
		return Cylinder{}, invalid("cylinder", "size", "exactly one of r, d, r1/r2 and d1/d2 must be set")
	}
	return b.c, b.c.Validate()
}

// Polyhedron is polyhedron(). Faces index into Points.
type Polyhedron struct {
	Points    []value.Vec3
	Faces     [][]int
	Convexity *uint64
}

func (Polyhedron) Dimension() scad.Dimension { return scad.ThreeD }

func (p Polyhedron) Body() string {
	faces := make(value.List[value.List[value.Int]], len(p.Faces))
	for i, f := range p.Faces {
		faces[i] = value.Indices(f)
	}
	var a value.Args
	a.Add("points", value.List[value.Vec3](p.Points)).
		Add("faces", faces).
		AddInt("convexity", p.Convexity)
	return a.Call("polyhedron")
}

func (p Polyhedron) Validate() error {
	if len(p.Points) < 4 {
		return invalid("polyhedron", "points", "at least 4 points are required, got %d", len(p.Points))
	}
	if len(p.Faces) < 4 {
		return invalid("polyhedron", "faces", "at least 4 faces are required, got %d", len(p.Faces))
	}
	for i, f := range p.Faces {
		if len(f) < 3 {
			return invalid("polyhedron", "faces", "face %d has %d vertices", i, len(f))
		}
	}
	return checkIndices("polyhedron", "faces", "face", p.Faces, len(p.Points))
}

// Surface is surface(), a height map read from a file.
type Surface struct {
	File      string
	Center    *bool
	Invert    *bool
	Convexity *uint64
}

func (Surface) Dimension() scad.Dimension { return scad.ThreeD }

func (s Surface) Body() string {
	var a value.Args
	a.Add("file", value.String(s.File)).
		AddBool("center", s.Center).
		AddBool("invert", s.Invert).
		AddInt("convexity", s.Convexity)
	return a.Call("surface")
}

func (s Surface) Validate() error {
	if s.File == "" {
		return invalid("surface", "file", "must not be empty")
	}
	return nil
}

// Import3D is import() of an STL, OFF, AMF or 3MF file.
type Import3D struct {
	File      string
	Convexity *uint64
	Fa        *float64
	Fs        *float64
	Fn        *uint64
}

func (Import3D) Dimension() scad.Dimension { return scad.ThreeD }

func (im Import3D) Body() string {
	var a value.Args
	a.Add("", value.String(im.File)).
		AddInt("convexity", im.Convexity).
		AddNumber("$fa", im.Fa).
		AddInt("$fn", im.Fn).
		AddNumber("$fs", im.Fs)
	return a.Call("import")
}

func (im Import3D) Validate() error {
	if im.File == "" {
		return invalid("import", "file", "must not be empty")
	}
	return checkResolution("import", im.Fa, im.Fs)
}

// Echo is echo(). It produces no geometry and so belongs to neither
// dimension.
type Echo struct {
	Args []value.Option
}

func (Echo) Dimension() scad.Dimension { return scad.Mixed }

func (e Echo) Body() string { return value.Call("echo", e.Args...) }

func (Echo) Validate() error { return nil }
