package shape

import (
	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/value"
)

// Translate2D is translate() applied to 2D children.
type Translate2D struct{ V value.Vec2 }

func (Translate2D) Dimension() scad.Dimension { return scad.TwoD }
func (t Translate2D) Body() string            { return value.Call("translate", value.Opt("", t.V)) }
func (Translate2D) Validate() error           { return nil }

// Translate3D is translate() applied to 3D children.
type Translate3D struct{ V value.Vec3 }

func (Translate3D) Dimension() scad.Dimension { return scad.ThreeD }
func (t Translate3D) Body() string            { return value.Call("translate", value.Opt("", t.V)) }
func (Translate3D) Validate() error           { return nil }

// Rotate2D is rotate() about the z axis.
type Rotate2D struct{ A value.Angle }

func (Rotate2D) Dimension() scad.Dimension { return scad.TwoD }
func (r Rotate2D) Body() string            { return value.Call("rotate", value.Opt("", r.A)) }

func (r Rotate2D) Validate() error {
	if !finite(r.A.Value) {
		return invalid("rotate", "a", "must be finite")
	}
	return nil
}

// Rotate3D is rotate() of 3D children. Euler angles, when set, rotate
// about x, y and z in turn; otherwise A rotates about Axis, or about z
// when Axis is nil.
type Rotate3D struct {
	Euler *[3]value.Angle
	A     value.Angle
	Axis  *value.Vec3
}

// RotateXYZ rotates about x, then y, then z by the given degrees.
func RotateXYZ(x, y, z float64) Rotate3D {
	return Rotate3D{Euler: &[3]value.Angle{value.Deg(x), value.Deg(y), value.Deg(z)}}
}

// RotateAbout rotates by a around axis v.
func RotateAbout(a value.Angle, v value.Vec3) Rotate3D {
	return Rotate3D{A: a, Axis: &v}
}

func (Rotate3D) Dimension() scad.Dimension { return scad.ThreeD }

func (r Rotate3D) Body() string {
	var a value.Args
	if r.Euler != nil {
		a.Add("a", value.List[value.Angle](r.Euler[:]))
	} else {
		a.Add("a", r.A)
		if r.Axis != nil {
			a.Add("v", *r.Axis)
		}
	}
	return a.Call("rotate")
}

func (r Rotate3D) Validate() error {
	if r.Euler != nil && r.Axis != nil {
		return invalid("rotate", "v", "an axis cannot be combined with euler angles")
	}
	if r.Axis != nil && r.Axis.IsZero() {
		return invalid("rotate", "v", "axis must not be the zero vector")
	}
	return nil
}

// Scale2D is scale() of 2D children.
type Scale2D struct{ V value.Vec2 }

func (Scale2D) Dimension() scad.Dimension { return scad.TwoD }
func (s Scale2D) Body() string            { return value.Call("scale", value.Opt("", s.V)) }
func (Scale2D) Validate() error           { return nil }

// Scale3D is scale() of 3D children.
type Scale3D struct{ V value.Vec3 }

func (Scale3D) Dimension() scad.Dimension { return scad.ThreeD }
func (s Scale3D) Body() string            { return value.Call("scale", value.Opt("", s.V)) }
func (Scale3D) Validate() error           { return nil }

// Mirror2D is mirror() across the line through the origin normal to V.
type Mirror2D struct{ V value.Vec2 }

func (Mirror2D) Dimension() scad.Dimension { return scad.TwoD }
func (m Mirror2D) Body() string            { return value.Call("mirror", value.Opt("", m.V)) }

func (m Mirror2D) Validate() error {
	if m.V.X == 0 && m.V.Y == 0 {
		return invalid("mirror", "v", "normal must not be the zero vector")
	}
	return nil
}

// Mirror3D is mirror() across the plane through the origin normal to V.
type Mirror3D struct{ V value.Vec3 }

func (Mirror3D) Dimension() scad.Dimension { return scad.ThreeD }
func (m Mirror3D) Body() string            { return value.Call("mirror", value.Opt("", m.V)) }

func (m Mirror3D) Validate() error {
	if m.V.IsZero() {
		return invalid("mirror", "v", "normal must not be the zero vector")
	}
	return nil
}

// Resize2D is resize(). Auto holds either one flag for every axis or one
// flag per axis.
type Resize2D struct {
	Size value.Vec2
	Auto []bool
}

func (Resize2D) Dimension() scad.Dimension { return scad.TwoD }

func (r Resize2D) Body() string {
	var a value.Args
	a.Add("", r.Size)
	addAuto(&a, r.Auto)
	return a.Call("resize")
}

func (r Resize2D) Validate() error {
	return checkAuto(r.Auto, 2)
}

// Resize3D is resize() of 3D children.
type Resize3D struct {
	Size value.Vec3
	Auto []bool
}

func (Resize3D) Dimension() scad.Dimension { return scad.ThreeD }

func (r Resize3D) Body() string {
	var a value.Args
	a.Add("", r.Size)
	addAuto(&a, r.Auto)
	return a.Call("resize")
}

func (r Resize3D) Validate() error {
	return checkAuto(r.Auto, 3)
}

func addAuto(a *value.Args, auto []bool) {
	switch len(auto) {
	case 0:
	case 1:
		a.Add("auto", value.Bool(auto[0]))
	default:
		flags := make(value.List[value.Bool], len(auto))
		for i, f := range auto {
			flags[i] = value.Bool(f)
		}
		a.Add("auto", flags)
	}
}

func checkAuto(auto []bool, axes int) error {
	if n := len(auto); n > 1 && n != axes {
		return invalid("resize", "auto", "want 1 or %d flags, got %d", axes, n)
	}
	return nil
}

// MultMatrix2D is multmatrix() with an affine 2D matrix.
type MultMatrix2D struct{ M value.Matrix2x3 }

func (MultMatrix2D) Dimension() scad.Dimension { return scad.TwoD }
func (m MultMatrix2D) Body() string            { return value.Call("multmatrix", value.Opt("m", m.M)) }
func (MultMatrix2D) Validate() error           { return nil }

// MultMatrix3D is multmatrix() with an affine 3D matrix.
type MultMatrix3D struct{ M value.Matrix3x4 }

func (MultMatrix3D) Dimension() scad.Dimension { return scad.ThreeD }
func (m MultMatrix3D) Body() string            { return value.Call("multmatrix", value.Opt("m", m.M)) }
func (MultMatrix3D) Validate() error           { return nil }

// Offset is offset(). Delta selects a delta offset instead of a radial
// one; Chamfer only affects delta offsets.
type Offset struct {
	Size    float64
	Delta   bool
	Chamfer *bool
	Fa      *float64
	Fs      *float64
	Fn      *uint64
}

func (Offset) Dimension() scad.Dimension { return scad.TwoD }

func (o Offset) Body() string {
	key := "r"
	if o.Delta {
		key = "delta"
	}
	var a value.Args
	a.Add(key, value.Number(o.Size)).
		AddBool("chamfer", o.Chamfer).
		AddNumber("$fa", o.Fa).
		AddInt("$fn", o.Fn).
		AddNumber("$fs", o.Fs)
	return a.Call("offset")
}

func (o Offset) Validate() error {
	if !finite(o.Size) {
		return invalid("offset", "size", "must be finite")
	}
	return checkResolution("offset", o.Fa, o.Fs)
}

// Color is color(). It takes the dimension of its children. Alpha may
// only be given separately for RGB and named colors.
type Color struct {
	C     value.Color
	Alpha *float64
}

func (c Color) Body() string {
	var a value.Args
	a.Add(c.C.Key(), c.C).AddNumber("a", c.Alpha)
	return a.Call("color")
}

func (c Color) Validate() error {
	if c.C.Name == "" {
		v := c.C.RGBA
		for _, x := range []float64{v.X, v.Y, v.Z, v.W} {
			if !finite(x) || x < 0 || x > 1 {
				return invalid("color", "c", "component %v is outside [0, 1]", x)
			}
		}
	}
	if c.Alpha != nil {
		if c.C.Alpha {
			return invalid("color", "a", "alpha is already part of the RGBA vector")
		}
		if !finite(*c.Alpha) || *c.Alpha < 0 || *c.Alpha > 1 {
			return invalid("color", "a", "%v is outside [0, 1]", *c.Alpha)
		}
	}
	return nil
}

// Hull is hull(). It takes the dimension of its children.
type Hull struct{}

func (Hull) Body() string    { return "hull()" }
func (Hull) Validate() error { return nil }

// Minkowski is minkowski(). It takes the dimension of its children.
type Minkowski struct{}

func (Minkowski) Body() string    { return "minkowski()" }
func (Minkowski) Validate() error { return nil }
