package value

import (
	"math"
	"strings"
)

// Value is anything that has an OpenSCAD literal form.
type Value interface {
	SCAD() string
}

// Number is a length, angle or any other real-valued literal.
type Number float64

func (n Number) SCAD() string { return FormatNumber(float64(n)) }

// Int is an unsigned integer literal ($fn, convexity, indices).
type Int uint64

func (n Int) SCAD() string { return FormatInt(uint64(n)) }

// Bool is a boolean literal.
type Bool bool

func (b Bool) SCAD() string { return FormatBool(bool(b)) }

// String is a quoted string literal.
type String string

func (s String) SCAD() string { return Quote(string(s)) }

// Ident is written verbatim, for identifiers and pre-formatted expressions.
type Ident string

func (i Ident) SCAD() string { return string(i) }

// Vec2 is a 2D point or size.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) SCAD() string {
	return "[" + FormatNumber(v.X) + ", " + FormatNumber(v.Y) + "]"
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by k.
func (v Vec2) Mul(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Vec3 is a 3D point or size.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{X: x, Y: y, Z: z}.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) SCAD() string {
	return "[" + FormatNumber(v.X) + ", " + FormatNumber(v.Y) + ", " + FormatNumber(v.Z) + "]"
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns v scaled by k.
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Vec4 is a four component vector, used for RGBA colors.
type Vec4 struct {
	X, Y, Z, W float64
}

func (v Vec4) SCAD() string {
	return "[" + FormatNumber(v.X) + ", " + FormatNumber(v.Y) + ", " +
		FormatNumber(v.Z) + ", " + FormatNumber(v.W) + "]"
}

// List is a bracketed, comma separated sequence of values.
type List[T Value] []T

func (l List[T]) SCAD() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.SCAD()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Indices converts a slice of ints into a List of Int literals.
func Indices(idx []int) List[Int] {
	out := make(List[Int], len(idx))
	for i, n := range idx {
		out[i] = Int(n)
	}
	return out
}

// Matrix3x4 is a 3D affine transform, rows first. OpenSCAD fills in the
// implicit [0, 0, 0, 1] bottom row.
type Matrix3x4 [3][4]float64

func (m Matrix3x4) SCAD() string {
	rows := make([]string, 3)
	for i, row := range m {
		cols := make([]string, 4)
		for j, c := range row {
			cols[j] = FormatNumber(c)
		}
		rows[i] = "[" + strings.Join(cols, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// Matrix2x3 is a 2D affine transform. It is written as the equivalent 3D
// matrix that leaves z untouched.
type Matrix2x3 [2][3]float64

// Lift returns the 3D matrix m stands for.
func (m Matrix2x3) Lift() Matrix3x4 {
	return Matrix3x4{
		{m[0][0], m[0][1], 0, m[0][2]},
		{m[1][0], m[1][1], 0, m[1][2]},
		{0, 0, 1, 0},
	}
}

func (m Matrix2x3) SCAD() string { return m.Lift().SCAD() }

// AngleUnit tells how an Angle was specified.
type AngleUnit int

const (
	Degrees AngleUnit = iota
	Radians
)

// Angle is an angle given in degrees or radians. It is always written
// in degrees.
type Angle struct {
	Value float64
	Unit  AngleUnit
}

// Deg builds an angle in degrees.
func Deg(d float64) Angle { return Angle{Value: d, Unit: Degrees} }

// Rad builds an angle in radians.
func Rad(r float64) Angle { return Angle{Value: r, Unit: Radians} }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	if a.Unit == Radians {
		return a.Value * 180 / math.Pi
	}
	return a.Value
}

func (a Angle) SCAD() string { return FormatNumber(a.Degrees()) }

// RoundSize is the size of a round shape: a radius or a diameter.
type RoundSize struct {
	Size     float64
	Diameter bool
}

// Radius builds a radius-specified RoundSize.
func Radius(r float64) RoundSize { return RoundSize{Size: r} }

// Diameter builds a diameter-specified RoundSize.
func Diameter(d float64) RoundSize { return RoundSize{Size: d, Diameter: true} }

// Key is the argument name the size is passed under.
func (r RoundSize) Key() string {
	if r.Diameter {
		return "d"
	}
	return "r"
}

func (r RoundSize) SCAD() string { return FormatNumber(r.Size) }

// Option returns the size as a keyed argument.
func (r RoundSize) Option() Option { return Opt(r.Key(), r) }
