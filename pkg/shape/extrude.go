package shape

import (
	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/value"
)

// LinearExtrude is linear_extrude(): 2D children, 3D result.
type LinearExtrude struct {
	Height    float64
	V         *value.Vec3
	Center    *bool
	Twist     *float64
	Convexity *uint64
	Slices    *uint64
	Scale     *float64
	Fn        *uint64
}

func (LinearExtrude) Dimension() scad.Dimension      { return scad.ThreeD }
func (LinearExtrude) ChildDimension() scad.Dimension { return scad.TwoD }

func (l LinearExtrude) Body() string {
	var a value.Args
	a.Add("height", value.Number(l.Height))
	if l.V != nil {
		a.Add("v", *l.V)
	}
	a.AddBool("center", l.Center).
		AddNumber("twist", l.Twist).
		AddInt("convexity", l.Convexity).
		AddInt("slices", l.Slices).
		AddNumber("scale", l.Scale).
		AddInt("$fn", l.Fn)
	return a.Call("linear_extrude")
}

func (l LinearExtrude) Validate() error {
	if err := checkPositive("linear_extrude", "height", l.Height); err != nil {
		return err
	}
	if l.V != nil && l.V.Z <= 0 {
		return invalid("linear_extrude", "v", "must point into positive z, got %s", l.V.SCAD())
	}
	if l.Scale != nil {
		return checkNonNegative("linear_extrude", "scale", *l.Scale)
	}
	return nil
}

// RotateExtrude is rotate_extrude(): 2D children swept around z.
type RotateExtrude struct {
	Angle     *float64
	Start     *float64
	Convexity *uint64
	Fa        *float64
	Fs        *float64
	Fn        *uint64
}

func (RotateExtrude) Dimension() scad.Dimension      { return scad.ThreeD }
func (RotateExtrude) ChildDimension() scad.Dimension { return scad.TwoD }

func (r RotateExtrude) Body() string {
	var a value.Args
	a.AddNumber("angle", r.Angle).
		AddNumber("start", r.Start).
		AddInt("convexity", r.Convexity).
		AddNumber("$fa", r.Fa).
		AddInt("$fn", r.Fn).
		AddNumber("$fs", r.Fs)
	return a.Call("rotate_extrude")
}

func (r RotateExtrude) Validate() error {
	if r.Angle != nil && (!finite(*r.Angle) || *r.Angle == 0 || *r.Angle > 360 || *r.Angle < -360) {
		return invalid("rotate_extrude", "angle", "must be within [-360, 360] and not zero, got %v", *r.Angle)
	}
	return checkResolution("rotate_extrude", r.Fa, r.Fs)
}

// Projection is projection(): 3D children, 2D result. With Cut set only
// the slice at z = 0 is kept.
type Projection struct {
	Cut *bool
}

func (Projection) Dimension() scad.Dimension      { return scad.TwoD }
func (Projection) ChildDimension() scad.Dimension { return scad.ThreeD }

func (p Projection) Body() string {
	var a value.Args
	a.AddBool("cut", p.Cut)
	return a.Call("projection")
}

func (Projection) Validate() error { return nil }
