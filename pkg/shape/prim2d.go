package shape

import (
	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/value"
)

// Circle is circle().
type Circle struct {
	Size value.RoundSize
	Fa   *float64
	Fs   *float64
	Fn   *uint64
}

func (Circle) Dimension() scad.Dimension { return scad.TwoD }

func (c Circle) Body() string {
	var a value.Args
	a.Add(c.Size.Key(), c.Size).
		AddNumber("$fa", c.Fa).
		AddInt("$fn", c.Fn).
		AddNumber("$fs", c.Fs)
	return a.Call("circle")
}

func (c Circle) Validate() error {
	if err := checkPositive("circle", c.Size.Key(), c.Size.Size); err != nil {
		return err
	}
	return checkResolution("circle", c.Fa, c.Fs)
}

// CircleBuilder sets exactly one of r and d.
type CircleBuilder struct {
	c     Circle
	sizes int
}

// NewCircle starts a circle.
func NewCircle() *CircleBuilder { return &CircleBuilder{} }

func (b *CircleBuilder) R(r float64) *CircleBuilder {
	b.c.Size = value.Radius(r)
	b.sizes++
	return b
}

func (b *CircleBuilder) D(d float64) *CircleBuilder {
	b.c.Size = value.Diameter(d)
	b.sizes++
	return b
}

func (b *CircleBuilder) Fa(fa float64) *CircleBuilder { b.c.Fa = &fa; return b }
func (b *CircleBuilder) Fs(fs float64) *CircleBuilder { b.c.Fs = &fs; return b }
func (b *CircleBuilder) Fn(fn uint64) *CircleBuilder  { b.c.Fn = &fn; return b }

func (b *CircleBuilder) Build() (Circle, error) {
	if b.sizes != 1 {
		return Circle{}, invalid("circle", "size", "exactly one of r and d must be set")
	}
	return b.c, b.c.Validate()
}

// Square is square(). XY, when set, replaces the single edge length Size.
type Square struct {
	Size   float64
	XY     *value.Vec2
	Center *bool
}

func (Square) Dimension() scad.Dimension { return scad.TwoD }

func (s Square) Body() string {
	var a value.Args
	if s.XY != nil {
		a.Add("size", *s.XY)
	} else {
		a.Add("size", value.Number(s.Size))
	}
	a.AddBool("center", s.Center)
	return a.Call("square")
}

func (s Square) Validate() error {
	if s.XY != nil {
		if err := checkNonNegative("square", "size.x", s.XY.X); err != nil {
			return err
		}
		return checkNonNegative("square", "size.y", s.XY.Y)
	}
	return checkNonNegative("square", "size", s.Size)
}

// Polygon is polygon(). Paths index into Points.
type Polygon struct {
	Points    []value.Vec2
	Paths     [][]int
	Convexity *uint64
}

func (Polygon) Dimension() scad.Dimension { return scad.TwoD }

func (p Polygon) Body() string {
	var a value.Args
	a.Add("points", value.List[value.Vec2](p.Points))
	if p.Paths != nil {
		paths := make(value.List[value.List[value.Int]], len(p.Paths))
		for i, path := range p.Paths {
			paths[i] = value.Indices(path)
		}
		a.Add("paths", paths)
	}
	a.AddInt("convexity", p.Convexity)
	return a.Call("polygon")
}

func (p Polygon) Validate() error {
	if len(p.Points) == 0 {
		return invalid("polygon", "points", "at least one point is required")
	}
	return checkIndices("polygon", "paths", "path", p.Paths, len(p.Points))
}

func checkIndices(shape, field, what string, groups [][]int, n int) error {
	for i, g := range groups {
		for j, v := range g {
			if v < 0 || v >= n {
				return invalid(shape, field, "%s index out of bounds: [%d][%d]:%d", what, i, j, v)
			}
		}
	}
	return nil
}

// PolygonBuilder collects points and paths for a Polygon.
type PolygonBuilder struct {
	p Polygon
}

// NewPolygon starts a polygon through the given points.
func NewPolygon(points ...value.Vec2) *PolygonBuilder {
	return &PolygonBuilder{p: Polygon{Points: append([]value.Vec2(nil), points...)}}
}

// Path adds one path of point indices.
func (b *PolygonBuilder) Path(idx ...int) *PolygonBuilder {
	b.p.Paths = append(b.p.Paths, append([]int(nil), idx...))
	return b
}

func (b *PolygonBuilder) Convexity(n uint64) *PolygonBuilder { b.p.Convexity = &n; return b }

func (b *PolygonBuilder) Build() (Polygon, error) {
	return b.p, b.p.Validate()
}

// Text is text(). Empty string fields are left to OpenSCAD's defaults.
type Text struct {
	Text      string
	Size      *float64
	Font      string
	HAlign    string
	VAlign    string
	Spacing   *float64
	Direction string
	Language  string
	Script    string
	Fn        *uint64
}

func (Text) Dimension() scad.Dimension { return scad.TwoD }

func (t Text) Body() string {
	var a value.Args
	a.Add("", value.String(t.Text)).
		AddString("font", t.Font).
		AddNumber("size", t.Size).
		AddString("halign", t.HAlign).
		AddString("valign", t.VAlign).
		AddNumber("spacing", t.Spacing).
		AddString("direction", t.Direction).
		AddString("language", t.Language).
		AddString("script", t.Script).
		AddInt("$fn", t.Fn)
	return a.Call("text")
}

func (t Text) Validate() error {
	if t.Size != nil {
		if err := checkPositive("text", "size", *t.Size); err != nil {
			return err
		}
	}
	if t.Spacing != nil {
		if err := checkPositive("text", "spacing", *t.Spacing); err != nil {
			return err
		}
	}
	if err := oneOf("text", "halign", t.HAlign, "left", "center", "right"); err != nil {
		return err
	}
	if err := oneOf("text", "valign", t.VAlign, "top", "center", "baseline", "bottom"); err != nil {
		return err
	}
	return oneOf("text", "direction", t.Direction, "ltr", "rtl", "ttb", "btt")
}

// TextBuilder fills in a Text.
type TextBuilder struct {
	t Text
}

// NewText starts a text sentence.
func NewText(s string) *TextBuilder { return &TextBuilder{t: Text{Text: s}} }

func (b *TextBuilder) Size(v float64) *TextBuilder     { b.t.Size = &v; return b }
func (b *TextBuilder) Font(v string) *TextBuilder      { b.t.Font = v; return b }
func (b *TextBuilder) HAlign(v string) *TextBuilder    { b.t.HAlign = v; return b }
func (b *TextBuilder) VAlign(v string) *TextBuilder    { b.t.VAlign = v; return b }
func (b *TextBuilder) Spacing(v float64) *TextBuilder  { b.t.Spacing = &v; return b }
func (b *TextBuilder) Direction(v string) *TextBuilder { b.t.Direction = v; return b }
func (b *TextBuilder) Language(v string) *TextBuilder  { b.t.Language = v; return b }
func (b *TextBuilder) Script(v string) *TextBuilder    { b.t.Script = v; return b }
func (b *TextBuilder) Fn(v uint64) *TextBuilder        { b.t.Fn = &v; return b }
func (b *TextBuilder) Build() (Text, error)            { return b.t, b.t.Validate() }

// Import2D is import() of a DXF or SVG file. ID and Layer are SVG/DXF
// selectors.
type Import2D struct {
	File      string
	Convexity *uint64
	ID        *uint64
	Layer     *uint64
	Fa        *float64
	Fs        *float64
	Fn        *uint64
}

func (Import2D) Dimension() scad.Dimension { return scad.TwoD }

func (im Import2D) Body() string {
	var a value.Args
	a.Add("", value.String(im.File)).
		AddInt("convexity", im.Convexity).
		AddInt("id", im.ID).
		AddInt("layer", im.Layer).
		AddNumber("$fa", im.Fa).
		AddInt("$fn", im.Fn).
		AddNumber("$fs", im.Fs)
	return a.Call("import")
}

func (im Import2D) Validate() error {
	if im.File == "" {
		return invalid("import", "file", "must not be empty")
	}
	return checkResolution("import", im.Fa, im.Fs)
}
