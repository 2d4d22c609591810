package value

import "strings"

// Color is an RGB or RGBA vector, or a named color ("red", "#C0FFEE").
type Color struct {
	RGBA  Vec4
	Alpha bool   // RGBA carries a meaningful alpha component
	Name  string // when set, the color is written as a string literal
}

// RGB builds an opaque vector color.
func RGB(r, g, b float64) Color {
	return Color{RGBA: Vec4{r, g, b, 1}}
}

// RGBA builds a vector color with alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{RGBA: Vec4{r, g, b, a}, Alpha: true}
}

// Named builds a color from an SVG color name or hex string.
func Named(name string) Color {
	return Color{Name: name}
}

// Key is "c" for vector colors and empty for names, which OpenSCAD
// expects as the first positional argument.
func (c Color) Key() string {
	if c.Name != "" {
		return ""
	}
	return "c"
}

func (c Color) SCAD() string {
	switch {
	case c.Name != "":
		return Quote(c.Name)
	case c.Alpha:
		return c.RGBA.SCAD()
	default:
		return Vec3{c.RGBA.X, c.RGBA.Y, c.RGBA.Z}.SCAD()
	}
}

// Option is one argument of a call: "key = value", or just "value" when
// Key is empty.
type Option struct {
	Key   string
	Value Value
}

// Opt builds an Option.
func Opt(key string, v Value) Option {
	return Option{Key: key, Value: v}
}

func (o Option) String() string {
	if o.Key == "" {
		return o.Value.SCAD()
	}
	return o.Key + " = " + o.Value.SCAD()
}

// Args accumulates call arguments in order.
type Args struct {
	opts []Option
}

// Add appends a required argument.
func (a *Args) Add(key string, v Value) *Args {
	a.opts = append(a.opts, Opt(key, v))
	return a
}

// AddIf appends the argument only when ok is true.
func (a *Args) AddIf(ok bool, key string, v Value) *Args {
	if ok {
		a.opts = append(a.opts, Opt(key, v))
	}
	return a
}

// Options returns the collected arguments.
func (a *Args) Options() []Option {
	return a.opts
}

// Call writes the collected arguments as a call to name.
func (a *Args) Call(name string) string {
	return Call(name, a.opts...)
}

// Call renders "name(opt, opt, ...)". It produces the body string of a
// shape, without the trailing semicolon or block.
func Call(name string, opts ...Option) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// AddNumber appends key = *p when p is non-nil.
func (a *Args) AddNumber(key string, p *float64) *Args {
	if p != nil {
		a.Add(key, Number(*p))
	}
	return a
}

// AddInt appends key = *p when p is non-nil.
func (a *Args) AddInt(key string, p *uint64) *Args {
	if p != nil {
		a.Add(key, Int(*p))
	}
	return a
}

// AddBool appends key = *p when p is non-nil.
func (a *Args) AddBool(key string, p *bool) *Args {
	if p != nil {
		a.Add(key, Bool(*p))
	}
	return a
}

// AddString appends key = "s" when s is not empty.
func (a *Args) AddString(key, s string) *Args {
	if s != "" {
		a.Add(key, String(s))
	}
	return a
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T { return &v }
