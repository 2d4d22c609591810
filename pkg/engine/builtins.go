package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/scene"
	"github.com/chazu/scadtree/pkg/shape"
	"github.com/chazu/scadtree/pkg/value"
	zygo "github.com/glycerine/zygomys/zygo"
)

// builtins holds the scene a script populates and the errors its
// builtins reported.
type builtins struct {
	scene *scene.Scene
	errs  []EvalError
}

// scriptName turns a registered name back into the spelling scripts use.
func scriptName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// fail records err against the builtin and hands it back to zygomys so
// evaluation stops. Validation errors already name their shape.
func (b *builtins) fail(name string, err error) (zygo.Sexp, error) {
	var ve *shape.ValidationError
	if !errors.As(err, &ve) {
		err = fmt.Errorf("%s: %w", scriptName(name), err)
	}
	b.errs = append(b.errs, EvalError{Message: err.Error()})
	return zygo.SexpNull, err
}

// shapeFunc builds a node from parsed arguments.
type shapeFunc func(pa kwArgs) (*scad.Node, error)

// node registers a builtin that returns a scad node.
func (b *builtins) node(env *zygo.Zlisp, name string, fn shapeFunc) {
	env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		n, err := fn(parseArgs(args))
		if err != nil {
			return b.fail(name, err)
		}
		return &sexpNode{node: n}, nil
	})
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// register installs all scene builtins into a zygomys environment.
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens and kebab-case names line up with
// the registered names.
func (b *builtins) register(env *zygo.Zlisp) {
	// 2D primitives
	b.node(env, "circle", circleBuiltin)
	b.node(env, "square", squareBuiltin)
	b.node(env, "polygon", polygonBuiltin)
	b.node(env, "text", textBuiltin)

	// 3D primitives
	b.node(env, "cube", cubeBuiltin)
	b.node(env, "sphere", sphereBuiltin)
	b.node(env, "cylinder", cylinderBuiltin)

	// Transforms; 2D or 3D follows the children.
	b.node(env, "translate", translateBuiltin)
	b.node(env, "rotate", rotateBuiltin)
	b.node(env, "scale", scaleBuiltin)
	b.node(env, "mirror", mirrorBuiltin)
	b.node(env, "offset", offsetBuiltin)
	b.node(env, "color", colorBuiltin)
	b.node(env, "hull", func(pa kwArgs) (*scad.Node, error) { return applyTo(shape.Hull{}, pa.positional) })
	b.node(env, "minkowski", func(pa kwArgs) (*scad.Node, error) { return applyTo(shape.Minkowski{}, pa.positional) })

	// Dimension bridges
	b.node(env, "linear_extrude", linearExtrudeBuiltin)
	b.node(env, "rotate_extrude", rotateExtrudeBuiltin)
	b.node(env, "projection", projectionBuiltin)

	// Boolean operations
	b.node(env, "union", csgBuiltin(scad.UnionOf))
	b.node(env, "difference", csgBuiltin(scad.DifferenceOf))
	b.node(env, "intersection", csgBuiltin(scad.IntersectionOf))

	// -----------------------------------------------------------------------
	// (comment "text" shape)
	// -----------------------------------------------------------------------
	b.node(env, "comment", func(pa kwArgs) (*scad.Node, error) {
		if len(pa.positional) != 2 {
			return nil, fmt.Errorf("requires a text and a shape")
		}
		text, err := toString(pa.positional[0])
		if err != nil {
			return nil, fmt.Errorf("text: %w", err)
		}
		n, err := toNode(pa.positional[1])
		if err != nil {
			return nil, err
		}
		return n.WithComment(text), nil
	})

	// -----------------------------------------------------------------------
	// (defshape "name" shape)
	// -----------------------------------------------------------------------
	b.node(env, "defshape", func(pa kwArgs) (*scad.Node, error) {
		if len(pa.positional) != 2 {
			return nil, fmt.Errorf("requires a name and a shape")
		}
		name, err := toString(pa.positional[0])
		if err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
		n, err := toNode(pa.positional[1])
		if err != nil {
			return nil, err
		}
		if err := b.scene.Define(name, n); err != nil {
			return nil, err
		}
		return n, nil
	})

	// -----------------------------------------------------------------------
	// (shape "name")
	// -----------------------------------------------------------------------
	b.node(env, "shape", func(pa kwArgs) (*scad.Node, error) {
		if len(pa.positional) != 1 {
			return nil, fmt.Errorf("requires a name argument")
		}
		name, err := toString(pa.positional[0])
		if err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
		n := b.scene.Lookup(name)
		if n == nil {
			return nil, fmt.Errorf("no shape named %q", name)
		}
		return n, nil
	})

	// -----------------------------------------------------------------------
	// (emit shape ...) adds top-level objects to the file.
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nodes, err := toNodes(args)
		if err != nil {
			return b.fail("emit", err)
		}
		for _, n := range nodes {
			b.scene.AddRoot(n)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (defaults :fn 64 :fa 12 :fs 2)
	// -----------------------------------------------------------------------
	env.AddFunction("defaults", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		fa, fs, fn, err := pa.resolution()
		if err != nil {
			return b.fail("defaults", err)
		}
		b.scene.Defaults = b.scene.Defaults.Merge(scene.Defaults{Fa: fa, Fn: fn, Fs: fs})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (vec 1 2) (vec 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 || len(args) > 4 {
			return b.fail("vec", fmt.Errorf("requires 2 to 4 components, got %d", len(args)))
		}
		v := make([]float64, len(args))
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return b.fail("vec", fmt.Errorf("component %d: %w", i, err))
			}
			v[i] = f
		}
		return &sexpVec{v: v}, nil
	})
}

// ---------------------------------------------------------------------------
// Shared argument shapes
// ---------------------------------------------------------------------------

// roundSize reads :r or :d, falling back to a leading positional radius.
func roundSize(pa kwArgs) (value.RoundSize, error) {
	r, hasR := pa.kw["r"]
	d, hasD := pa.kw["d"]
	switch {
	case hasR && hasD:
		return value.RoundSize{}, fmt.Errorf("give r or d, not both")
	case hasD:
		f, err := toFloat64(d)
		if err != nil {
			return value.RoundSize{}, fmt.Errorf("d: %w", err)
		}
		return value.Diameter(f), nil
	case hasR:
		f, err := toFloat64(r)
		if err != nil {
			return value.RoundSize{}, fmt.Errorf("r: %w", err)
		}
		return value.Radius(f), nil
	case len(pa.positional) > 0:
		f, err := toFloat64(pa.positional[0])
		if err != nil {
			return value.RoundSize{}, fmt.Errorf("r: %w", err)
		}
		return value.Radius(f), nil
	}
	return value.RoundSize{}, fmt.Errorf("requires r or d")
}

// sizeArg reads :size or the first positional argument as either a single
// number or a vector of n components.
func sizeArg(pa kwArgs, n int) (float64, []float64, error) {
	v, ok := pa.kw["size"]
	if !ok {
		if len(pa.positional) == 0 {
			return 0, nil, fmt.Errorf("requires a size")
		}
		v = pa.positional[0]
	}
	if f, err := toFloat64(v); err == nil {
		return f, nil, nil
	}
	vec, err := toVecN(v, n)
	if err != nil {
		return 0, nil, fmt.Errorf("size: %w", err)
	}
	return 0, vec, nil
}

// children reads the shapes following skip leading positional arguments.
func children(pa kwArgs, skip int) ([]*scad.Node, error) {
	if len(pa.positional) <= skip {
		return nil, shape.ErrNoChildren
	}
	return toNodes(pa.positional[skip:])
}

// childDimension is the dimension a transform should take from its
// children. Mixed children carry no geometry to transform.
func childDimension(nodes []*scad.Node) (scad.Dimension, error) {
	d := nodes[0].Dimension()
	if d == scad.Mixed {
		return d, fmt.Errorf("cannot transform a shape without geometry")
	}
	return d, nil
}

// applyTo attaches the shapes in args to m.
func applyTo(m scad.Leaf, args []zygo.Sexp) (*scad.Node, error) {
	if len(args) == 0 {
		return nil, shape.ErrNoChildren
	}
	nodes, err := toNodes(args)
	if err != nil {
		return nil, err
	}
	return shape.Apply(m, nodes...)
}

// vecArg reads :v or the first positional argument as a vector for a
// transform of dimension dim. 3D transforms accept 2D vectors, with z
// filled in.
func vecArg(pa kwArgs, dim scad.Dimension, z float64) (value.Vec3, error) {
	v, ok := pa.kw["v"]
	if !ok {
		v = pa.positional[0]
	}
	comps, err := toVec(v)
	if err != nil {
		return value.Vec3{}, err
	}
	switch {
	case len(comps) == 2:
		return value.V3(comps[0], comps[1], z), nil
	case len(comps) == 3 && dim == scad.ThreeD:
		return value.V3(comps[0], comps[1], comps[2]), nil
	}
	return value.Vec3{}, fmt.Errorf("expected a %d component vector, got %d", axes(dim), len(comps))
}

func axes(dim scad.Dimension) int {
	if dim == scad.TwoD {
		return 2
	}
	return 3
}

func xy(v value.Vec3) value.Vec2 { return value.V2(v.X, v.Y) }

// transform is the common shape of translate, scale and mirror: one vector,
// positional or :v, followed by the children.
func transform(pa kwArgs, z float64, build func(dim scad.Dimension, v value.Vec3) scad.Leaf) (*scad.Node, error) {
	skip := 1
	if _, ok := pa.kw["v"]; ok {
		skip = 0
	}
	nodes, err := children(pa, skip)
	if err != nil {
		return nil, err
	}
	dim, err := childDimension(nodes)
	if err != nil {
		return nil, err
	}
	v, err := vecArg(pa, dim, z)
	if err != nil {
		return nil, err
	}
	return shape.Apply(build(dim, v), nodes...)
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// (circle :r 3 :fn 32) or (circle 3)
func circleBuiltin(pa kwArgs) (*scad.Node, error) {
	size, err := roundSize(pa)
	if err != nil {
		return nil, err
	}
	fa, fs, fn, err := pa.resolution()
	if err != nil {
		return nil, err
	}
	return shape.Primitive(shape.Circle{Size: size, Fa: fa, Fs: fs, Fn: fn})
}

// (square 10 :center true) or (square (vec 10 20))
func squareBuiltin(pa kwArgs) (*scad.Node, error) {
	n, v, err := sizeArg(pa, 2)
	if err != nil {
		return nil, err
	}
	center, err := pa.flag("center")
	if err != nil {
		return nil, err
	}
	s := shape.Square{Size: n, Center: center}
	if v != nil {
		s.XY = &value.Vec2{X: v[0], Y: v[1]}
	}
	return shape.Primitive(s)
}

// (polygon :points [(vec 0 0) (vec 1 0) (vec 0 1)] :paths [[0 1 2]])
func polygonBuiltin(pa kwArgs) (*scad.Node, error) {
	raw, ok := pa.kw["points"]
	if !ok {
		return nil, fmt.Errorf("requires :points")
	}
	items, err := sexpListToSlice(raw)
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	p := shape.Polygon{}
	for i, item := range items {
		v, err := toVecN(item, 2)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		p.Points = append(p.Points, value.V2(v[0], v[1]))
	}
	if raw, ok := pa.kw["paths"]; ok {
		if p.Paths, err = toIndices(raw); err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}
	}
	if p.Convexity, err = pa.count("convexity"); err != nil {
		return nil, err
	}
	return shape.Primitive(p)
}

// (text "label" :size 5 :halign :center)
func textBuiltin(pa kwArgs) (*scad.Node, error) {
	if len(pa.positional) != 1 {
		return nil, fmt.Errorf("requires the text to write")
	}
	s, err := toString(pa.positional[0])
	if err != nil {
		return nil, err
	}
	t := shape.Text{Text: s}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"font", &t.Font}, {"halign", &t.HAlign}, {"valign", &t.VAlign},
		{"direction", &t.Direction}, {"language", &t.Language}, {"script", &t.Script},
	} {
		if *f.dst, err = pa.text(f.key); err != nil {
			return nil, err
		}
	}
	if t.Size, err = pa.num("size"); err != nil {
		return nil, err
	}
	if t.Spacing, err = pa.num("spacing"); err != nil {
		return nil, err
	}
	if t.Fn, err = pa.count("fn"); err != nil {
		return nil, err
	}
	return shape.Primitive(t)
}

// (cube 10 :center true) or (cube (vec 1 2 3))
func cubeBuiltin(pa kwArgs) (*scad.Node, error) {
	n, v, err := sizeArg(pa, 3)
	if err != nil {
		return nil, err
	}
	center, err := pa.flag("center")
	if err != nil {
		return nil, err
	}
	c := shape.Cube{Size: n, Center: center}
	if v != nil {
		c.XYZ = &value.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return shape.Primitive(c)
}

// (sphere :r 5) or (sphere 5)
func sphereBuiltin(pa kwArgs) (*scad.Node, error) {
	size, err := roundSize(pa)
	if err != nil {
		return nil, err
	}
	fa, fs, fn, err := pa.resolution()
	if err != nil {
		return nil, err
	}
	return shape.Primitive(shape.Sphere{Size: size, Fa: fa, Fs: fs, Fn: fn})
}

// (cylinder :h 10 :r 2), (cylinder 10 :d 4) or
// (cylinder :h 10 :r1 3 :r2 1 :center true)
func cylinderBuiltin(pa kwArgs) (*scad.Node, error) {
	h, err := pa.num("h")
	if err != nil {
		return nil, err
	}
	if h == nil && len(pa.positional) > 0 {
		f, err := toFloat64(pa.positional[0])
		if err != nil {
			return nil, fmt.Errorf("h: %w", err)
		}
		h = &f
	}
	if h == nil {
		return nil, fmt.Errorf("requires :h")
	}
	cb := shape.NewCylinder(*h)

	sized := false
	for _, keys := range [][2]string{{"r1", "r2"}, {"d1", "d2"}} {
		lo, err := pa.num(keys[0])
		if err != nil {
			return nil, err
		}
		hi, err := pa.num(keys[1])
		if err != nil {
			return nil, err
		}
		if lo == nil && hi == nil {
			continue
		}
		if lo == nil || hi == nil {
			return nil, fmt.Errorf("%s and %s must be given together", keys[0], keys[1])
		}
		if keys[0] == "r1" {
			cb.Cone(*lo, *hi)
		} else {
			cb.ConeD(*lo, *hi)
		}
		sized = true
	}
	_, hasR := pa.kw["r"]
	_, hasD := pa.kw["d"]
	if hasR || hasD || !sized {
		size, err := roundSize(kwArgs{kw: pa.kw})
		if err != nil {
			return nil, err
		}
		if size.Diameter {
			cb.D(size.Size)
		} else {
			cb.R(size.Size)
		}
	}

	center, err := pa.flag("center")
	if err != nil {
		return nil, err
	}
	if center != nil {
		cb.Center(*center)
	}
	fa, fs, fn, err := pa.resolution()
	if err != nil {
		return nil, err
	}
	if fa != nil {
		cb.Fa(*fa)
	}
	if fs != nil {
		cb.Fs(*fs)
	}
	if fn != nil {
		cb.Fn(*fn)
	}
	c, err := cb.Build()
	if err != nil {
		return nil, err
	}
	return shape.Primitive(c)
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// (translate (vec 8 4) child...)
func translateBuiltin(pa kwArgs) (*scad.Node, error) {
	return transform(pa, 0, func(dim scad.Dimension, v value.Vec3) scad.Leaf {
		if dim == scad.TwoD {
			return shape.Translate2D{V: xy(v)}
		}
		return shape.Translate3D{V: v}
	})
}

// (mirror (vec 1 0) child...)
func mirrorBuiltin(pa kwArgs) (*scad.Node, error) {
	return transform(pa, 0, func(dim scad.Dimension, v value.Vec3) scad.Leaf {
		if dim == scad.TwoD {
			return shape.Mirror2D{V: xy(v)}
		}
		return shape.Mirror3D{V: v}
	})
}

// (scale 2 child...) or (scale (vec 1 2 3) child...)
func scaleBuiltin(pa kwArgs) (*scad.Node, error) {
	if len(pa.positional) > 0 {
		if k, err := toFloat64(pa.positional[0]); err == nil {
			nodes, err := children(pa, 1)
			if err != nil {
				return nil, err
			}
			dim, err := childDimension(nodes)
			if err != nil {
				return nil, err
			}
			if dim == scad.TwoD {
				return shape.Apply(shape.Scale2D{V: value.V2(k, k)}, nodes...)
			}
			return shape.Apply(shape.Scale3D{V: value.V3(k, k, k)}, nodes...)
		}
	}
	return transform(pa, 1, func(dim scad.Dimension, v value.Vec3) scad.Leaf {
		if dim == scad.TwoD {
			return shape.Scale2D{V: xy(v)}
		}
		return shape.Scale3D{V: v}
	})
}

// (rotate 45 child...), (rotate (vec 0 90 0) child...) or
// (rotate 45 :axis (vec 1 1 0) child...)
func rotateBuiltin(pa kwArgs) (*scad.Node, error) {
	if len(pa.positional) == 0 {
		return nil, fmt.Errorf("requires an angle")
	}
	nodes, err := children(pa, 1)
	if err != nil {
		return nil, err
	}
	dim, err := childDimension(nodes)
	if err != nil {
		return nil, err
	}

	if a, err := toFloat64(pa.positional[0]); err == nil {
		angle := value.Deg(a)
		if dim == scad.TwoD {
			if _, ok := pa.kw["axis"]; ok {
				return nil, fmt.Errorf("axis: 2D rotation is always about z")
			}
			return shape.Apply(shape.Rotate2D{A: angle}, nodes...)
		}
		r := shape.Rotate3D{A: angle}
		if raw, ok := pa.kw["axis"]; ok {
			v, err := toVecN(raw, 3)
			if err != nil {
				return nil, fmt.Errorf("axis: %w", err)
			}
			r.Axis = &value.Vec3{X: v[0], Y: v[1], Z: v[2]}
		}
		return shape.Apply(r, nodes...)
	}

	if dim == scad.TwoD {
		return nil, fmt.Errorf("2D rotation takes a single angle")
	}
	v, err := toVecN(pa.positional[0], 3)
	if err != nil {
		return nil, err
	}
	return shape.Apply(shape.RotateXYZ(v[0], v[1], v[2]), nodes...)
}

// (offset :r 1 child...) or (offset :delta 2 :chamfer true child...)
func offsetBuiltin(pa kwArgs) (*scad.Node, error) {
	r, err := pa.num("r")
	if err != nil {
		return nil, err
	}
	delta, err := pa.num("delta")
	if err != nil {
		return nil, err
	}
	var o shape.Offset
	switch {
	case r != nil && delta != nil:
		return nil, fmt.Errorf("give r or delta, not both")
	case r != nil:
		o.Size = *r
	case delta != nil:
		o.Size, o.Delta = *delta, true
	default:
		return nil, fmt.Errorf("requires :r or :delta")
	}
	if o.Chamfer, err = pa.flag("chamfer"); err != nil {
		return nil, err
	}
	if o.Fa, o.Fs, o.Fn, err = pa.resolution(); err != nil {
		return nil, err
	}
	return applyTo(o, pa.positional)
}

// (color "red" child...), (color (vec 1 0 0) child...), with optional :alpha
func colorBuiltin(pa kwArgs) (*scad.Node, error) {
	if len(pa.positional) == 0 {
		return nil, fmt.Errorf("requires a color")
	}
	var c shape.Color
	if name, err := toKeywordString(pa.positional[0]); err == nil {
		c.C = value.Named(name)
	} else {
		v, err := toVec(pa.positional[0])
		if err != nil {
			return nil, err
		}
		switch len(v) {
		case 3:
			c.C = value.RGB(v[0], v[1], v[2])
		case 4:
			c.C = value.RGBA(v[0], v[1], v[2], v[3])
		default:
			return nil, fmt.Errorf("expected 3 or 4 components, got %d", len(v))
		}
	}
	var err error
	if c.Alpha, err = pa.num("alpha"); err != nil {
		return nil, err
	}
	return applyTo(c, pa.positional[1:])
}

// ---------------------------------------------------------------------------
// Bridges
// ---------------------------------------------------------------------------

// (linear-extrude :height 5 :twist 90 child...)
func linearExtrudeBuiltin(pa kwArgs) (*scad.Node, error) {
	h, err := pa.num("height")
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("requires :height")
	}
	l := shape.LinearExtrude{Height: *h}
	if l.Center, err = pa.flag("center"); err != nil {
		return nil, err
	}
	if l.Twist, err = pa.num("twist"); err != nil {
		return nil, err
	}
	if l.Scale, err = pa.num("scale"); err != nil {
		return nil, err
	}
	if l.Slices, err = pa.count("slices"); err != nil {
		return nil, err
	}
	if l.Convexity, err = pa.count("convexity"); err != nil {
		return nil, err
	}
	if l.Fn, err = pa.count("fn"); err != nil {
		return nil, err
	}
	return applyTo(l, pa.positional)
}

// (rotate-extrude :angle 180 child...)
func rotateExtrudeBuiltin(pa kwArgs) (*scad.Node, error) {
	var r shape.RotateExtrude
	var err error
	if r.Angle, err = pa.num("angle"); err != nil {
		return nil, err
	}
	if r.Start, err = pa.num("start"); err != nil {
		return nil, err
	}
	if r.Convexity, err = pa.count("convexity"); err != nil {
		return nil, err
	}
	if r.Fa, r.Fs, r.Fn, err = pa.resolution(); err != nil {
		return nil, err
	}
	return applyTo(r, pa.positional)
}

// (projection :cut true child...)
func projectionBuiltin(pa kwArgs) (*scad.Node, error) {
	cut, err := pa.flag("cut")
	if err != nil {
		return nil, err
	}
	return applyTo(shape.Projection{Cut: cut}, pa.positional)
}

// ---------------------------------------------------------------------------
// Boolean operations
// ---------------------------------------------------------------------------

// csgBuiltin folds the children with a CSG operator. A single child is
// returned unchanged.
func csgBuiltin(fold func(...*scad.Node) (*scad.Node, error)) shapeFunc {
	return func(pa kwArgs) (*scad.Node, error) {
		nodes, err := toNodes(pa.positional)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			return nil, shape.ErrNoChildren
		}
		return fold(nodes...)
	}
}
