package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/scadtree/pkg/scad"
)

// ErrNoChildren is returned by Apply when a modifier is given nothing to
// modify.
var ErrNoChildren = errors.New("modifier has no children")

// Shape is a primitive sentence with a fixed dimension.
type Shape interface {
	scad.Leaf
	Dimension() scad.Dimension
	Validate() error
}

// Modifiers that implement Dimension() produce that dimension; the rest
// inherit the dimension of their children.
type dimensioned interface {
	Dimension() scad.Dimension
}

type validator interface {
	Validate() error
}

// ValidationError reports a field of a sentence that OpenSCAD would
// reject or silently misinterpret.
type ValidationError struct {
	Shape   string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Shape + ": " + e.Message
	}
	return e.Shape + ": " + e.Field + ": " + e.Message
}

func invalid(shape, field, format string, args ...any) error {
	return &ValidationError{Shape: shape, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Primitive validates s and wraps it in a node of its declared dimension.
func Primitive(s Shape) (*scad.Node, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return scad.NewPrimitive(s, s.Dimension()), nil
}

// MustPrimitive is like Primitive but panics on error.
func MustPrimitive(s Shape) *scad.Node {
	n, err := Primitive(s)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// Apply validates m, when it can be validated, and attaches children to
// it. A single child is attached directly; several are collected into a
// block first. Any scad.Leaf works, including scad.Union and friends.
func Apply(m scad.Leaf, children ...*scad.Node) (*scad.Node, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Body(), ErrNoChildren)
	}
	if v, ok := m.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	var dim scad.Dimension
	if d, ok := m.(dimensioned); ok {
		dim = d.Dimension()
	} else {
		dim = children[0].Dimension()
	}
	want := dim
	if b, ok := m.(scad.Bridge); ok {
		want = b.ChildDimension()
	}

	child := children[0]
	if len(children) > 1 {
		block, err := scad.NewBlock(want, children...)
		if err != nil {
			return nil, err
		}
		child = block
	}
	return scad.NewModifier(m, dim, child)
}

// MustApply is like Apply but panics on error.
func MustApply(m scad.Leaf, children ...*scad.Node) *scad.Node {
	n, err := Apply(m, children...)
	if err != nil {
		panic(err.Error())
	}
	return n
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func checkPositive(shape, field string, x float64) error {
	if !finite(x) || x <= 0 {
		return invalid(shape, field, "must be positive, got %v", x)
	}
	return nil
}

func checkNonNegative(shape, field string, x float64) error {
	if !finite(x) || x < 0 {
		return invalid(shape, field, "must not be negative, got %v", x)
	}
	return nil
}

// checkResolution validates the $fa and $fs special variables shared by
// curved sentences.
func checkResolution(shape string, fa, fs *float64) error {
	if fa != nil {
		if err := checkPositive(shape, "$fa", *fa); err != nil {
			return err
		}
	}
	if fs != nil {
		if err := checkPositive(shape, "$fs", *fs); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(shape, field, v string, allowed ...string) error {
	if v == "" {
		return nil
	}
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return invalid(shape, field, "%q is not one of %q", v, allowed)
}
