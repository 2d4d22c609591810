package scad

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is matched by every *DimensionMismatchError.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// ErrNotModifier is returned when a child is substituted on a node that
// is not a modifier.
var ErrNotModifier = errors.New("node is not a modifier")

// ErrCycle is returned when a child substitution would make a node its
// own descendant.
var ErrCycle = errors.New("substitution would create a cycle")

// DimensionMismatchError describes a composition whose dimensions do not
// line up. For CSG operators Op is the operator symbol and Want/Got are
// the left and right operand dimensions.
type DimensionMismatchError struct {
	Op    string    // "+", "-", "*" for operators; empty for constructors
	Want  Dimension // expected dimension (left operand for operators)
	Got   Dimension // actual dimension (right operand for operators)
	Index int       // offending block element, -1 when not a block
}

func (e *DimensionMismatchError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("`%s %s %s` is not allowed", e.Want, e.Op, e.Got)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("dimension mismatch: block element %d is %s, want %s", e.Index, e.Got, e.Want)
	}
	return fmt.Sprintf("dimension mismatch: child is %s, want %s", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrDimensionMismatch) hold.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
