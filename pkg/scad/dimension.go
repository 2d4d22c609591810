package scad

import "fmt"

// Dimension classifies a node as 2D, 3D or dimension-agnostic.
type Dimension int

const (
	TwoD   Dimension = iota // planar shapes and their modifiers
	ThreeD                  // solids and their modifiers
	Mixed                   // statements valid in either context
)

func (d Dimension) String() string {
	switch d {
	case TwoD:
		return "2D"
	case ThreeD:
		return "3D"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}
