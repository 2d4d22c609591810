// Package shape provides the OpenSCAD sentences that fill the leaves of a
// scad tree: primitives such as circle() and cube(), and modifiers such as
// translate(), color() and linear_extrude().
//
// Each sentence is a plain value. Primitive and Apply validate a sentence
// and wrap it in a scad.Node of the right dimension:
//
//	base := shape.MustPrimitive(shape.Square{Size: 10})
//	solid := shape.MustApply(shape.LinearExtrude{Height: 5}, base)
package shape
