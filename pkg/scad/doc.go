// Package scad defines the dimension-typed OpenSCAD object tree and its
// renderer. A tree is built from primitives, modifiers (one child) and
// blocks (ordered siblings); every node carries a 2D, 3D or mixed tag that
// is checked whenever nodes are composed. Trees are immutable once built
// and may share subtrees.
package scad
