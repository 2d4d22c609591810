package scad

// Leaf is the contract every shape sentence satisfies: it knows its own
// body, the call-with-arguments text without a trailing semicolon or block
// (for example "circle(r = 3)").
type Leaf interface {
	Body() string
}

// Bridge is implemented by modifier leaves whose child has a different
// dimension than the modifier itself, such as linear_extrude (2D child,
// 3D result) or projection (3D child, 2D result).
type Bridge interface {
	Leaf
	ChildDimension() Dimension
}

// Raw is a pre-formatted body string.
type Raw string

func (r Raw) Body() string { return string(r) }

// NodeKind enumerates the node variants.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // terminal statement
	NodeModifier                  // body with exactly one child
	NodeBlock                     // braced sequence of siblings
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeModifier:
		return "modifier"
	case NodeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// nodeBody is the variant payload of a Node.
type nodeBody interface {
	kind() NodeKind
}

// Primitive is a terminal statement such as "cube(size = 10);".
type Primitive struct {
	Leaf Leaf
}

func (Primitive) kind() NodeKind { return NodePrimitive }

// Modifier applies its body to exactly one child.
type Modifier struct {
	Leaf     Leaf
	child    *Node
	childDim Dimension
}

func (Modifier) kind() NodeKind { return NodeModifier }

// Block is an ordered list of siblings sharing one dimension.
type Block struct {
	objects []*Node
}

func (Block) kind() NodeKind { return NodeBlock }

// Node is the unit hosts build trees from. The zero value is not usable;
// construct nodes with NewPrimitive, NewModifier or NewBlock.
type Node struct {
	dim       Dimension
	body      nodeBody
	comment   string
	commented bool
}

// NewPrimitive wraps a leaf as a primitive of the given dimension.
func NewPrimitive(leaf Leaf, dim Dimension) *Node {
	return &Node{dim: dim, body: Primitive{Leaf: leaf}}
}

// expectedChild returns the child dimension a modifier leaf accepts when
// the modifier itself is dim.
func expectedChild(leaf Leaf, dim Dimension) Dimension {
	if b, ok := leaf.(Bridge); ok {
		return b.ChildDimension()
	}
	return dim
}

// NewModifier applies leaf to child, producing a node of dimension dim.
// The child must have the expected child dimension: dim itself, or the
// leaf's ChildDimension when it is a Bridge.
func NewModifier(leaf Leaf, dim Dimension, child *Node) (*Node, error) {
	want := expectedChild(leaf, dim)
	if child.Dimension() != want {
		return nil, &DimensionMismatchError{Want: want, Got: child.Dimension(), Index: -1}
	}
	return &Node{dim: dim, body: Modifier{Leaf: leaf, child: child, childDim: want}}, nil
}

// MustModifier is like NewModifier but panics on a dimension mismatch.
func MustModifier(leaf Leaf, dim Dimension, child *Node) *Node {
	n, err := NewModifier(leaf, dim, child)
	if err != nil {
		panic("scad: " + err.Error())
	}
	return n
}

// NewBlock groups objects into a block of dimension dim. Every object
// must have that dimension.
func NewBlock(dim Dimension, objects ...*Node) (*Node, error) {
	for i, o := range objects {
		if o.Dimension() != dim {
			return nil, &DimensionMismatchError{Want: dim, Got: o.Dimension(), Index: i}
		}
	}
	objs := make([]*Node, len(objects))
	copy(objs, objects)
	return &Node{dim: dim, body: Block{objects: objs}}, nil
}

// MustBlock is like NewBlock but panics on a dimension mismatch.
func MustBlock(dim Dimension, objects ...*Node) *Node {
	n, err := NewBlock(dim, objects...)
	if err != nil {
		panic("scad: " + err.Error())
	}
	return n
}

// Dimension returns the node's dimension tag.
func (n *Node) Dimension() Dimension {
	return n.dim
}

// Kind returns which variant the node holds.
func (n *Node) Kind() NodeKind {
	return n.body.kind()
}

// Leaf returns the shape sentence of a primitive or modifier, nil for a block.
func (n *Node) Leaf() Leaf {
	switch b := n.body.(type) {
	case Primitive:
		return b.Leaf
	case Modifier:
		return b.Leaf
	}
	return nil
}

// Body returns the leaf's body string, or "" for a block.
func (n *Node) Body() string {
	if l := n.Leaf(); l != nil {
		return l.Body()
	}
	return ""
}

// Child returns a modifier's child, nil for other kinds.
func (n *Node) Child() *Node {
	if m, ok := n.body.(Modifier); ok {
		return m.child
	}
	return nil
}

// ChildDimension returns the dimension a modifier accepts as its child.
// For non-modifiers it is the node's own dimension.
func (n *Node) ChildDimension() Dimension {
	if m, ok := n.body.(Modifier); ok {
		return m.childDim
	}
	return n.dim
}

// Children returns the direct children: the block elements, the single
// modifier child, or nothing for a primitive. The slice is a copy.
func (n *Node) Children() []*Node {
	switch b := n.body.(type) {
	case Modifier:
		return []*Node{b.child}
	case Block:
		out := make([]*Node, len(b.objects))
		copy(out, b.objects)
		return out
	}
	return nil
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	switch b := n.body.(type) {
	case Modifier:
		return 1
	case Block:
		return len(b.objects)
	}
	return 0
}

// Comment returns the node's comment and whether it has one.
func (n *Node) Comment() (string, bool) {
	return n.comment, n.commented
}

// SetComment replaces the node's comment in place.
func (n *Node) SetComment(text string) {
	n.comment = text
	n.commented = true
}

// ClearComment removes the node's comment.
func (n *Node) ClearComment() {
	n.comment = ""
	n.commented = false
}

// WithComment returns a copy of n carrying text as its comment. n itself,
// which other parents may share, is left untouched.
func (n *Node) WithComment(text string) *Node {
	c := *n
	c.SetComment(text)
	return &c
}

// SetChild replaces a modifier's child. The replacement must have the
// modifier's expected child dimension and must not contain n. Only this
// node's reference changes; other parents of the old child are unaffected.
func (n *Node) SetChild(child *Node) error {
	m, ok := n.body.(Modifier)
	if !ok {
		return ErrNotModifier
	}
	if child.Dimension() != m.childDim {
		return &DimensionMismatchError{Want: m.childDim, Got: child.Dimension(), Index: -1}
	}
	if reaches(child, n) {
		return ErrCycle
	}
	m.child = child
	n.body = m
	return nil
}

// reaches reports whether target is from or one of its descendants.
// Shared subtrees are visited once.
func reaches(from, target *Node) bool {
	seen := make(map[*Node]bool)
	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		if n == target {
			return true
		}
		if seen[n] {
			return false
		}
		seen[n] = true
		switch b := n.body.(type) {
		case Modifier:
			return visit(b.child)
		case Block:
			for _, o := range b.objects {
				if visit(o) {
					return true
				}
			}
		}
		return false
	}
	return visit(from)
}

// Walk calls fn for n and every descendant in depth-first pre-order.
// Returning false from fn skips that node's children. A subtree shared by
// several parents is visited once per parent.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	switch b := n.body.(type) {
	case Modifier:
		Walk(b.child, fn)
	case Block:
		for _, o := range b.objects {
			Walk(o, fn)
		}
	}
}
