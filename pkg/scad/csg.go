package scad

import "fmt"

// Union is the union() modifier leaf.
type Union struct{}

func (Union) Body() string { return "union()" }

// Difference is the difference() modifier leaf. Its first child is the
// minuend; every following child is subtracted from it.
type Difference struct{}

func (Difference) Body() string { return "difference()" }

// Intersection is the intersection() modifier leaf.
type Intersection struct{}

func (Intersection) Body() string { return "intersection()" }

// Operator is a boolean CSG operation.
type Operator int

const (
	OpUnion        Operator = iota // a + b
	OpDifference                   // a - b
	OpIntersection                 // a * b
)

func (op Operator) String() string {
	switch op {
	case OpUnion:
		return "+"
	case OpDifference:
		return "-"
	case OpIntersection:
		return "*"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// Leaf returns the modifier leaf the operator builds.
func (op Operator) Leaf() Leaf {
	switch op {
	case OpDifference:
		return Difference{}
	case OpIntersection:
		return Intersection{}
	default:
		return Union{}
	}
}

// commutative operators may splice their right operand too.
func (op Operator) commutative() bool {
	return op != OpDifference
}

// OperatorOf reports which CSG operator a node applies, if it is an
// operator modifier.
func OperatorOf(n *Node) (Operator, bool) {
	m, ok := n.body.(Modifier)
	if !ok {
		return 0, false
	}
	switch m.Leaf.(type) {
	case Union, *Union:
		return OpUnion, true
	case Difference, *Difference:
		return OpDifference, true
	case Intersection, *Intersection:
		return OpIntersection, true
	}
	return 0, false
}

// Combine applies op to a and b. Both operands must share one dimension
// and neither may be Mixed. Operands that already apply op are spliced
// one level deep instead of nested: both sides for union and
// intersection, only the left side for difference. Commented operands are
// kept whole so their comments survive.
func Combine(op Operator, a, b *Node) (*Node, error) {
	if a.Dimension() != b.Dimension() || a.Dimension() == Mixed {
		return nil, &DimensionMismatchError{Op: op.String(), Want: a.Dimension(), Got: b.Dimension(), Index: -1}
	}
	dim := a.Dimension()

	objects := flatten(op, a, nil)
	if op.commutative() {
		objects = flatten(op, b, objects)
	} else {
		objects = append(objects, b)
	}

	block, err := NewBlock(dim, objects...)
	if err != nil {
		return nil, fmt.Errorf("scad: combine %s: %w", op, err)
	}
	n, err := NewModifier(op.Leaf(), dim, block)
	if err != nil {
		return nil, fmt.Errorf("scad: combine %s: %w", op, err)
	}
	return n, nil
}

// flatten appends n's contribution to an op chain onto dst.
func flatten(op Operator, n *Node, dst []*Node) []*Node {
	if n.commented {
		return append(dst, n)
	}
	if got, ok := OperatorOf(n); !ok || got != op {
		return append(dst, n)
	}
	child := n.Child()
	if bl, ok := child.body.(Block); ok && !child.commented {
		return append(dst, bl.objects...)
	}
	return append(dst, child)
}

func mustCombine(op Operator, a, b *Node) *Node {
	n, err := Combine(op, a, b)
	if err != nil {
		panic("scad: " + err.Error())
	}
	return n
}

// Add returns the union of a and b. It panics if the operands have
// different dimensions or are Mixed.
func Add(a, b *Node) *Node { return mustCombine(OpUnion, a, b) }

// Sub returns b subtracted from a. It panics like Add.
func Sub(a, b *Node) *Node { return mustCombine(OpDifference, a, b) }

// Mul returns the intersection of a and b. It panics like Add.
func Mul(a, b *Node) *Node { return mustCombine(OpIntersection, a, b) }

// Add is n + o; see the package-level Add.
func (n *Node) Add(o *Node) *Node { return Add(n, o) }

// Sub is n - o; see the package-level Sub.
func (n *Node) Sub(o *Node) *Node { return Sub(n, o) }

// Mul is n * o; see the package-level Mul.
func (n *Node) Mul(o *Node) *Node { return Mul(n, o) }

// UnionOf folds nodes with Add, left to right. It returns an error
// instead of panicking. An empty list yields nil and a single node is
// returned unwrapped.
func UnionOf(nodes ...*Node) (*Node, error) {
	return fold(OpUnion, nodes)
}

// DifferenceOf subtracts every following node from the first.
func DifferenceOf(nodes ...*Node) (*Node, error) {
	return fold(OpDifference, nodes)
}

// IntersectionOf folds nodes with Mul, left to right.
func IntersectionOf(nodes ...*Node) (*Node, error) {
	return fold(OpIntersection, nodes)
}

func fold(op Operator, nodes []*Node) (*Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		next, err := Combine(op, acc, n)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}
