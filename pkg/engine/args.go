package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/scadtree/pkg/scad"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNode wraps a scad node so it can be passed between builtins and
// bound to script variables.
type sexpNode struct {
	node *scad.Node
}

func (n *sexpNode) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(scad %s %s %q)", n.node.Dimension(), n.node.Kind(), n.node.Body())
}
func (n *sexpNode) Type() *zygo.RegisteredType { return nil }

// sexpVec wraps a 2, 3 or 4 component vector built with (vec ...).
type sexpVec struct {
	v []float64
}

func (v *sexpVec) SexpString(ps *zygo.PrintState) string {
	parts := make([]string, len(v.v))
	for i, x := range v.v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "(vec " + strings.Join(parts, " ") + ")"
}
func (v *sexpVec) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// num returns the keyword value as a float64 pointer, nil if absent.
func (a kwArgs) num(key string) (*float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return nil, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &f, nil
}

// count returns the keyword value as a uint64 pointer, nil if absent.
func (a kwArgs) count(key string) (*uint64, error) {
	v, ok := a.kw[key]
	if !ok {
		return nil, nil
	}
	n, err := toUint64(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &n, nil
}

// flag returns the keyword value as a bool pointer, nil if absent. A
// trailing keyword with no value counts as true.
func (a kwArgs) flag(key string) (*bool, error) {
	v, ok := a.kw[key]
	if !ok {
		return nil, nil
	}
	if v == zygo.SexpNull {
		t := true
		return &t, nil
	}
	b, err := toBool(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &b, nil
}

// text returns the keyword value as a string, empty if absent. Keywords
// are accepted as values too, so :halign :center works.
func (a kwArgs) text(key string) (string, error) {
	v, ok := a.kw[key]
	if !ok {
		return "", nil
	}
	s, err := toKeywordString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

// resolution reads the :fa, :fs and :fn keywords shared by curved shapes.
func (a kwArgs) resolution() (fa, fs *float64, fn *uint64, err error) {
	if fa, err = a.num("fa"); err != nil {
		return
	}
	if fs, err = a.num("fs"); err != nil {
		return
	}
	fn, err = a.count("fn")
	return
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toUint64 extracts a non-negative integer from a Sexp.
func toUint64(s zygo.Sexp) (uint64, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
	}
	if v.Val < 0 {
		return 0, fmt.Errorf("expected non-negative integer, got %d", v.Val)
	}
	return uint64(v.Val), nil
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec extracts the components of a (vec ...) value or a literal
// [x y z] array of numbers.
func toVec(s zygo.Sexp) ([]float64, error) {
	if v, ok := s.(*sexpVec); ok {
		return v.v, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected vector, got %T (%s)", s, s.SexpString(nil))
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("vector component %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// toVecN is toVec with a fixed component count.
func toVecN(s zygo.Sexp, n int) ([]float64, error) {
	v, err := toVec(s)
	if err != nil {
		return nil, err
	}
	if len(v) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(v))
	}
	return v, nil
}

// toIndices extracts a list of lists of integers, as used for polygon
// paths and polyhedron faces.
func toIndices(s zygo.Sexp) ([][]int, error) {
	groups, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(groups))
	for i, g := range groups {
		items, err := sexpListToSlice(g)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		idx := make([]int, len(items))
		for j, item := range items {
			n, err := toUint64(item)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			idx[j] = int(n)
		}
		out[i] = idx
	}
	return out, nil
}

// toNode extracts a scad node from a Sexp.
func toNode(s zygo.Sexp) (*scad.Node, error) {
	if n, ok := s.(*sexpNode); ok {
		return n.node, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toNodes extracts nodes from args, splicing in lists and arrays of
// nodes so (union parts) works on a collected list.
func toNodes(args []zygo.Sexp) ([]*scad.Node, error) {
	var out []*scad.Node
	for i, a := range args {
		if n, ok := a.(*sexpNode); ok {
			out = append(out, n.node)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("child %d: expected shape, got %T (%s)", i, a, a.SexpString(nil))
		}
		inner, err := toNodes(items)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		out = append(out, inner...)
	}
	return out, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}
