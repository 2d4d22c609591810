package scene

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chazu/scadtree/pkg/scad"
	"github.com/chazu/scadtree/pkg/value"
)

// ErrDuplicateName is returned by Define when a name is already taken.
var ErrDuplicateName = errors.New("scene: duplicate name")

// Defaults are the special variables assigned at the top of the file.
// Nil fields are left to OpenSCAD.
type Defaults struct {
	Fa *float64 `yaml:"fa,omitempty"` // minimum fragment angle, degrees
	Fn *uint64  `yaml:"fn,omitempty"` // fixed fragment count
	Fs *float64 `yaml:"fs,omitempty"` // minimum fragment size, mm
}

// IsZero reports whether no default is set.
func (d Defaults) IsZero() bool {
	return d.Fa == nil && d.Fn == nil && d.Fs == nil
}

// Merge returns d with every field that is set in o replaced by o's value.
func (d Defaults) Merge(o Defaults) Defaults {
	if o.Fa != nil {
		d.Fa = o.Fa
	}
	if o.Fn != nil {
		d.Fn = o.Fn
	}
	if o.Fs != nil {
		d.Fs = o.Fs
	}
	return d
}

// Header renders one assignment per set default, in $fa, $fn, $fs order.
func (d Defaults) Header() string {
	var sb strings.Builder
	if d.Fa != nil {
		sb.WriteString("$fa = " + value.Number(*d.Fa).SCAD() + ";\n")
	}
	if d.Fn != nil {
		sb.WriteString("$fn = " + value.Int(*d.Fn).SCAD() + ";\n")
	}
	if d.Fs != nil {
		sb.WriteString("$fs = " + value.Number(*d.Fs).SCAD() + ";\n")
	}
	return sb.String()
}

// Scene is the result of evaluating one script.
type Scene struct {
	Roots     []*scad.Node
	NameIndex map[string]*scad.Node
	Defaults  Defaults
	Version   uint64
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		NameIndex: make(map[string]*scad.Node),
	}
}

// AddRoot appends n to the top-level objects of the file.
func (s *Scene) AddRoot(n *scad.Node) {
	s.Roots = append(s.Roots, n)
}

// Define binds name to n. Names are unique within a scene.
func (s *Scene) Define(name string, n *scad.Node) error {
	if _, ok := s.NameIndex[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	s.NameIndex[name] = n
	return nil
}

// Lookup returns the node bound to name, or nil.
func (s *Scene) Lookup(name string) *scad.Node {
	return s.NameIndex[name]
}

// MustLookup returns the node bound to name, or panics.
func (s *Scene) MustLookup(name string) *scad.Node {
	n := s.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scene: no node named %q", name))
	}
	return n
}

// Names returns the defined names in sorted order.
func (s *Scene) Names() []string {
	names := make([]string, 0, len(s.NameIndex))
	for name := range s.NameIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NodeCount returns the number of distinct nodes reachable from the roots.
// A subtree shared by several parents counts once.
func (s *Scene) NodeCount() int {
	return len(s.reachable())
}

func (s *Scene) reachable() map[*scad.Node]bool {
	seen := make(map[*scad.Node]bool)
	for _, r := range s.Roots {
		scad.Walk(r, func(n *scad.Node) bool {
			if seen[n] {
				return false
			}
			seen[n] = true
			return true
		})
	}
	return seen
}

// Render returns the whole file: the defaults header, a blank line when
// there is a header, then every root in order.
func (s *Scene) Render() string {
	var sb strings.Builder
	if h := s.Defaults.Header(); h != "" {
		sb.WriteString(h)
		sb.WriteString("\n")
	}
	for _, r := range s.Roots {
		sb.WriteString(scad.Render(r))
	}
	return sb.String()
}

// WriteTo writes the rendered file to w.
func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.Render())
	return int64(n), err
}
