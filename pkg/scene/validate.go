package scene

import (
	"fmt"

	"github.com/chazu/scadtree/pkg/scad"
)

// ValidationSeverity indicates whether a finding should stop the file
// from being written or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks output
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Root is the
// index of the root the finding belongs to, or -1 for scene-level
// findings.
type ValidationError struct {
	Root     int
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Root < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] root %d: %s", e.Severity, e.Root, e.Message)
}

// HasErrors reports whether any finding is error-severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks the scene for problems the node constructors cannot
// see. It never mutates the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDefaults(s)...)
	errs = append(errs, validateRoots(s)...)
	errs = append(errs, validateBlocks(s)...)
	errs = append(errs, validateNames(s)...)
	return errs
}

func validateDefaults(s *Scene) []ValidationError {
	var errs []ValidationError
	check := func(name string, p *float64) {
		if p != nil && *p <= 0 {
			errs = append(errs, ValidationError{
				Root:     -1,
				Message:  fmt.Sprintf("default %s must be positive, got %v", name, *p),
				Severity: SeverityError,
			})
		}
	}
	check("$fa", s.Defaults.Fa)
	check("$fs", s.Defaults.Fs)
	return errs
}

// validateRoots warns about roots that produce no geometry, roots listed
// twice, and files that mix 2D and 3D top-level objects.
func validateRoots(s *Scene) []ValidationError {
	var errs []ValidationError
	first := make(map[*scad.Node]int)
	dims := make(map[scad.Dimension]bool)

	for i, r := range s.Roots {
		if j, ok := first[r]; ok {
			errs = append(errs, ValidationError{
				Root:     i,
				Message:  fmt.Sprintf("same node as root %d", j),
				Severity: SeverityWarning,
			})
			continue
		}
		first[r] = i

		if r.Dimension() == scad.Mixed {
			errs = append(errs, ValidationError{
				Root:     i,
				Message:  "root has no geometry",
				Severity: SeverityWarning,
			})
			continue
		}
		dims[r.Dimension()] = true
	}

	if dims[scad.TwoD] && dims[scad.ThreeD] {
		errs = append(errs, ValidationError{
			Root:     -1,
			Message:  "scene mixes 2D and 3D roots",
			Severity: SeverityWarning,
		})
	}
	return errs
}

func validateBlocks(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[*scad.Node]bool)
	for i, r := range s.Roots {
		scad.Walk(r, func(n *scad.Node) bool {
			if seen[n] {
				return false
			}
			seen[n] = true
			if n.Kind() == scad.NodeBlock && n.Len() == 0 {
				errs = append(errs, ValidationError{
					Root:     i,
					Message:  "empty block",
					Severity: SeverityWarning,
				})
			}
			return true
		})
	}
	return errs
}

// validateNames warns about defined names that no root uses.
func validateNames(s *Scene) []ValidationError {
	if len(s.NameIndex) == 0 {
		return nil
	}
	reachable := s.reachable()
	var errs []ValidationError
	for _, name := range s.Names() {
		if !reachable[s.NameIndex[name]] {
			errs = append(errs, ValidationError{
				Root:     -1,
				Message:  fmt.Sprintf("%q is defined but not reachable from any root", name),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}
