// Package scene collects the output of one script evaluation: the root
// nodes written to the .scad file, the named nodes a script defined, and
// the global $fn/$fa/$fs defaults emitted ahead of the roots.
// A Scene is built once per evaluation and then only read.
package scene
