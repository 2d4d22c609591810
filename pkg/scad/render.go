package scad

import (
	"io"
	"strings"
)

// Indent is the number of spaces added per nesting level.
const Indent = 2

// Render writes the tree rooted at n as OpenSCAD source. It is a pure
// function of the tree and cannot fail.
func Render(n *Node) string {
	body := renderBody(n)
	if n.commented {
		return "/* " + n.comment + " */\n" + body
	}
	return body
}

func renderBody(n *Node) string {
	switch b := n.body.(type) {
	case Primitive:
		return b.Leaf.Body() + ";\n"

	case Modifier:
		child := Render(b.child)
		if strings.HasPrefix(child, "{") {
			// The child is a bare block and already closes its own brace.
			return b.Leaf.Body() + " " + child
		}
		return b.Leaf.Body() + "\n" + indent(child, Indent)

	case Block:
		var sb strings.Builder
		for _, o := range b.objects {
			sb.WriteString(Render(o))
		}
		return "{\n" + indent(sb.String(), Indent) + "}\n"
	}
	return ""
}

// indent prefixes every line of s with n spaces. The empty segment after
// a terminal newline is left alone so repeated wrapping stays stable.
func indent(s string, n int) string {
	if s == "" {
		return ""
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	last := len(lines) - 1
	for i, l := range lines {
		if i == last && l == "" {
			break
		}
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// String renders the node; see Render.
func (n *Node) String() string {
	return Render(n)
}

// WriteTo writes the rendered node to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	written, err := io.WriteString(w, Render(n))
	return int64(written), err
}
