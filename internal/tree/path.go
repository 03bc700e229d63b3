package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is the index path from the forest root to a node: [0 2 1] is the
// second child of the third child of the first top-level node.
type Path []int

// String renders the path as slash-separated indexes ("0/2/1").
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// Child returns a new path addressing the idx-th child of p.
func (p Path) Child(idx int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = idx
	return child
}

// Parent returns the path of p's parent, or nil for a top-level node.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return append(Path(nil), p[:len(p)-1]...)
}

// Depth returns the zero-based level of the addressed node.
func (p Path) Depth() int {
	return len(p) - 1
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether p is a strict prefix of other.
func (p Path) IsAncestorOf(other Path) bool {
	return len(p) < len(other) && p.Equal(other[:len(p)])
}

// ParsePath parses the String form of a path.
func ParsePath(s string) (Path, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	fields := strings.Split(s, "/")
	p := make(Path, len(fields))
	for i, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid path segment %q in %q", f, s)
		}
		p[i] = idx
	}
	return p, nil
}
