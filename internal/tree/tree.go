package tree

import (
	"strings"

	"github.com/henri123lemoine/arbor/internal/menu"
)

// DefaultMaxDepth is the default number of levels a Renderer will show.
const DefaultMaxDepth = 64

// Row is one visible line of the tree.
type Row struct {
	Path        Path
	Depth       int
	Name        string
	To          string
	HasChildren bool
	ChildCount  int
	Expanded    bool

	// Truncated marks a node with children that sits at the depth bound
	// and therefore cannot expand.
	Truncated bool

	// IsLast is true for the last node among its siblings.
	IsLast bool

	// Guides holds IsLast for each ancestor, outermost first.
	Guides []bool
}

// Renderer tracks per-node expand state for one tree view.
// The zero value is not usable; call New.
type Renderer struct {
	expanded        map[string]bool
	maxDepth        int
	resetOnCollapse bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxDepth limits how many levels are shown. 0 means unlimited.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		if n < 0 {
			n = 0
		}
		r.maxDepth = n
	}
}

// WithResetOnCollapse makes collapsing a node forget the expand state of
// its descendants.
func WithResetOnCollapse(reset bool) Option {
	return func(r *Renderer) {
		r.resetOnCollapse = reset
	}
}

// New returns a Renderer with every node collapsed.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		expanded: make(map[string]bool),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// atBound reports whether children of a node at depth would exceed the bound.
func (r *Renderer) atBound(depth int) bool {
	return r.maxDepth > 0 && depth+1 >= r.maxDepth
}

// expandable returns whether the node at p exists, has children and is
// above the depth bound.
func (r *Renderer) expandable(forest menu.Forest, p Path) bool {
	node := forest.At(p)
	if node == nil || node.IsLeaf() {
		return false
	}
	return !r.atBound(p.Depth())
}

// Expanded reports the stored flag for the node at p.
func (r *Renderer) Expanded(p Path) bool {
	return r.expanded[p.String()]
}

// Toggle flips the expand flag of the node at p. Leaves, nodes at the
// depth bound and paths that address nothing are left alone; Toggle
// reports whether anything changed.
func (r *Renderer) Toggle(forest menu.Forest, p Path) bool {
	if !r.expandable(forest, p) {
		return false
	}
	if r.Expanded(p) {
		r.collapse(p)
	} else {
		r.expanded[p.String()] = true
	}
	return true
}

// Expand sets the node at p expanded. It reports whether the flag changed.
func (r *Renderer) Expand(forest menu.Forest, p Path) bool {
	if r.Expanded(p) || !r.expandable(forest, p) {
		return false
	}
	r.expanded[p.String()] = true
	return true
}

// Collapse clears the flag of the node at p. It reports whether the flag changed.
func (r *Renderer) Collapse(p Path) bool {
	if !r.Expanded(p) {
		return false
	}
	r.collapse(p)
	return true
}

func (r *Renderer) collapse(p Path) {
	key := p.String()
	delete(r.expanded, key)
	if !r.resetOnCollapse {
		return
	}
	prefix := key + "/"
	for k := range r.expanded {
		if strings.HasPrefix(k, prefix) {
			delete(r.expanded, k)
		}
	}
}

// CollapseAll returns every node to collapsed.
func (r *Renderer) CollapseAll() {
	r.expanded = make(map[string]bool)
}

// Revealable reports whether p addresses a node whose ancestors can all
// expand, so that Reveal can make it visible.
func (r *Renderer) Revealable(forest menu.Forest, p Path) bool {
	if forest.At(p) == nil {
		return false
	}
	for i := 1; i < len(p); i++ {
		if !r.expandable(forest, p[:i]) {
			return false
		}
	}
	return true
}

// Reveal expands every ancestor of p so that p becomes visible.
// If p is not revealable nothing changes and Reveal reports false.
func (r *Renderer) Reveal(forest menu.Forest, p Path) bool {
	if !r.Revealable(forest, p) {
		return false
	}
	for i := 1; i < len(p); i++ {
		r.expanded[p[:i].String()] = true
	}
	return true
}

// Rows returns the visible rows of forest in display order.
func (r *Renderer) Rows(forest menu.Forest) []Row {
	return r.appendRows(nil, forest, nil, nil)
}

// appendRows renders level and, for each expanded node, recurses into its
// children directly beneath it.
func (r *Renderer) appendRows(rows []Row, level []menu.Node, parent Path, guides []bool) []Row {
	for i, n := range level {
		p := parent.Child(i)
		depth := p.Depth()
		truncated := !n.IsLeaf() && r.atBound(depth)
		row := Row{
			Path:        p,
			Depth:       depth,
			Name:        n.Name,
			To:          n.To,
			HasChildren: !n.IsLeaf(),
			ChildCount:  len(n.Children),
			Expanded:    !n.IsLeaf() && !truncated && r.Expanded(p),
			Truncated:   truncated,
			IsLast:      i == len(level)-1,
			Guides:      guides,
		}
		rows = append(rows, row)

		if row.Expanded {
			childGuides := append(guides[:len(guides):len(guides)], row.IsLast)
			rows = r.appendRows(rows, n.Children, p, childGuides)
		}
	}
	return rows
}

// Labels returns the name of each row in order.
func Labels(rows []Row) []string {
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Name
	}
	return labels
}

// IndexOf returns the position of the row addressing p, or -1.
func IndexOf(rows []Row, p Path) int {
	for i, row := range rows {
		if row.Path.Equal(p) {
			return i
		}
	}
	return -1
}

// Walk calls fn for every node in forest, depth first, regardless of
// expand state. trail holds the names of the node's ancestors.
func Walk(forest menu.Forest, fn func(p Path, trail []string, n menu.Node)) {
	var walk func(level []menu.Node, parent Path, trail []string)
	walk = func(level []menu.Node, parent Path, trail []string) {
		for i, n := range level {
			p := parent.Child(i)
			fn(p, trail, n)
			walk(n.Children, p, append(trail[:len(trail):len(trail)], n.Name))
		}
	}
	walk(forest, nil, nil)
}
