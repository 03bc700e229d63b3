// Package tree turns a menu forest into the rows of a collapsible tree view.
//
// A Renderer owns the expand/collapse flag of every node, keyed by the
// node's index Path. Every node starts collapsed. Rows walks the forest
// depth first and descends into a node's children only while that node
// is expanded, so the returned rows are exactly what a tree view shows.
//
// Toggling a node changes that node's flag and nothing else. Collapsing a
// parent hides its subtree but keeps the flags inside it, so expanding the
// parent again restores the same view. WithResetOnCollapse changes that to
// forget the subtree's flags instead.
package tree
