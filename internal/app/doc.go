// Package app provides the main Bubble Tea application model for arbor.
//
// Model holds the loaded menu forest, a tree.Renderer with the expand
// state of every node, and the cursor over the visible rows. Activating
// a row (enter, space or a mouse click on its label) toggles that node.
// Activating a leaf selects it and, by default, quits so the caller can
// print the selection.
//
// The package implements three states: the tree list, a fuzzy filter
// over every node regardless of expand state, and a help screen.
package app
