// Package app contains the main application state and logic.
package app

import (
	"github.com/henri123lemoine/arbor/internal/menu"
)

// Message types for the bubbletea app.

// MenuLoadedMsg is sent when the menu source has been read.
type MenuLoadedMsg struct {
	Source string
	Forest menu.Forest
	Err    error
}

// LeafOpenedMsg is sent when the open command for a leaf has run.
type LeafOpenedMsg struct {
	Selection *Selection
	Err       error
}
