// Package ui provides rendering functions for the arbor terminal UI.
//
// Render takes RenderParams and produces the full screen. TreeLines
// renders just the tree rows and is shared with the non-interactive
// print command. Rendering is pure; all state lives in package app.
package ui
