// Package ui handles terminal UI rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors of a theme.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
}

// Palettes for dark and light terminals.
var (
	DarkPalette = Palette{
		Primary:   lipgloss.Color("4"),   // Blue
		Secondary: lipgloss.Color("8"),   // Gray
		Warning:   lipgloss.Color("3"),   // Yellow
		Danger:    lipgloss.Color("1"),   // Red
		Muted:     lipgloss.Color("245"), // Light gray
		Highlight: lipgloss.Color("6"),   // Cyan
		Text:      lipgloss.Color("252"), // Light text
	}

	LightPalette = Palette{
		Primary:   lipgloss.Color("4"),
		Secondary: lipgloss.Color("250"),
		Warning:   lipgloss.Color("130"),
		Danger:    lipgloss.Color("124"),
		Muted:     lipgloss.Color("242"),
		Highlight: lipgloss.Color("25"),
		Text:      lipgloss.Color("235"),
	}
)

// Styles
var (
	BoxStyle      lipgloss.Style
	HeaderStyle   lipgloss.Style
	SelectedStyle lipgloss.Style
	NormalStyle   lipgloss.Style
	BranchStyle   lipgloss.Style
	LeafStyle     lipgloss.Style
	MutedStyle    lipgloss.Style
	GuideStyle    lipgloss.Style
	HelpStyle     lipgloss.Style
	ErrorStyle    lipgloss.Style
	WarningStyle  lipgloss.Style
	DividerStyle  lipgloss.Style
)

func init() {
	applyPalette(DarkPalette)
}

// ApplyTheme switches the styles to the named theme.
// "auto" asks the terminal for its background color.
func ApplyTheme(theme string) {
	switch theme {
	case "light":
		applyPalette(LightPalette)
	case "dark":
		applyPalette(DarkPalette)
	default:
		if lipgloss.HasDarkBackground() {
			applyPalette(DarkPalette)
		} else {
			applyPalette(LightPalette)
		}
	}
}

func applyPalette(p Palette) {
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(1, 2)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Muted)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Highlight).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	// Nodes with children
	BranchStyle = lipgloss.NewStyle().
		Foreground(p.Primary)

	LeafStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	GuideStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Danger)

	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
}

// Symbols
const (
	SymbolCursor    = "›"
	SymbolCollapsed = "▸"
	SymbolExpanded  = "▾"
	SymbolLeaf      = "·"
	SymbolTruncated = "⋯"
	SymbolBranch    = "├─ "
	SymbolLastChild = "└─ "
	SymbolPipe      = "│  "
	SymbolTarget    = "→"
	SymbolDivider   = "─"
)
