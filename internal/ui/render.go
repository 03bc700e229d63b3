package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/arbor/internal/tree"
)

// State constants (matching app.State)
const (
	StateList = iota
	StateFilter
	StateHelp
)

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// Match is one filter result.
type Match struct {
	Path  tree.Path
	Label string // ancestor trail and name, joined with " › "
}

// TreeOptions controls how tree rows are drawn.
type TreeOptions struct {
	Styled      bool
	ShowGuides  bool
	ShowTargets bool
	ShowCounts  bool
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	State        int
	Source       string
	Rows         []tree.Row
	Cursor       int
	ViewOffset   int
	VisibleCount int
	Width        int
	Height       int
	Loading      bool
	Err          error
	Tree         TreeOptions
	FilterInput  string
	FilterValue  string
	Matches      []Match
	MatchCursor  int
	MatchOffset  int
	Suggestion   string
	HelpSections []HelpSection
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// Chrome is the number of screen lines used around the list:
// box border and padding (2+2), header, divider, footer divider and help.
const Chrome = 8

// Render renders the full UI.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	switch p.State {
	case StateFilter:
		return renderFilter(p)
	case StateHelp:
		return renderHelp(p)
	default:
		return renderList(p)
	}
}

// ListTop returns the screen line of the first visible tree row.
func ListTop(p RenderParams) int {
	// Border and top padding, then header and divider
	top := 2 + 2
	if p.Err != nil {
		top += 2
	}
	if visibleRange(p.ViewOffset, p.VisibleCount, len(p.Rows)).start > 0 {
		top++
	}
	return top
}

// RowAt maps a screen line to the index of the tree row drawn there,
// or -1 when the line holds no row.
func RowAt(p RenderParams, y int) int {
	if p.Loading || len(p.Rows) == 0 {
		return -1
	}
	r := visibleRange(p.ViewOffset, p.VisibleCount, len(p.Rows))
	idx := r.start + (y - ListTop(p))
	if idx < r.start || idx >= r.end {
		return -1
	}
	return idx
}

type span struct{ start, end int }

// visibleRange clamps a scroll window to n items.
func visibleRange(offset, count, n int) span {
	if count <= 0 {
		count = n
	}
	start := offset
	if start >= n || start < 0 {
		start = 0
	}
	end := start + count
	if end > n {
		end = n
	}
	return span{start, end}
}

// renderList renders the tree view.
func renderList(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4 // Account for box borders and padding

	header := HeaderStyle.Render("MENU") + "  " + MutedStyle.Render(p.Source)
	b.WriteString(header + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n")

	if p.Err != nil {
		b.WriteString(ErrorStyle.Render("Error: "+oneLine(p.Err.Error())) + "\n\n")
	}

	if p.Loading {
		b.WriteString("\n" + MutedStyle.Render("Loading menu...") + "\n")
		return wrapInBox(b.String(), p.Width)
	}

	if len(p.Rows) == 0 {
		b.WriteString("\n" + MutedStyle.Render("Menu is empty.") + "\n")
		return wrapInBox(b.String(), p.Width)
	}

	r := visibleRange(p.ViewOffset, p.VisibleCount, len(p.Rows))

	if r.start > 0 {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("  ↑ %d more above", r.start)) + "\n")
	}

	opts := p.Tree
	opts.Styled = true
	for i := r.start; i < r.end; i++ {
		b.WriteString(renderCursor(i == p.Cursor) + renderRow(p.Rows[i], opts, i == p.Cursor))
		if i < r.end-1 {
			b.WriteString("\n")
		}
	}

	if r.end < len(p.Rows) {
		b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("  ↓ %d more below", len(p.Rows)-r.end)))
	}

	b.WriteString("\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n")
	helpText := compactHelp(
		"enter toggle • ←/→ collapse/expand • c collapse all • / filter • r reload • ? help • q quit",
		"enter•←•→•c•/•r•?•q",
		p.Width,
	)
	b.WriteString(HelpStyle.Render(helpText))

	return wrapInBox(b.String(), p.Width)
}

func renderCursor(selected bool) string {
	if selected {
		return SelectedStyle.Render(SymbolCursor + " ")
	}
	return "  "
}

// TreeLines renders rows as plain lines without cursor or box.
func TreeLines(rows []tree.Row, opts TreeOptions) []string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = renderRow(row, opts, false)
	}
	return lines
}

// renderRow draws the guides, expand symbol, label and annotations of one row.
func renderRow(row tree.Row, opts TreeOptions, selected bool) string {
	paint := func(style lipgloss.Style, s string) string {
		if !opts.Styled || s == "" {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder

	// Indentation and guides
	if opts.ShowGuides {
		for depth := 1; depth < row.Depth; depth++ {
			if row.Guides[depth] {
				b.WriteString("   ")
			} else {
				b.WriteString(paint(GuideStyle, SymbolPipe))
			}
		}
		if row.Depth > 0 {
			if row.IsLast {
				b.WriteString(paint(GuideStyle, SymbolLastChild))
			} else {
				b.WriteString(paint(GuideStyle, SymbolBranch))
			}
		}
	} else {
		b.WriteString(strings.Repeat("  ", row.Depth))
	}

	// Expand symbol
	symbol := SymbolLeaf
	switch {
	case row.Truncated:
		symbol = SymbolTruncated
	case row.Expanded:
		symbol = SymbolExpanded
	case row.HasChildren:
		symbol = SymbolCollapsed
	}
	b.WriteString(paint(MutedStyle, symbol) + " ")

	// Label
	labelStyle := LeafStyle
	if row.HasChildren {
		labelStyle = BranchStyle
	}
	if selected {
		labelStyle = SelectedStyle
	}
	b.WriteString(paint(labelStyle, row.Name))

	// Annotations
	if opts.ShowCounts && row.HasChildren && !row.Expanded && !row.Truncated {
		b.WriteString(" " + paint(MutedStyle, fmt.Sprintf("(%d)", row.ChildCount)))
	}
	if row.Truncated {
		b.WriteString(" " + paint(WarningStyle, "(depth limit)"))
	}
	if opts.ShowTargets && row.To != "" {
		b.WriteString(" " + paint(MutedStyle, SymbolTarget+" "+row.To))
	}

	return b.String()
}

// renderFilter renders the filter mode.
func renderFilter(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	b.WriteString(HeaderStyle.Render("FILTER") + "  ")
	b.WriteString(p.FilterInput + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n")

	switch {
	case p.FilterValue == "":
		b.WriteString("\n" + MutedStyle.Render("Type to search every menu entry.") + "\n")
	case len(p.Matches) == 0:
		b.WriteString("\n" + MutedStyle.Render("No matches found.") + "\n")
		if p.Suggestion != "" {
			b.WriteString(MutedStyle.Render("Did you mean ") + SelectedStyle.Render(p.Suggestion) + MutedStyle.Render("?") + "\n")
		}
	default:
		r := visibleRange(p.MatchOffset, p.VisibleCount, len(p.Matches))
		if r.start > 0 {
			b.WriteString(MutedStyle.Render(fmt.Sprintf("  ↑ %d more above", r.start)) + "\n")
		}
		for i := r.start; i < r.end; i++ {
			m := p.Matches[i]
			if i == p.MatchCursor {
				b.WriteString(renderCursor(true) + SelectedStyle.Render(m.Label))
			} else {
				b.WriteString(renderCursor(false) + NormalStyle.Render(m.Label))
			}
			if i < r.end-1 {
				b.WriteString("\n")
			}
		}
		if r.end < len(p.Matches) {
			b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("  ↓ %d more below", len(p.Matches)-r.end)))
		}
	}

	b.WriteString("\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n")
	b.WriteString(HelpStyle.Render("↑/↓ select • enter reveal • esc clear"))

	return wrapInBox(b.String(), p.Width)
}

// renderHelp renders the help screen.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	b.WriteString(HeaderStyle.Render("HELP") + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n\n")

	for i, section := range p.HelpSections {
		b.WriteString(BranchStyle.Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, 40)) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 12 chars for alignment
			keys := binding.Keys
			if len(keys) < 12 {
				keys = keys + strings.Repeat(" ", 12-len(keys))
			}
			b.WriteString(MutedStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	return wrapInBox(b.String(), p.Width)
}

// wrapInBox wraps content in a box.
func wrapInBox(content string, width int) string {
	boxWidth := width - 2
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}
	return BoxStyle.Width(boxWidth).Render(content)
}

// compactHelp returns a shortened help string for small terminals.
func compactHelp(full, compact string, width int) string {
	if width >= 80 {
		return full
	}
	return compact
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
