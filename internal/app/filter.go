package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/arbor/internal/debug"
	"github.com/henri123lemoine/arbor/internal/menu"
	"github.com/henri123lemoine/arbor/internal/tree"
	"github.com/henri123lemoine/arbor/internal/ui"
)

// handleFilterKeys handles key presses in filter mode.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeFilter()
		return m, nil
	case tea.KeyEnter:
		if m.matchCursor < len(m.matches) {
			m.revealMatch(m.matches[m.matchCursor].Path)
		}
		m.closeFilter()
		return m, nil
	case tea.KeyUp, tea.KeyCtrlP:
		if m.matchCursor > 0 {
			m.matchCursor--
		}
		m.ensureMatchVisible()
		return m, nil
	case tea.KeyDown, tea.KeyCtrlN:
		if m.matchCursor < len(m.matches)-1 {
			m.matchCursor++
		}
		m.ensureMatchVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) closeFilter() {
	m.state = StateList
	m.filterInput.Reset()
	m.filterInput.Blur()
	m.matches = nil
	m.matchCursor = 0
	m.matchOffset = 0
	m.suggestion = ""
}

// revealMatch expands the ancestors of p and moves the cursor onto it.
func (m *Model) revealMatch(p tree.Path) {
	if !m.tree.Reveal(m.forest, p) {
		return
	}
	m.refresh()
	if idx := tree.IndexOf(m.rows, p); idx >= 0 {
		m.cursor = idx
		m.ensureVisible()
	}
	debug.Log("revealed %s", p)
}

// entrySource implements fuzzy.Source over every node of the forest.
type entrySource []ui.Match

func (e entrySource) String(i int) string {
	return e[i].Label
}

func (e entrySource) Len() int {
	return len(e)
}

// entries lists every node r can reveal with its full label trail.
// Nodes below the depth bound are left out.
func entries(forest menu.Forest, r *tree.Renderer) entrySource {
	var all entrySource
	tree.Walk(forest, func(p tree.Path, trail []string, n menu.Node) {
		if !r.Revealable(forest, p) {
			return
		}
		label := n.Name
		if len(trail) > 0 {
			label = strings.Join(trail, " › ") + " › " + n.Name
		}
		all = append(all, ui.Match{Path: p, Label: label})
	})
	return all
}

// applyFilter matches the filter input against every node using fuzzy matching.
func (m *Model) applyFilter() {
	query := m.filterInput.Value()
	m.matches = nil
	m.suggestion = ""
	m.matchCursor = 0
	m.matchOffset = 0

	if query == "" {
		return
	}

	source := entries(m.forest, m.tree)
	for _, match := range fuzzy.FindFrom(query, source) {
		m.matches = append(m.matches, source[match.Index])
	}
	if len(m.matches) == 0 {
		m.suggestion = menu.Suggest(query, m.forest)
	}
	debug.Log("filter %q: %d matches", query, len(m.matches))
}

func (m *Model) ensureMatchVisible() {
	n := m.visibleCount()
	if n == 0 {
		return
	}
	if m.matchCursor < m.matchOffset {
		m.matchOffset = m.matchCursor
	}
	if m.matchCursor >= m.matchOffset+n {
		m.matchOffset = m.matchCursor - n + 1
	}
}
