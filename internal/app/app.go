package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/arbor/internal/config"
	"github.com/henri123lemoine/arbor/internal/debug"
	"github.com/henri123lemoine/arbor/internal/exec"
	"github.com/henri123lemoine/arbor/internal/menu"
	"github.com/henri123lemoine/arbor/internal/tree"
	"github.com/henri123lemoine/arbor/internal/ui"
)

// State represents the current UI state.
type State int

const (
	StateList State = iota
	StateFilter
	StateHelp
)

// Selection is the leaf chosen before quitting.
type Selection struct {
	Path  tree.Path
	Trail []string
	Name  string
	To    string
}

// String returns the leaf's link target, or its label path when it has none.
func (s Selection) String() string {
	if s.To != "" {
		return s.To
	}
	return s.LabelPath()
}

// LabelPath joins the ancestor labels and the leaf's label with "/".
func (s Selection) LabelPath() string {
	return strings.Join(append(append([]string(nil), s.Trail...), s.Name), "/")
}

// target converts the selection for open command expansion.
func (s Selection) target() exec.Target {
	return exec.Target{Name: s.Name, Path: s.LabelPath(), To: s.To}
}

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.Config
	source string // menu file path, "" for the built-in sample

	// Data
	forest menu.Forest
	tree   *tree.Renderer
	rows   []tree.Row
	cursor int

	// State
	state   State
	loading bool
	err     error

	// Filter
	filterInput textinput.Model
	matches     []ui.Match
	matchCursor int
	matchOffset int
	suggestion  string

	// UI
	width      int
	height     int
	viewOffset int
	keys       KeyMap

	// Exit behavior
	shouldQuit bool
	selected   *Selection
}

// New creates a new Model that will load its menu from source.
// An empty source uses the built-in sample menu.
func New(cfg *config.Config, source string) Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "search..."
	filterInput.CharLimit = 80

	return Model{
		config:      cfg,
		source:      source,
		tree:        newRenderer(cfg),
		keys:        KeyMapFromConfig(&cfg.Keys),
		filterInput: filterInput,
		state:       StateList,
		loading:     true,
	}
}

// newRenderer builds an empty tree renderer from the tree settings.
func newRenderer(cfg *config.Config) *tree.Renderer {
	return tree.New(
		tree.WithMaxDepth(cfg.Tree.MaxDepth),
		tree.WithResetOnCollapse(cfg.Tree.ResetOnCollapse),
	)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadMenu(m.source)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		// Handle quit globally
		if key.Matches(msg, m.keys.Quit) && m.state == StateList {
			m.shouldQuit = true
			return m, tea.Quit
		}

		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.state != StateList || !m.config.UI.Mouse {
			return m, nil
		}
		return m.handleMouse(msg)

	case MenuLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Keep showing the previous forest
			m.err = msg.Err
			debug.Log("menu load failed: %v", msg.Err)
			return m, nil
		}
		m.err = nil
		m.setForest(msg.Forest)
		for _, w := range menu.Validate(msg.Forest, m.config.Tree.MaxDepth) {
			debug.Log("menu warning: %s", w)
		}
		return m, nil

	case LeafOpenedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			debug.Log("open failed: %v", msg.Err)
			return m, nil
		}
		m.err = nil
		if m.config.Tree.ExitOnSelect {
			m.selected = msg.Selection
			m.shouldQuit = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// setForest replaces the menu. Expand state belongs to the old menu's
// node paths, so it is discarded with it.
func (m *Model) setForest(forest menu.Forest) {
	m.forest = forest
	m.tree = newRenderer(m.config)
	m.cursor = 0
	m.viewOffset = 0
	m.refresh()
}

// refresh recomputes the visible rows and keeps the cursor in range.
func (m *Model) refresh() {
	m.rows = m.tree.Rows(m.forest)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// visibleCount returns how many rows fit on screen (0 = no limit known yet).
func (m Model) visibleCount() int {
	if m.height == 0 {
		return 0
	}
	// Leave room for the scroll indicators
	n := m.height - ui.Chrome - 2
	if n < 1 {
		n = 1
	}
	return n
}

// ensureVisible scrolls so the cursor row is on screen.
func (m *Model) ensureVisible() {
	n := m.visibleCount()
	if n == 0 {
		m.viewOffset = 0
		return
	}
	if m.cursor < m.viewOffset {
		m.viewOffset = m.cursor
	}
	if m.cursor >= m.viewOffset+n {
		m.viewOffset = m.cursor - n + 1
	}
	maxOffset := len(m.rows) - n
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewOffset > maxOffset {
		m.viewOffset = maxOffset
	}
	if m.viewOffset < 0 {
		m.viewOffset = 0
	}
}

// handleKeyPress handles key presses based on current state.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateList:
		return m.handleListKeys(msg)
	case StateFilter:
		return m.handleFilterKeys(msg)
	case StateHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

// handleListKeys handles key presses in the tree view.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.rows) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Toggle):
		return m.activate()
	case key.Matches(msg, m.keys.Expand):
		m.expandOrDescend()
	case key.Matches(msg, m.keys.Collapse):
		m.collapseOrAscend()
	case key.Matches(msg, m.keys.CollapseAll):
		m.collapseAll()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, loadMenu(m.source)
	case key.Matches(msg, m.keys.Filter):
		m.state = StateFilter
		m.filterInput.Focus()
		m.applyFilter()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Help):
		m.state = StateHelp
		return m, nil
	}
	m.ensureVisible()
	return m, nil
}

// current returns the row under the cursor.
func (m Model) current() (tree.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return tree.Row{}, false
	}
	return m.rows[m.cursor], true
}

// activate is the click on a row's label: internal nodes toggle, leaves
// are chosen.
func (m Model) activate() (tea.Model, tea.Cmd) {
	row, ok := m.current()
	if !ok {
		return m, nil
	}

	if row.HasChildren {
		if m.tree.Toggle(m.forest, row.Path) {
			debug.Log("toggle %s (%q) expanded=%v", row.Path, row.Name, m.tree.Expanded(row.Path))
			m.refresh()
		}
		return m, nil
	}

	sel := m.selection(row.Path)
	if sel == nil {
		return m, nil
	}
	if m.config.Open.Command != "" {
		debug.Log("opening %s", sel)
		return m, openLeaf(m.config.Open, sel)
	}
	if !m.config.Tree.ExitOnSelect {
		return m, nil
	}
	m.selected = sel
	m.shouldQuit = true
	debug.Log("selected %s", m.selected)
	return m, tea.Quit
}

// selection describes the node at p.
func (m Model) selection(p tree.Path) *Selection {
	node := m.forest.At(p)
	if node == nil {
		return nil
	}
	var trail []string
	for i := 1; i < len(p); i++ {
		trail = append(trail, m.forest.At(p[:i]).Name)
	}
	return &Selection{Path: p, Trail: trail, Name: node.Name, To: node.To}
}

func (m *Model) expandOrDescend() {
	row, ok := m.current()
	if !ok || !row.HasChildren {
		return
	}
	if row.Expanded {
		m.cursor++
	} else if m.tree.Expand(m.forest, row.Path) {
		m.refresh()
	}
}

func (m *Model) collapseOrAscend() {
	row, ok := m.current()
	if !ok {
		return
	}
	if row.Expanded {
		if m.tree.Collapse(row.Path) {
			m.refresh()
		}
		return
	}
	if parent := row.Path.Parent(); parent != nil {
		if idx := tree.IndexOf(m.rows, parent); idx >= 0 {
			m.cursor = idx
		}
	}
}

func (m *Model) collapseAll() {
	row, ok := m.current()
	m.tree.CollapseAll()
	m.refresh()
	if ok {
		// The top-level ancestor is the only part of the path still visible
		if idx := tree.IndexOf(m.rows, row.Path[:1]); idx >= 0 {
			m.cursor = idx
		}
	}
}

// handleMouse maps a left click to the row drawn at that line.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible()
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.ensureVisible()
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		idx := ui.RowAt(m.renderParams(), msg.Y)
		if idx < 0 {
			return m, nil
		}
		m.cursor = idx
		return m.activate()
	}
	return m, nil
}

// handleHelpKeys handles key presses in the help view.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	m.state = StateList
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	return ui.Render(m.renderParams())
}

func (m Model) renderParams() ui.RenderParams {
	return ui.RenderParams{
		State:        int(m.state),
		Source:       m.sourceName(),
		Rows:         m.rows,
		Cursor:       m.cursor,
		ViewOffset:   m.viewOffset,
		VisibleCount: m.visibleCount(),
		Width:        m.width,
		Height:       m.height,
		Loading:      m.loading,
		Err:          m.err,
		Tree: ui.TreeOptions{
			ShowGuides:  m.config.UI.ShowGuides,
			ShowTargets: m.config.UI.ShowTargets,
			ShowCounts:  m.config.UI.ShowCounts,
		},
		FilterInput:  m.filterInput.View(),
		FilterValue:  m.filterInput.Value(),
		Matches:      m.matches,
		MatchCursor:  m.matchCursor,
		MatchOffset:  m.matchOffset,
		Suggestion:   m.suggestion,
		HelpSections: m.keys.HelpSections(),
	}
}

func (m Model) sourceName() string {
	if m.source == "" {
		return "sample"
	}
	return filepath.Base(m.source)
}

// Rows returns the visible rows.
func (m Model) Rows() []tree.Row {
	return m.rows
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

// Selected returns the leaf chosen before quitting, or nil.
func (m Model) Selected() *Selection {
	return m.selected
}

// Commands

func loadMenu(source string) tea.Cmd {
	return func() tea.Msg {
		if source == "" {
			return MenuLoadedMsg{Source: source, Forest: menu.Sample()}
		}
		forest, err := menu.Load(source)
		return MenuLoadedMsg{Source: source, Forest: forest, Err: err}
	}
}

func openLeaf(cfg config.OpenConfig, sel *Selection) tea.Cmd {
	if cfg.Detach {
		return func() tea.Msg {
			err := exec.OpenDetached(cfg.Command, sel.target())
			return LeafOpenedMsg{Selection: sel, Err: err}
		}
	}
	// Hand the terminal to the command until it exits
	return tea.ExecProcess(exec.Build(cfg.Command, sel.target()), func(err error) tea.Msg {
		return LeafOpenedMsg{Selection: sel, Err: err}
	})
}
