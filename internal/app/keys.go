package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/arbor/internal/config"
	"github.com/henri123lemoine/arbor/internal/ui"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding

	// Tree
	Toggle      key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	CollapseAll key.Binding

	// General
	Reload key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMapFromConfig(&config.DefaultConfig().Keys)
}

// KeyMapFromConfig creates a KeyMap from config settings.
// Empty settings fall back to the defaults.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	defaults := config.DefaultConfig().Keys
	pick := func(value, fallback string) string {
		if value != "" {
			return value
		}
		return fallback
	}

	return KeyMap{
		Up:          binding(pick(cfg.Up, defaults.Up), "up"),
		Down:        binding(pick(cfg.Down, defaults.Down), "down"),
		Home:        binding(pick(cfg.Home, defaults.Home), "first"),
		End:         binding(pick(cfg.End, defaults.End), "last"),
		Toggle:      binding(pick(cfg.Toggle, defaults.Toggle), "expand/collapse, choose leaf"),
		Expand:      binding(pick(cfg.Expand, defaults.Expand), "expand or go to first child"),
		Collapse:    binding(pick(cfg.Collapse, defaults.Collapse), "collapse or go to parent"),
		CollapseAll: binding(pick(cfg.CollapseAll, defaults.CollapseAll), "collapse all"),
		Reload:      binding(pick(cfg.Reload, defaults.Reload), "reload menu"),
		Filter:      binding(pick(cfg.Filter, defaults.Filter), "filter"),
		Help:        binding(pick(cfg.Help, defaults.Help), "help"),
		Quit:        binding(pick(cfg.Quit, defaults.Quit), "quit"),
	}
}

// binding builds a key.Binding from a comma-separated key list.
func binding(keys, desc string) key.Binding {
	parsed := config.ParseKeys(keys)
	return key.NewBinding(
		key.WithKeys(parsed...),
		key.WithHelp(helpKeys(parsed), desc),
	)
}

// helpKeys formats keys for display ("enter/space").
func helpKeys(keys []string) string {
	shown := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		shown[i] = k
	}
	return strings.Join(shown, "/")
}

// HelpSections returns the bindings grouped for the help screen.
func (k KeyMap) HelpSections() []ui.HelpSection {
	section := func(title string, bindings ...key.Binding) ui.HelpSection {
		s := ui.HelpSection{Title: title}
		for _, b := range bindings {
			s.Bindings = append(s.Bindings, ui.HelpBinding{Keys: b.Help().Key, Desc: b.Help().Desc})
		}
		return s
	}

	return []ui.HelpSection{
		section("Navigation", k.Up, k.Down, k.Home, k.End),
		section("Tree", k.Toggle, k.Expand, k.Collapse, k.CollapseAll),
		section("General", k.Filter, k.Reload, k.Help, k.Quit),
	}
}
