// Package config handles arbor configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/arbor/internal/exec"
	"github.com/henri123lemoine/arbor/internal/menu"
)

// Config represents arbor configuration.
type Config struct {
	Menu MenuConfig `toml:"menu"`
	Tree TreeConfig `toml:"tree"`
	Open OpenConfig `toml:"open"`
	UI   UIConfig   `toml:"ui"`
	Keys KeysConfig `toml:"keys"`
}

// MenuConfig contains settings for the menu source.
type MenuConfig struct {
	// Menu file opened when none is given on the command line.
	// Empty = built-in sample menu.
	File string `toml:"file"`
}

// TreeConfig contains tree behaviour settings.
type TreeConfig struct {
	// Maximum number of levels shown (0 = unlimited)
	MaxDepth int `toml:"max_depth"`

	// Forget the expand state of a subtree when its parent collapses
	ResetOnCollapse bool `toml:"reset_on_collapse"`

	// Quit and print the leaf when a leaf is activated
	ExitOnSelect bool `toml:"exit_on_select"`
}

// OpenConfig contains the command run for a chosen leaf.
type OpenConfig struct {
	// Shell command with {to}, {name} and {path} placeholders.
	// Empty = only print the selection.
	Command string `toml:"command"`

	// Start the command without waiting for it
	Detach bool `toml:"detach"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Color theme: auto, dark, light
	Theme string `toml:"theme"`

	// Draw ├─ └─ guide lines
	ShowGuides bool `toml:"show_guides"`

	// Show a node's link target next to its label
	ShowTargets bool `toml:"show_targets"`

	// Show the number of children on collapsed nodes
	ShowCounts bool `toml:"show_counts"`

	// Accept mouse clicks on labels
	Mouse bool `toml:"mouse"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Home        string `toml:"home"`
	End         string `toml:"end"`
	Toggle      string `toml:"toggle"`
	Expand      string `toml:"expand"`
	Collapse    string `toml:"collapse"`
	CollapseAll string `toml:"collapse_all"`
	Reload      string `toml:"reload"`
	Filter      string `toml:"filter"`
	Help        string `toml:"help"`
	Quit        string `toml:"quit"`
}

// DefaultMaxDepth is the default tree depth bound.
const DefaultMaxDepth = 64

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Menu: MenuConfig{
			File: "",
		},
		Tree: TreeConfig{
			MaxDepth:        DefaultMaxDepth,
			ResetOnCollapse: false,
			ExitOnSelect:    true,
		},
		Open: OpenConfig{
			Command: "",
			Detach:  true,
		},
		UI: UIConfig{
			Theme:       "auto",
			ShowGuides:  true,
			ShowTargets: false,
			ShowCounts:  true,
			Mouse:       true,
		},
		Keys: KeysConfig{
			Up:          "up,k",
			Down:        "down,j",
			Home:        "home,g",
			End:         "end,G",
			Toggle:      "enter,space",
			Expand:      "right,l",
			Collapse:    "left,h",
			CollapseAll: "c",
			Reload:      "r",
			Filter:      "/",
			Help:        "?",
			Quit:        "q,ctrl+c",
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/arbor/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "arbor", "config.toml")
	}
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "arbor", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "arbor", "config.toml")
	}
	return filepath.Join(configDir, "arbor", "config.toml")
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
// A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// go-toml/v2 only overwrites fields present in the file,
	// so unspecified fields (including booleans) keep their defaults.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CreateDefaultConfigFile writes a commented default config to path.
// An existing file is left untouched; the return value reports whether
// a file was written.
func CreateDefaultConfigFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	if err := os.WriteFile(path, []byte(generateDefaultConfigContent()), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# arbor configuration\n\n")

	b.WriteString("[menu]\n")
	b.WriteString("# Menu file opened when none is given (.toml, .json, .yaml)\n")
	b.WriteString("# Leave empty to use the built-in sample menu.\n")
	b.WriteString("# file = \"~/menus/site.toml\"\n\n")

	b.WriteString("[tree]\n")
	b.WriteString("# Maximum number of levels shown (0 = unlimited)\n")
	fmt.Fprintf(&b, "max_depth = %d\n", cfg.Tree.MaxDepth)
	b.WriteString("# Forget the expand state of a subtree when its parent collapses\n")
	fmt.Fprintf(&b, "reset_on_collapse = %v\n", cfg.Tree.ResetOnCollapse)
	b.WriteString("# Quit and print the chosen leaf when a leaf is activated\n")
	fmt.Fprintf(&b, "exit_on_select = %v\n\n", cfg.Tree.ExitOnSelect)

	b.WriteString("[open]\n")
	b.WriteString("# Command run for a chosen leaf. Variables: {to}, {name}, {path}\n")
	b.WriteString("# command = \"xdg-open {to}\"\n")
	b.WriteString("# Start the command without waiting for it\n")
	fmt.Fprintf(&b, "detach = %v\n\n", cfg.Open.Detach)

	b.WriteString("[ui]\n")
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.UI.Theme)
	b.WriteString("# Draw guide lines between parents and children\n")
	fmt.Fprintf(&b, "show_guides = %v\n", cfg.UI.ShowGuides)
	b.WriteString("# Show link targets next to labels\n")
	fmt.Fprintf(&b, "show_targets = %v\n", cfg.UI.ShowTargets)
	b.WriteString("# Show child counts on collapsed nodes\n")
	fmt.Fprintf(&b, "show_counts = %v\n", cfg.UI.ShowCounts)
	b.WriteString("# Toggle nodes by clicking their labels\n")
	fmt.Fprintf(&b, "mouse = %v\n\n", cfg.UI.Mouse)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# up = %q\n", cfg.Keys.Up)
	fmt.Fprintf(&b, "# down = %q\n", cfg.Keys.Down)
	fmt.Fprintf(&b, "# toggle = %q\n", cfg.Keys.Toggle)
	fmt.Fprintf(&b, "# expand = %q\n", cfg.Keys.Expand)
	fmt.Fprintf(&b, "# collapse = %q\n", cfg.Keys.Collapse)
	fmt.Fprintf(&b, "# collapse_all = %q\n", cfg.Keys.CollapseAll)
	fmt.Fprintf(&b, "# reload = %q\n", cfg.Keys.Reload)
	fmt.Fprintf(&b, "# filter = %q\n", cfg.Keys.Filter)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)

	return b.String()
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Menu.File != "" {
		if _, err := menu.FormatFromPath(c.Menu.File); err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid menu.file: %v", err))
		}
	}

	if c.Tree.MaxDepth < 0 {
		warnings = append(warnings, fmt.Sprintf("Invalid value for tree.max_depth: %d (expected 0 or more)", c.Tree.MaxDepth))
	}

	if c.Open.Command != "" {
		for _, v := range exec.ExtractTemplateVars(c.Open.Command) {
			if !slices.Contains(exec.TemplateVars, v) {
				warnings = append(warnings, fmt.Sprintf("Unknown variable %s in open.command (valid: %s)", v, strings.Join(exec.TemplateVars, ", ")))
			}
		}
	}

	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, or light)", c.UI.Theme))
	}

	// The same key bound to two actions makes one of them unreachable
	owners := make(map[string][]string)
	for action, keys := range c.Keys.bindings() {
		for _, k := range ParseKeys(keys) {
			owners[k] = append(owners[k], action)
		}
	}
	var conflicts []string
	for k, actions := range owners {
		if len(actions) > 1 {
			sort.Strings(actions)
			conflicts = append(conflicts, fmt.Sprintf("Key %q is bound to %s", k, strings.Join(actions, " and ")))
		}
	}
	sort.Strings(conflicts)
	warnings = append(warnings, conflicts...)

	return warnings
}

// bindings maps action names to their configured key lists.
func (k KeysConfig) bindings() map[string]string {
	return map[string]string{
		"up":           k.Up,
		"down":         k.Down,
		"home":         k.Home,
		"end":          k.End,
		"toggle":       k.Toggle,
		"expand":       k.Expand,
		"collapse":     k.Collapse,
		"collapse_all": k.CollapseAll,
		"reload":       k.Reload,
		"filter":       k.Filter,
		"help":         k.Help,
		"quit":         k.Quit,
	}
}

// ParseKeys parses a comma-separated list of keys.
// "space" names the space bar.
func ParseKeys(s string) []string {
	parts := strings.Split(s, ",")
	var keys []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "space" {
			p = " "
		}
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
