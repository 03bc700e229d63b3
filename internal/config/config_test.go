package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tree.MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected max depth %d, got %d", DefaultMaxDepth, cfg.Tree.MaxDepth)
	}

	if cfg.Tree.ResetOnCollapse {
		t.Error("Expected ResetOnCollapse to be false")
	}

	if !cfg.Tree.ExitOnSelect {
		t.Error("Expected ExitOnSelect to be true")
	}

	if cfg.Menu.File != "" {
		t.Errorf("Expected no default menu file, got %q", cfg.Menu.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			config:      DefaultConfig(),
			wantWarning: false,
		},
		{
			name:        "negative max depth",
			config:      &Config{Tree: TreeConfig{MaxDepth: -1}},
			wantWarning: true,
		},
		{
			name:        "invalid theme",
			config:      &Config{UI: UIConfig{Theme: "invalid"}},
			wantWarning: true,
		},
		{
			name:        "unknown menu extension",
			config:      &Config{Menu: MenuConfig{File: "menu.ini"}},
			wantWarning: true,
		},
		{
			name:        "valid menu file",
			config:      &Config{Menu: MenuConfig{File: "menu.yaml"}},
			wantWarning: false,
		},
		{
			name:        "valid open command",
			config:      &Config{Open: OpenConfig{Command: "xdg-open {to}"}},
			wantWarning: false,
		},
		{
			name:        "unknown open variable",
			config:      &Config{Open: OpenConfig{Command: "open {url}"}},
			wantWarning: true,
		},
		{
			name:        "conflicting keys",
			config:      &Config{Keys: KeysConfig{Reload: "r", Filter: "/,r"}},
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.Validate()
			hasWarnings := len(warnings) > 0
			if hasWarnings != tt.wantWarning {
				t.Errorf("Validate() hasWarnings = %v, want %v. Warnings: %v", hasWarnings, tt.wantWarning, warnings)
			}
		})
	}
}

func TestValidateNamesConflict(t *testing.T) {
	cfg := &Config{Keys: KeysConfig{Reload: "r", Filter: "r"}}
	warnings := cfg.Validate()
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "filter and reload") {
		t.Errorf("Unexpected warning: %q", warnings[0])
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `[menu]
file = "site.toml"

[tree]
max_depth = 5
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Menu.File != "site.toml" {
		t.Errorf("Expected menu file 'site.toml', got %q", cfg.Menu.File)
	}
	if cfg.Tree.MaxDepth != 5 {
		t.Errorf("Expected max depth 5, got %d", cfg.Tree.MaxDepth)
	}

	// Boolean defaults survive when not specified
	if !cfg.Tree.ExitOnSelect {
		t.Error("Expected ExitOnSelect to remain true (default) when not specified in config")
	}
	if !cfg.UI.ShowGuides {
		t.Error("Expected ShowGuides to remain true (default) when not specified in config")
	}
	if cfg.Keys.Quit != "q,ctrl+c" {
		t.Errorf("Expected default quit keys, got %q", cfg.Keys.Quit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[tree\nmax_depth ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.UI.Theme = "light"
	cfg.Tree.ResetOnCollapse = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultConfigFileParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	written, err := CreateDefaultConfigFile(path)
	if err != nil || !written {
		t.Fatalf("CreateDefaultConfigFile() = %v, %v", written, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if parsed.Tree.MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected max depth %d in generated file, got %d", DefaultMaxDepth, parsed.Tree.MaxDepth)
	}

	// A second call leaves the file alone
	written, err = CreateDefaultConfigFile(path)
	if err != nil || written {
		t.Errorf("Second CreateDefaultConfigFile() = %v, %v; want false, nil", written, err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigPath(); got != filepath.Join("/tmp/xdg", "arbor", "config.toml") {
		t.Errorf("ConfigPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected config.toml, got %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "arbor" {
		t.Errorf("Expected arbor dir, got %q", filepath.Base(filepath.Dir(path)))
	}
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"up,k", []string{"up", "k"}},
		{" enter , space ", []string{"enter", " "}},
		{"", nil},
		{",,q", []string{"q"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseKeys(tt.input)); diff != "" {
				t.Errorf("ParseKeys(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
