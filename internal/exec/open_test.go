package exec

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandTemplate(t *testing.T) {
	target := Target{
		Name: "Login",
		Path: "Settings/Security/Login",
		To:   "https://example.com/login",
	}

	tests := []struct {
		name     string
		template string
		target   Target
		expected string
	}{
		{
			name:     "to variable",
			template: "xdg-open {to}",
			target:   target,
			expected: "xdg-open https://example.com/login",
		},
		{
			name:     "name and path",
			template: "echo {name} {path}",
			target:   target,
			expected: "echo Login Settings/Security/Login",
		},
		{
			name:     "to falls back to path",
			template: "open {to}",
			target:   Target{Name: "City", Path: "Profile/City"},
			expected: "open Profile/City",
		},
		{
			name:     "unsafe values are quoted",
			template: "echo {name}",
			target:   Target{Name: "Log in; rm -rf /"},
			expected: "echo 'Log in; rm -rf /'",
		},
		{
			name:     "single quotes are escaped",
			template: "echo {name}",
			target:   Target{Name: "it's"},
			expected: `echo 'it'\''s'`,
		},
		{
			name:     "empty value",
			template: "echo {name}",
			target:   Target{},
			expected: "echo ''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandTemplate(tt.template, tt.target)
			if got != tt.expected {
				t.Errorf("ExpandTemplate(%q) = %q, want %q", tt.template, got, tt.expected)
			}
		})
	}
}

func TestExtractTemplateVars(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"xdg-open {to}", 1},
		{"no vars here", 0},
		{"{name} {path} {to}", 3},
		{"{}", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractTemplateVars(tt.input); len(got) != tt.expected {
				t.Errorf("ExtractTemplateVars(%q) = %v, want %d vars", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildExpandsCommand(t *testing.T) {
	out, err := Build("printf %s {to}", Target{To: "/profile"}).Output()
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if string(out) != "/profile" {
		t.Errorf("Expected /profile, got %q", out)
	}
}

func TestOpenDetachedStarts(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	if err := OpenDetached("printf %s {name} > "+out, Target{Name: "Home"}); err != nil {
		t.Fatalf("OpenDetached() error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(out); err == nil && string(data) == "Home" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("detached command did not run")
}
