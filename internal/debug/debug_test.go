package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogDisabledByDefault(t *testing.T) {
	Close()
	if IsEnabled() {
		t.Fatal("logging should start disabled")
	}
	// Must not panic without a file
	Log("ignored %d", 1)
	Timed("noop")()
}

func TestEnableWritesMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	defer Close()

	Log("toggled %s", "0/1")
	Timed("menu.Load")()
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	out := string(data)
	for _, want := range []string{"debug logging enabled", "toggled 0/1", "menu.Load took"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestEnableFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.log")
	t.Setenv(EnvVar, path)
	if err := EnableFromEnv(); err != nil {
		t.Fatalf("EnableFromEnv() error: %v", err)
	}
	defer Close()

	if !IsEnabled() {
		t.Error("expected logging enabled from environment")
	}
}

func TestDefaultPath(t *testing.T) {
	if got := filepath.Base(DefaultPath()); got != "debug.log" {
		t.Errorf("DefaultPath() base = %q, want debug.log", got)
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	Log("reveal %s", "1/0/0")
	if !strings.Contains(buf.String(), "reveal 1/0/0") {
		t.Errorf("buffer missing message: %q", buf.String())
	}

	SetOutput(nil)
	Log("dropped")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("expected no output after SetOutput(nil)")
	}
}
