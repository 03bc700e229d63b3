// Package exec runs the configured open command for a chosen menu entry.
package exec

import (
	"os/exec"
	"regexp"
	"strings"
)

// Target describes the chosen entry for template expansion.
type Target struct {
	Name string // leaf label
	Path string // label path, slash separated ("Settings/Security/Login")
	To   string // link target, may be empty
}

// TemplateVars lists the variables an open command may use.
var TemplateVars = []string{"{name}", "{path}", "{to}"}

// Build returns the shell command for a target without starting it.
func Build(command string, t Target) *exec.Cmd {
	return exec.Command("sh", "-c", ExpandTemplate(command, t))
}

// OpenDetached executes the open command in a detached process.
// This is useful for commands that should outlive arbor, such as a browser.
func OpenDetached(command string, t Target) error {
	cmd := Build(command, t)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	// Start the process but don't wait for it
	return cmd.Start()
}

// ExpandTemplate expands template variables in the command.
// Values are shell-quoted when they contain anything but safe characters.
func ExpandTemplate(command string, t Target) string {
	to := t.To
	if to == "" {
		// {to} falls back to the label path
		to = t.Path
	}

	r := strings.NewReplacer(
		"{name}", shellQuote(t.Name),
		"{path}", shellQuote(t.Path),
		"{to}", shellQuote(to),
	)
	return r.Replace(command)
}

var safeChars = regexp.MustCompile(`^[A-Za-z0-9_./:@%+=,-]+$`)

// shellQuote wraps s in single quotes unless it is made of safe characters.
func shellQuote(s string) string {
	if safeChars.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ExtractTemplateVars extracts template variables from a string.
func ExtractTemplateVars(s string) []string {
	re := regexp.MustCompile(`\{[^}]+\}`)
	return re.FindAllString(s, -1)
}
