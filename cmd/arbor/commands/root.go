package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/henri123lemoine/arbor/internal/app"
	"github.com/henri123lemoine/arbor/internal/config"
	"github.com/henri123lemoine/arbor/internal/debug"
	"github.com/henri123lemoine/arbor/internal/ui"
)

// options holds the persistent flags and the state they produce.
type options struct {
	configPath string
	debugPath  string
	cfg        *config.Config
}

// Execute runs the arbor CLI.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	debug.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "arbor [menu-file]",
		Short:         "Browse a nested menu as a collapsible tree",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debugPath != "" {
				if err := debug.Enable(opts.debugPath); err != nil {
					return fmt.Errorf("enable debug log: %w", err)
				}
			} else if err := debug.EnableFromEnv(); err != nil {
				return fmt.Errorf("enable debug log: %w", err)
			}

			if opts.configPath == "" {
				opts.configPath = config.ConfigPath()
			}
			cfg, err := config.LoadFromPath(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			for _, w := range cfg.Validate() {
				debug.Log("config warning: %s", w)
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd, opts, args)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/arbor/config.toml)")
	root.PersistentFlags().StringVar(&opts.debugPath, "debug", "", "write a debug log (--debug or --debug=FILE)")
	root.PersistentFlags().Lookup("debug").NoOptDefVal = debug.DefaultPath()

	root.AddCommand(printCmd(opts), checkCmd(opts), initCmd(opts))
	return root
}

// resolveSource picks the menu file: the argument, then menu.file, then
// "" for the built-in sample.
func resolveSource(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return expandHome(cfg.Menu.File)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runBrowser runs the interactive tree and prints the chosen leaf.
func runBrowser(cmd *cobra.Command, opts *options, args []string) error {
	cfg := opts.cfg
	ui.ApplyTheme(cfg.UI.Theme)

	model := app.New(cfg, resolveSource(cfg, args))

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	// Keep stdout clean for the selection when it is captured: cd "$(arbor)"
	if !isTerminal(cmd.OutOrStdout()) {
		programOpts = append(programOpts, tea.WithOutput(os.Stderr))
	}

	finalModel, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(app.Model); ok {
		if sel := m.Selected(); sel != nil {
			fmt.Fprintln(cmd.OutOrStdout(), sel.String())
		}
	}
	return nil
}
