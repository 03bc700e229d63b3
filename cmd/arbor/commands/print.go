package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/henri123lemoine/arbor/internal/menu"
	"github.com/henri123lemoine/arbor/internal/tree"
	"github.com/henri123lemoine/arbor/internal/ui"
)

func printCmd(opts *options) *cobra.Command {
	var (
		expand  []string
		all     bool
		targets bool
	)

	cmd := &cobra.Command{
		Use:   "print [menu-file]",
		Short: "Render the menu tree to stdout",
		Long: `Render the menu tree without the interactive UI.

Every node starts collapsed. Use --expand with a node name or an index
path such as 1/0 to open nodes; the ancestors of each expanded node are
opened too so it is visible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			forest, err := loadForest(resolveSource(cfg, args))
			if err != nil {
				return err
			}

			r := tree.New(tree.WithMaxDepth(cfg.Tree.MaxDepth))
			if all {
				tree.Walk(forest, func(p tree.Path, _ []string, _ menu.Node) {
					r.Expand(forest, p)
				})
			}
			for _, target := range expand {
				if err := expandTarget(r, forest, target); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			lines := ui.TreeLines(r.Rows(forest), ui.TreeOptions{
				Styled:      isTerminal(out),
				ShowGuides:  cfg.UI.ShowGuides,
				ShowTargets: cfg.UI.ShowTargets || targets,
				ShowCounts:  cfg.UI.ShowCounts,
			})
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&expand, "expand", "e", nil, "expand a node by name or index path (repeatable)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "expand every node")
	cmd.Flags().BoolVarP(&targets, "targets", "t", false, "show link targets")
	return cmd
}

// loadForest reads source, or returns the sample menu for "".
func loadForest(source string) (menu.Forest, error) {
	if source == "" {
		return menu.Sample(), nil
	}
	return menu.Load(source)
}

// expandTarget expands the node named by target, which is either an index
// path or a label. Every node with a matching label is expanded.
func expandTarget(r *tree.Renderer, forest menu.Forest, target string) error {
	if p, err := tree.ParsePath(target); err == nil {
		if forest.At(p) == nil {
			return fmt.Errorf("no node at path %s", p)
		}
		r.Reveal(forest, p)
		r.Expand(forest, p)
		return nil
	}

	found := false
	tree.Walk(forest, func(p tree.Path, _ []string, n menu.Node) {
		if strings.EqualFold(n.Name, target) {
			found = true
			r.Reveal(forest, p)
			r.Expand(forest, p)
		}
	})
	if found {
		return nil
	}

	if suggestion := menu.Suggest(target, forest); suggestion != "" {
		return fmt.Errorf("no node named %q (did you mean %q?)", target, suggestion)
	}
	return fmt.Errorf("no node named %q", target)
}
