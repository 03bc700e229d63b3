package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/henri123lemoine/arbor/internal/menu"
)

// maxParallelLoads bounds concurrent menu reads in check.
const maxParallelLoads = 4

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [menu-file...]",
		Short: "Report configuration and menu warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := opts.cfg

			warnings := cfg.Validate()
			for _, w := range warnings {
				fmt.Fprintf(out, "config: %s\n", w)
			}
			total := len(warnings)

			sources := args
			if len(sources) == 0 {
				sources = []string{resolveSource(cfg, nil)}
			}
			forests, err := loadForests(cmd, sources)
			if err != nil {
				return err
			}

			for i, source := range sources {
				name := source
				if name == "" {
					name = "sample menu"
				}
				menuWarnings := menu.Validate(forests[i], cfg.Tree.MaxDepth)
				for _, w := range menuWarnings {
					if len(sources) > 1 {
						fmt.Fprintf(out, "menu %s: %s\n", name, w)
					} else {
						fmt.Fprintf(out, "menu: %s\n", w)
					}
				}
				total += len(menuWarnings)
				if len(menuWarnings) == 0 {
					fmt.Fprintf(out, "%s: %d nodes, %d levels, no problems found\n", name, forests[i].Count(), forests[i].Depth())
				}
			}

			if total > 0 {
				return fmt.Errorf("%d warning(s)", total)
			}
			return nil
		},
	}
}

// loadForests reads every source concurrently. Results keep the order of
// sources; the first error cancels the rest.
func loadForests(cmd *cobra.Command, sources []string) ([]menu.Forest, error) {
	forests := make([]menu.Forest, len(sources))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallelLoads)
	for i, source := range sources {
		i, source := i, source // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			forest, err := loadForest(source)
			if err != nil {
				return err
			}
			forests[i] = forest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return forests, nil
}
