package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henri123lemoine/arbor/internal/config"
	"github.com/henri123lemoine/arbor/internal/menu"
)

func initCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [menu-file]",
		Short: "Write the sample menu and a default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			path := "menu.toml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := menu.FormatFromPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := menu.Save(path, menu.Sample()); err != nil {
				return fmt.Errorf("write menu: %w", err)
			}
			fmt.Fprintf(out, "Wrote sample menu to %s\n", path)

			written, err := config.CreateDefaultConfigFile(opts.configPath)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if written {
				fmt.Fprintf(out, "Wrote default config to %s\n", opts.configPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing menu file")
	return cmd
}
