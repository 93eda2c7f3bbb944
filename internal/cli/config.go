package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/poslookup/internal/prefs"
)

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigPathsCmd(g))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = prefs.UserFile()
			}
			if err := prefs.Save(path, prefs.Default(), force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Destination (default the user config file)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigPathsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the config files consulted, lowest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range prefs.Paths(g.configPath) {
				state := "missing"
				if _, err := os.Stat(p); err == nil {
					state = "found"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p, state)
			}
			return nil
		},
	}
}
