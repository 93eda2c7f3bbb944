package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/poslookup/internal/logger"
	"github.com/interpretive-systems/poslookup/internal/search"
	"github.com/interpretive-systems/poslookup/internal/tui"
)

func newLookupCmd(g *globalFlags) *cobra.Command {
	var printLast bool
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Open the interactive lookup screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLookup(cmd, g, printLast)
		},
	}
	cmd.Flags().BoolVarP(&printLast, "print", "p", false, "Print the last selected item as JSON on exit")
	return cmd
}

func runLookup(cmd *cobra.Command, g *globalFlags, printLast bool) error {
	s, err := resolve(cmd, g)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	log := *logger.FromContext(ctx)

	var last search.Item
	err = tui.Run(ctx, tui.Options{
		Config: s.search,
		Theme:  s.theme,
		Load: func(ctx context.Context) ([]search.Item, error) {
			return s.loadItems(ctx, log)
		},
		Logger:   log,
		OnSelect: func(item search.Item) { last = item },
	})
	if err != nil {
		return err
	}
	if printLast && last != nil {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(last)
	}
	return nil
}
