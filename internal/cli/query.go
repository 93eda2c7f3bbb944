package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/poslookup/internal/logger"
	"github.com/interpretive-systems/poslookup/internal/search"
)

func newQueryCmd(g *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "query <text>...",
		Short: "Print the results for a query and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, g)
			if err != nil {
				return err
			}
			log := *logger.FromContext(cmd.Context())
			items, err := s.loadItems(cmd.Context(), log)
			if err != nil {
				return err
			}

			ctrl := search.NewController(s.search, items, search.Options[search.Item]{Logger: log})
			defer ctrl.Dispose()
			ctrl.ChangeQuery(strings.Join(args, " "))
			ctrl.Flush()
			results := ctrl.Results()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if results == nil {
					results = []search.Item{}
				}
				return enc.Encode(results)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "No results")
				return nil
			}
			h := s.theme.Highlighter()
			query := search.Normalize(ctrl.CommittedQuery())
			for i, it := range results {
				fmt.Fprintf(out, "%s\t%s\n", search.RowKey(it, i), h.Render(search.DisplayLabel(it), query))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as a JSON array")
	return cmd
}
