package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/poslookup/internal/logger"
	"github.com/interpretive-systems/poslookup/internal/search"
)

func newScanCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Read barcode-scanner or keyboard input from stdin and print each pick as JSON",
		Long: "scan feeds stdin to the search one character at a time, the way a\n" +
			"keyboard-wedge scanner types. Each newline picks the first result and\n" +
			"prints it as one JSON line, then starts a new query.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolve(cmd, g)
			if err != nil {
				return err
			}
			log := *logger.FromContext(cmd.Context())
			items, err := s.loadItems(cmd.Context(), log)
			if err != nil {
				return err
			}
			return runScan(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), s.search, items, log)
		},
	}
}

func runScan(in io.Reader, out, errOut io.Writer, cfg search.Config, items []search.Item, log logr.Logger) error {
	enc := json.NewEncoder(out)
	var encErr error
	sess := search.NewSession(cfg, items, search.Options[search.Item]{
		OnSelect: func(item search.Item) {
			if err := enc.Encode(item); err != nil && encErr == nil {
				encErr = err
			}
		},
		Logger: log,
	})
	defer sess.Close()
	sess.Focus()

	rd := bufio.NewReader(in)
	var text []rune
	for {
		r, _, err := rd.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		switch r {
		case '\r':
			continue
		case '\n':
			if len(text) == 0 {
				continue
			}
			sess.Flush()
			snap := sess.Snapshot()
			if snap.Visible && len(snap.Results) > 0 {
				sess.Select(snap.Results[0])
			} else {
				fmt.Fprintf(errOut, "no match for %q\n", string(text))
			}
			if encErr != nil {
				return fmt.Errorf("write result: %w", encErr)
			}
			text = text[:0]
			sess.ChangeQuery("")
			sess.Flush()
			sess.Focus()
		default:
			text = append(text, r)
			sess.ChangeQuery(string(text))
		}
	}
	return nil
}
