package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/commands/options"
	"github.com/pkheisig/lexiflow/pkg/runner/decks"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addDecks(topLevel *cobra.Command) {
	po := &options.PathOptions{}

	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Show recently opened decks.",
		Example: `
lexiflow decks
lexiflow decks --show-path
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := decks.Decks{
				Settings: settings,
				ShowPath: po.ShowPath,
			}
			return r.Do(context.Background())
		},
	}

	options.AddPathArgs(cmd, po)

	rename := &cobra.Command{
		Use:   "rename <path> <name>",
		Short: "Rename a recent deck.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := decks.Rename{
				Settings: settings,
				Path:     args[0],
				Name:     args[1],
			}
			return r.Do(context.Background())
		},
	}
	cmd.AddCommand(rename)

	topLevel.AddCommand(cmd)
}
