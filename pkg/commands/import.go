package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/commands/options"
	"github.com/pkheisig/lexiflow/pkg/runner/imports"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a deck file and add it to the recent decks.",
		Long: options.Wrap80("Load a comma-delimited .csv or .txt file, " +
			"detect the term and definition columns, and record the deck so " +
			"study and list can open it without arguments."),
		Example: `
lexiflow import words.csv
lexiflow import words.txt --name "Spanish verbs"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := imports.Import{
				Settings: settings,
				Path:     args[0],
				Name:     name,
			}
			return r.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&name, "name", "",
		"Display name for the deck in the recent list.")

	topLevel.AddCommand(cmd)
}
