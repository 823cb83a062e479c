package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/commands/options"
	"github.com/pkheisig/lexiflow/pkg/runner/edit"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit the raw table behind a deck.",
		Long: options.Wrap80("Apply row, column, and cell edits to a deck's " +
			"table and print the result. Nothing touches the source file " +
			"unless --save is passed; unsaved edits are reported and " +
			"discarded."),
		Example: `
lexiflow edit words.csv
lexiflow edit words.csv --add-row --set 3:0:gato --set "3:1:cat (es)" --save
lexiflow edit words.csv --del-col 2 --save
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := edit.Edit{
				Settings:   settings,
				Path:       args[0],
				AddRow:     eo.AddRow,
				DeleteRow:  eo.DeleteRow,
				DeleteCol:  eo.DeleteCol,
				SetCells:   eo.SetCells,
				SetHeaders: eo.SetHeaders,
				Save:       eo.Save,
			}
			return r.Do(context.Background())
		},
	}

	options.AddEditArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
