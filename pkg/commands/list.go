package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/commands/options"
	"github.com/pkheisig/lexiflow/pkg/runner/list"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addList(topLevel *cobra.Command) {
	so := &options.StudyOptions{}
	mo := &options.MapOptions{}

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "Study a deck as a scrollable reveal list.",
		Long: options.Wrap80("Open a deck in the list view, every card at " +
			"once with definitions hidden per row. Enter reveals, r reveals " +
			"all, c hides all, S shuffles the list order and remembers it for " +
			"this deck, o restores the import order, / filters."),
		Example: `
lexiflow list words.csv
lexiflow list --favorites
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := list.List{
				Settings:   settings,
				Favorites:  so.Favorites,
				TermColumn: mo.TermColumn,
				DefColumn:  mo.DefColumn,
			}
			if len(args) == 1 {
				r.Path = args[0]
			}
			return r.Do(context.Background())
		},
	}

	options.AddStudyArgs(cmd, so)
	options.AddMapArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
