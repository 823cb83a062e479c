package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/commands/options"
	"github.com/pkheisig/lexiflow/pkg/runner/study"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addStudy(topLevel *cobra.Command) {
	so := &options.StudyOptions{}
	mo := &options.MapOptions{}

	cmd := &cobra.Command{
		Use:   "study [file]",
		Short: "Study a deck one card at a time.",
		Long: options.Wrap80("Open a deck in the flip-card session. " +
			"Without a file argument the most recently opened deck is used. " +
			"Space flips the card, n advances (the session restarts after the " +
			"last card), p steps back, s shuffles, f stars, a checks a typed " +
			"answer."),
		Example: `
lexiflow study words.csv
lexiflow study --shuffle
lexiflow study --favorites
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := study.Study{
				Settings:        settings,
				DefinitionFirst: so.DefinitionFirst,
				Shuffle:         so.Shuffle,
				Favorites:       so.Favorites,
				TermColumn:      mo.TermColumn,
				DefColumn:       mo.DefColumn,
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
