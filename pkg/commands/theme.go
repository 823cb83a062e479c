package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/runner/themes"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or set the color theme.",
		Example: `
lexiflow theme
lexiflow theme forest
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := themes.Themes{Settings: settings}
			if len(args) == 1 {
				r.Name = args[0]
			}
			return r.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
