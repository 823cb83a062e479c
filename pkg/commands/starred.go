package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/runner/starred"
	"github.com/pkheisig/lexiflow/pkg/store"
)

func addStarred(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "starred",
		Aliases: []string{"favorites"},
		Short:   "Show the starred cards.",
		Example: `
lexiflow starred
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.Load(nil)
			if err != nil {
				return err
			}
			r := starred.Starred{Settings: settings}
			return r.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
