package commands

import (
	"github.com/spf13/cobra"

	"github.com/pkheisig/lexiflow/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "lexiflow",
		Short: options.Wrap80("Flashcard study sessions on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addStudy(topLevel)
	addList(topLevel)
	addImport(topLevel)
	addDecks(topLevel)
	addStarred(topLevel)
	addEdit(topLevel)
	addTheme(topLevel)
	addVersion(topLevel)
}
