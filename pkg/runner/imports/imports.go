package imports

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/store"
)

// Import loads a deck file, records it in the recent decks list, and reports
// what was generated.
type Import struct {
	Settings store.Settings
	Path     string
	Name     string
}

func (r *Import) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("import: no settings store")
	}
	if r.Path == "" {
		return errors.New("import: no deck file given")
	}

	s := session.New(r.Settings)
	s.ImportFile(r.Path)
	if s.ErrorMessage != "" {
		return errors.New(s.ErrorMessage)
	}
	if r.Name != "" {
		s.RenameDeck(r.Path, r.Name)
	}

	t := color.New()
	_, _ = t.Fprintf(color.Output, "imported %d cards from %s (%s → %s)\n",
		len(s.Cards()), r.Path,
		s.Table.Headers[s.TermColumn], s.Table.Headers[s.DefColumn])
	return nil
}
