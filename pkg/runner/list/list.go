package list

import (
	"context"
	"errors"

	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/store"
	"github.com/pkheisig/lexiflow/pkg/tui/cardlist"
	"github.com/pkheisig/lexiflow/pkg/tui/theme"
)

// List opens a deck and runs the scrollable reveal-list UI.
type List struct {
	Settings store.Settings

	Path      string
	Favorites bool

	TermColumn int
	DefColumn  int
}

func (r *List) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("list: no settings store")
	}

	s := session.New(r.Settings)

	path := r.Path
	if path == "" {
		path = r.Settings.LastDeck()
	}
	if path == "" {
		return errors.New("list: no deck to open, pass a file")
	}

	s.ImportFile(path)
	if s.ErrorMessage != "" {
		return errors.New(s.ErrorMessage)
	}

	if r.TermColumn >= 0 || r.DefColumn >= 0 {
		if r.TermColumn >= 0 {
			s.RemapColumn(session.RoleTerm, r.TermColumn)
		}
		if r.DefColumn >= 0 {
			s.RemapColumn(session.RoleDefinition, r.DefColumn)
		}
		s.RegenerateCards()
	}

	if r.Favorites {
		s.EnterFavorites()
		if !s.InFavorites() {
			return errors.New("list: no starred cards yet")
		}
	}

	return cardlist.Run(s, theme.Load(r.Settings.Theme()))
}
