package study

import (
	"context"
	"errors"

	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/store"
	flipui "github.com/pkheisig/lexiflow/pkg/tui/study"
	"github.com/pkheisig/lexiflow/pkg/tui/theme"
)

// Study opens a deck and runs the flip-card session UI.
type Study struct {
	Settings store.Settings

	// Path of the deck to study; empty falls back to the last opened deck.
	Path string

	DefinitionFirst bool
	Shuffle         bool
	Favorites       bool

	// Column overrides; -1 keeps the auto-detected mapping.
	TermColumn int
	DefColumn  int
}

func (r *Study) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("study: no settings store")
	}

	s := session.New(r.Settings)

	path := r.Path
	if path == "" {
		path = r.Settings.LastDeck()
	}
	if path == "" {
		return errors.New("study: no deck to open, pass a file")
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

	s.TermFirst = !r.DefinitionFirst
	if r.Favorites {
		s.EnterFavorites()
		if !s.InFavorites() {
			return errors.New("study: no starred cards yet")
		}
	}
	if r.Shuffle {
		s.ShuffleActive()
	}

	return flipui.Run(s, theme.Load(r.Settings.Theme()))
}
