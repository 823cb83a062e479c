package decks

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkheisig/lexiflow/pkg/printers"
	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/store"
)

// Decks prints the recent decks list.
type Decks struct {
	Settings store.Settings
	ShowPath bool
}

func (r *Decks) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("decks: no settings store")
	}

	pp := printers.PrettyPrint{ShowPath: r.ShowPath}
	fmt.Println("")
	pp.Title("Recent decks")
	pp.Decks(r.Settings.RecentDecks()...)
	return nil
}

// Rename updates the display name of a recent deck.
type Rename struct {
	Settings store.Settings
	Path     string
	Name     string
}

func (r *Rename) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("decks: no settings store")
	}
	if r.Path == "" || r.Name == "" {
		return errors.New("decks: rename needs a path and a new name")
	}

	s := session.New(r.Settings)
	s.RenameDeck(r.Path, r.Name)
	if s.ErrorMessage != "" {
		return errors.New(s.ErrorMessage)
	}
	return nil
}
