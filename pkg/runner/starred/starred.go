package starred

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkheisig/lexiflow/pkg/card"
	"github.com/pkheisig/lexiflow/pkg/printers"
	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/store"
)

// Starred prints the persisted favorites.
type Starred struct {
	Settings store.Settings
}

func (r *Starred) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("starred: no settings store")
	}

	s := session.New(r.Settings)
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Starred cards")
	pp.Cards(func(c card.Card) bool { return true }, s.StarredCards()...)
	return nil
}
