package store

import (
	"time"

	"github.com/pkheisig/lexiflow/pkg/card"
)

// DeckRef identifies a previously opened deck. Path is the unique key; Name
// and LastOpened are updated in place on every re-open.
type DeckRef struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	LastOpened time.Time `json:"lastOpened"`
}

// MaxRecentDecks caps the recent decks list.
const MaxRecentDecks = 10

// Settings defines the persistence contract for cross-launch application
// state. Reads of missing or corrupt keys yield zero values; every operation
// is attempt-once.
type Settings interface {
	LastDeck() string
	SetLastDeck(path string) error

	RecentDecks() []DeckRef
	SaveRecentDecks(refs []DeckRef) error

	Starred() (keys []string, cards []card.Card)
	SaveStarred(keys []string, cards []card.Card) error

	DeckOrder(path string) []string
	SaveDeckOrder(path string, keys []string) error
	ClearDeckOrder(path string) error

	Theme() string
	SetTheme(name string) error
}
