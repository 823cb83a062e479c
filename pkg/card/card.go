package card

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Card is one term/definition study unit. The ID is assigned at creation
// time and never survives a reload; Key() is the content identity that does.
type Card struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

func New(term, definition string) Card {
	return Card{
		ID:         gonanoid.Must(),
		Term:       term,
		Definition: definition,
	}
}

// Key returns the deterministic content identity used for starring and for
// persisted custom ordering. Two cards with the same text share a Key even
// though their IDs differ.
func (c Card) Key() string {
	return c.Term + "|" + c.Definition
}

// Clone returns a copy of the card with a fresh ID.
func (c Card) Clone() Card {
	return New(c.Term, c.Definition)
}
