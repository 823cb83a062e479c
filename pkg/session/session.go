// Package session holds the loaded card set, derives the active study
// sequence, and exposes all mutating operations for the UI layers. All
// operations are synchronous and single-threaded; none of them propagates an
// error — failures set a user-visible ErrorMessage and leave the session in
// its last good state.
package session

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkheisig/lexiflow/pkg/card"
	"github.com/pkheisig/lexiflow/pkg/store"
	"github.com/pkheisig/lexiflow/pkg/tabular"
)

// Role selects which side of a card a table column feeds.
type Role int

const (
	RoleTerm Role = iota
	RoleDefinition
)

// Session is the study session store. It exclusively owns the loaded table,
// the card sequences derived from it, and all transient study state.
type Session struct {
	settings store.Settings
	rng      *rand.Rand
	now      func() time.Time

	// Path is the source file of the current deck; empty while no deck is
	// open and while studying the favorites deck.
	Path  string
	Table tabular.Data

	TermColumn int
	DefColumn  int

	// TermFirst controls which side a card shows before flipping, and which
	// side typed answers are checked against.
	TermFirst bool

	allCards    []card.Card
	activeCards []card.Card
	listCards   []card.Card

	currentIndex int

	Flipped       bool
	AnswerChecked bool
	AnswerCorrect bool

	revealed    map[string]bool
	starredKeys map[string]bool
	starred     []card.Card

	searchQuery string

	dirty bool

	// ErrorMessage is the user-visible message of the last failed operation,
	// cleared by the next successful load or save.
	ErrorMessage string

	snap *snapshot
}

// snapshot preserves the deck being studied while the favorites deck is
// swapped in.
type snapshot struct {
	path   string
	all    []card.Card
	active []card.Card
	list   []card.Card
	index  int
}

// New creates a session backed by the given settings store. Starred cards
// persisted by earlier runs are loaded immediately.
func New(settings store.Settings) *Session {
	s := &Session{
		settings:    settings,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		TermFirst:   true,
		revealed:    make(map[string]bool),
		starredKeys: make(map[string]bool),
	}
	if settings != nil {
		keys, cards := settings.Starred()
		for _, k := range keys {
			s.starredKeys[k] = true
		}
		s.starred = cards
	}
	return s
}

// SetRand replaces the shuffle source. Tests use this for deterministic
// permutations.
func (s *Session) SetRand(r *rand.Rand) {
	s.rng = r
}

// ---------------------------------------------------------------------------
// Loading & column mapping

// ImportFile is the single entry point for file-picker style imports. Only
// .csv and .txt sources are accepted; anything else is reported and ignored.
func (s *Session) ImportFile(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		s.LoadFromPath(path)
	default:
		s.ErrorMessage = fmt.Sprintf("unsupported file type: %s", filepath.Ext(path))
	}
}

// LoadFromPath parses the file at path and replaces the session's deck. An
// unreadable or empty source sets ErrorMessage and leaves all other state
// unchanged.
func (s *Session) LoadFromPath(path string) {
	d := tabular.Load(path)
	if d.Empty() {
		s.ErrorMessage = fmt.Sprintf("could not read a table from %s", path)
		return
	}

	s.Path = path
	s.Table = d
	s.dirty = false
	s.ErrorMessage = ""

	s.detectColumns()
	s.RegenerateCards()
	s.touchRecentDecks(path)

	if s.settings != nil {
		if err := s.settings.SetLastDeck(path); err != nil {
			s.ErrorMessage = fmt.Sprintf("could not remember deck: %v", err)
		}
	}
}

// detectColumns picks the term/definition columns by case-insensitive
// substring match on the header names, falling back to columns 0 and 1 (or
// 0 and 0 when the table has a single column).
func (s *Session) detectColumns() {
	s.TermColumn = 0
	s.DefColumn = 1
	if s.Table.Width() < 2 {
		s.DefColumn = 0
	}
	termFound, defFound := false, false
	for i, h := range s.Table.Headers {
		lh := strings.ToLower(h)
		if !termFound && strings.Contains(lh, "term") {
			s.TermColumn = i
			termFound = true
		}
		if !defFound && strings.Contains(lh, "definition") {
			s.DefColumn = i
			defFound = true
		}
	}
}

// RemapColumn assigns a table column to a card role. Out-of-range indices
// are ignored. Callers regenerate cards afterwards.
func (s *Session) RemapColumn(role Role, index int) {
	if index < 0 || index >= s.Table.Width() {
		return
	}
	switch role {
	case RoleTerm:
		s.TermColumn = index
	case RoleDefinition:
		s.DefColumn = index
	}
}

// RegenerateCards rebuilds the card sequences from the current table and
// column mapping. A row contributes a card only when both mapped fields
// exist and are non-empty. A persisted custom order for this deck path is
// applied by content key; cards absent from the saved order are appended in
// original row order. Index and all per-card transient state reset.
func (s *Session) RegenerateCards() {
	cards := make([]card.Card, 0, len(s.Table.Rows))
	for _, row := range s.Table.Rows {
		if s.TermColumn >= len(row) || s.DefColumn >= len(row) {
			continue
		}
		term, def := row[s.TermColumn], row[s.DefColumn]
		if term == "" || def == "" {
			continue
		}
		cards = append(cards, card.New(term, def))
	}

	if s.settings != nil && s.Path != "" {
		if saved := s.settings.DeckOrder(s.Path); len(saved) > 0 {
			cards = reorderByKeys(cards, saved)
		}
	}

	s.allCards = cards
	s.activeCards = copyCards(cards)
	s.listCards = copyCards(cards)
	s.currentIndex = 0
	s.revealed = make(map[string]bool)
	s.clearTransients()
}

// reorderByKeys emits the cards whose keys appear in saved, in saved order,
// then appends every unmatched card in its original position. Duplicate keys
// consume matching cards left to right.
func reorderByKeys(cards []card.Card, saved []string) []card.Card {
	used := make([]bool, len(cards))
	out := make([]card.Card, 0, len(cards))
	for _, key := range saved {
		for i, c := range cards {
			if !used[i] && c.Key() == key {
				out = append(out, c)
				used[i] = true
				break
			}
		}
	}
	for i, c := range cards {
		if !used[i] {
			out = append(out, c)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Table editing

// AppendRow adds an all-empty row matching the current header width.
func (s *Session) AppendRow() {
	if s.Table.Empty() {
		return
	}
	s.Table.AppendRow()
	s.dirty = true
}

// DeleteRow removes the data row at index i.
func (s *Session) DeleteRow(i int) {
	if i < 0 || i >= len(s.Table.Rows) {
		return
	}
	s.Table.DeleteRow(i)
	s.dirty = true
}

// DeleteColumn removes column c and repairs the role mappings: a mapping on
// the deleted column resets to 0, a mapping past it shifts down by one.
func (s *Session) DeleteColumn(c int) {
	if c < 0 || c >= s.Table.Width() {
		return
	}
	s.Table.DeleteColumn(c)
	s.TermColumn = shiftMapping(s.TermColumn, c)
	s.DefColumn = shiftMapping(s.DefColumn, c)
	s.dirty = true
}

func shiftMapping(m, deleted int) int {
	switch {
	case m == deleted:
		return 0
	case m > deleted:
		return m - 1
	}
	return m
}

// SetCell assigns v to row r, column c.
func (s *Session) SetCell(r, c int, v string) {
	if r < 0 || r >= len(s.Table.Rows) || c < 0 || c >= s.Table.Width() {
		return
	}
	s.Table.SetCell(r, c, v)
	s.dirty = true
}

// SetHeader assigns v to header column c.
func (s *Session) SetHeader(c int, v string) {
	if c < 0 || c >= s.Table.Width() {
		return
	}
	s.Table.SetHeader(c, v)
	s.dirty = true
}

// Save writes the table back to its source path with atomic replace
// semantics. On failure the dirty flag stays set so the edits are not
// silently lost.
func (s *Session) Save() {
	if s.Path == "" {
		s.ErrorMessage = "no deck open"
		return
	}
	if err := tabular.Save(s.Path, s.Table); err != nil {
		s.ErrorMessage = fmt.Sprintf("could not save %s: %v", s.Path, err)
		return
	}
	s.dirty = false
	s.ErrorMessage = ""
}

// ---------------------------------------------------------------------------
// Navigation

// Next advances to the following card. At the last card the session
// restarts: the active sequence resets to the list-mode order, reveal state
// clears, and the index returns to 0.
func (s *Session) Next() {
	s.clearTransients()
	if len(s.activeCards) == 0 {
		return
	}
	if s.currentIndex >= len(s.activeCards)-1 {
		s.activeCards = copyCards(s.listCards)
		s.revealed = make(map[string]bool)
		s.currentIndex = 0
		return
	}
	s.currentIndex++
}

// Previous steps back one card, clamped at the first.
func (s *Session) Previous() {
	s.clearTransients()
	if s.currentIndex > 0 {
		s.currentIndex--
	}
}

// Flip toggles the current card between its two sides.
func (s *Session) Flip() {
	s.Flipped = !s.Flipped
}

func (s *Session) clearTransients() {
	s.Flipped = false
	s.AnswerChecked = false
	s.AnswerCorrect = false
}

// ---------------------------------------------------------------------------
// Shuffle & ordering

// ShuffleActive permutes only the active study sequence. The list-mode
// order, and with it any persisted order, is untouched.
func (s *Session) ShuffleActive() {
	s.rng.Shuffle(len(s.activeCards), func(i, j int) {
		s.activeCards[i], s.activeCards[j] = s.activeCards[j], s.activeCards[i]
	})
	s.currentIndex = 0
	s.clearTransients()
}

// ShuffleListMode permutes the list-mode sequence, mirrors it into the
// active sequence, and persists the new order for the current deck path.
func (s *Session) ShuffleListMode() {
	s.rng.Shuffle(len(s.listCards), func(i, j int) {
		s.listCards[i], s.listCards[j] = s.listCards[j], s.listCards[i]
	})
	s.activeCards = copyCards(s.listCards)
	s.currentIndex = 0
	s.revealed = make(map[string]bool)
	s.clearTransients()
	s.persistListOrder()
}

func (s *Session) persistListOrder() {
	if s.settings == nil || s.Path == "" {
		return
	}
	keys := make([]string, 0, len(s.listCards))
	for _, c := range s.listCards {
		keys = append(keys, c.Key())
	}
	if err := s.settings.SaveDeckOrder(s.Path, keys); err != nil {
		s.ErrorMessage = fmt.Sprintf("could not save card order: %v", err)
	}
}

// ResetListOrder restores the original import order and clears the persisted
// override for this deck path.
func (s *Session) ResetListOrder() {
	if s.settings != nil && s.Path != "" {
		if err := s.settings.ClearDeckOrder(s.Path); err != nil {
			s.ErrorMessage = fmt.Sprintf("could not clear card order: %v", err)
			return
		}
	}
	if s.InFavorites() {
		s.activeCards = copyCards(s.allCards)
		s.listCards = copyCards(s.allCards)
		s.currentIndex = 0
		s.revealed = make(map[string]bool)
		s.clearTransients()
		return
	}
	s.RegenerateCards()
}

// ---------------------------------------------------------------------------
// Favorites

// EnterFavorites swaps the starred cards in as the deck being studied. The
// current deck is snapshotted for ExitFavorites. No-op when there are no
// starred cards or favorites are already active.
func (s *Session) EnterFavorites() {
	if len(s.starred) == 0 || s.InFavorites() {
		return
	}
	s.snap = &snapshot{
		path:   s.Path,
		all:    s.allCards,
		active: s.activeCards,
		list:   s.listCards,
		index:  s.currentIndex,
	}
	s.Path = ""
	s.allCards = copyCards(s.starred)
	s.activeCards = copyCards(s.starred)
	s.listCards = copyCards(s.starred)
	s.currentIndex = 0
	s.revealed = make(map[string]bool)
	s.clearTransients()
}

// ExitFavorites restores the snapshotted deck verbatim. No-op when no
// snapshot is held.
func (s *Session) ExitFavorites() {
	if s.snap == nil {
		return
	}
	s.Path = s.snap.path
	s.allCards = s.snap.all
	s.activeCards = s.snap.active
	s.listCards = s.snap.list
	s.currentIndex = s.snap.index
	s.snap = nil
	s.revealed = make(map[string]bool)
	s.clearTransients()
}

// InFavorites reports whether the favorites deck is currently swapped in.
func (s *Session) InFavorites() bool {
	return s.snap != nil
}

// ToggleStar stars or unstars the card with the given identity token. The
// card is resolved against the list-mode sequence first, then the full set.
// Starred copies are materialized with fresh identity tokens, decoupled from
// the deck's own instances.
func (s *Session) ToggleStar(id string) {
	c, ok := s.findCard(id)
	if !ok {
		return
	}
	key := c.Key()
	if s.starredKeys[key] {
		delete(s.starredKeys, key)
		kept := s.starred[:0]
		for _, sc := range s.starred {
			if sc.Key() != key {
				kept = append(kept, sc)
			}
		}
		s.starred = kept
	} else {
		s.starredKeys[key] = true
		s.starred = append(s.starred, c.Clone())
	}
	s.persistStarred()
}

func (s *Session) findCard(id string) (card.Card, bool) {
	for _, c := range s.listCards {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range s.allCards {
		if c.ID == id {
			return c, true
		}
	}
	return card.Card{}, false
}

func (s *Session) persistStarred() {
	if s.settings == nil {
		return
	}
	keys := make([]string, 0, len(s.starred))
	for _, c := range s.starred {
		keys = append(keys, c.Key())
	}
	if err := s.settings.SaveStarred(keys, s.starred); err != nil {
		s.ErrorMessage = fmt.Sprintf("could not save favorites: %v", err)
	}
}

// IsStarred reports whether a card with the same content is starred.
func (s *Session) IsStarred(c card.Card) bool {
	return s.starredKeys[c.Key()]
}

// StarredCards returns the materialized favorites sequence.
func (s *Session) StarredCards() []card.Card {
	return s.starred
}

// ---------------------------------------------------------------------------
// Reveal tracking (list mode)

// ToggleReveal flips whether the card with the given identity token shows
// its definition in list mode.
func (s *Session) ToggleReveal(id string) {
	if s.revealed[id] {
		delete(s.revealed, id)
		return
	}
	s.revealed[id] = true
}

// RevealAll marks every list-mode card revealed.
func (s *Session) RevealAll() {
	for _, c := range s.listCards {
		s.revealed[c.ID] = true
	}
}

// ClearReveals hides every definition again.
func (s *Session) ClearReveals() {
	s.revealed = make(map[string]bool)
}

// IsRevealed reports the reveal state for an identity token.
func (s *Session) IsRevealed(id string) bool {
	return s.revealed[id]
}

// RevealedCount returns how many cards currently show their definition.
func (s *Session) RevealedCount() int {
	return len(s.revealed)
}

// ---------------------------------------------------------------------------
// Typed-answer checking

// CheckAnswer compares the typed input against the hidden side of the
// current card: the definition when terms show first, otherwise the term.
// Input is trimmed; the comparison is case-folded. No fuzzy matching.
func (s *Session) CheckAnswer(input string) {
	c, ok := s.CurrentCard()
	if !ok {
		return
	}
	target := c.Definition
	if !s.TermFirst {
		target = c.Term
	}
	s.AnswerChecked = true
	s.AnswerCorrect = strings.EqualFold(strings.TrimSpace(input), target)
}

// ---------------------------------------------------------------------------
// Search / filter

// SetSearch updates the list-mode filter query.
func (s *Session) SetSearch(q string) {
	s.searchQuery = q
}

// Search returns the current filter query.
func (s *Session) Search() string {
	return s.searchQuery
}

// FilteredListCards returns the list-mode cards matching the active search
// query by case-insensitive substring on either field. The underlying
// sequence is never mutated.
func (s *Session) FilteredListCards() []card.Card {
	q := strings.ToLower(strings.TrimSpace(s.searchQuery))
	if q == "" {
		return copyCards(s.listCards)
	}
	out := make([]card.Card, 0, len(s.listCards))
	for _, c := range s.listCards {
		if strings.Contains(strings.ToLower(c.Term), q) ||
			strings.Contains(strings.ToLower(c.Definition), q) {
			out = append(out, c)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Derived reads

// CurrentCard returns the card at the session index, if any.
func (s *Session) CurrentCard() (card.Card, bool) {
	if s.currentIndex < 0 || s.currentIndex >= len(s.activeCards) {
		return card.Card{}, false
	}
	return s.activeCards[s.currentIndex], true
}

// CurrentIndex returns the position within the active sequence.
func (s *Session) CurrentIndex() int {
	return s.currentIndex
}

// Cards returns the full derived card set in its current order.
func (s *Session) Cards() []card.Card {
	return s.allCards
}

// ListCards returns the list-mode sequence.
func (s *Session) ListCards() []card.Card {
	return s.listCards
}

// ActiveCards returns the sequence currently being studied.
func (s *Session) ActiveCards() []card.Card {
	return s.activeCards
}

// Dirty reports unsaved table edits.
func (s *Session) Dirty() bool {
	return s.dirty
}

// ---------------------------------------------------------------------------
// Recent decks

// RecentDecks returns the persisted most-recently-imported deck list.
func (s *Session) RecentDecks() []store.DeckRef {
	if s.settings == nil {
		return nil
	}
	return s.settings.RecentDecks()
}

// touchRecentDecks records a deck load. Re-opening a known path updates its
// entry in place without moving it; only first-time imports go to the front.
func (s *Session) touchRecentDecks(path string) {
	if s.settings == nil {
		return
	}
	refs := s.settings.RecentDecks()
	for i := range refs {
		if refs[i].Path == path {
			refs[i].LastOpened = s.now()
			if refs[i].Name == "" {
				refs[i].Name = deckName(path)
			}
			s.saveRecentDecks(refs)
			return
		}
	}
	refs = append([]store.DeckRef{{
		Path:       path,
		Name:       deckName(path),
		LastOpened: s.now(),
	}}, refs...)
	if len(refs) > store.MaxRecentDecks {
		refs = refs[:store.MaxRecentDecks]
	}
	s.saveRecentDecks(refs)
}

func (s *Session) saveRecentDecks(refs []store.DeckRef) {
	if err := s.settings.SaveRecentDecks(refs); err != nil {
		s.ErrorMessage = fmt.Sprintf("could not save recent decks: %v", err)
	}
}

// RenameDeck updates the display name of a recent deck entry.
func (s *Session) RenameDeck(path, name string) {
	if s.settings == nil {
		return
	}
	refs := s.settings.RecentDecks()
	for i := range refs {
		if refs[i].Path == path {
			refs[i].Name = name
			s.saveRecentDecks(refs)
			return
		}
	}
}

func deckName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func copyCards(in []card.Card) []card.Card {
	return append([]card.Card(nil), in...)
}
