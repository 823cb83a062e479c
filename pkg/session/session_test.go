package session

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkheisig/lexiflow/pkg/card"
	"github.com/pkheisig/lexiflow/pkg/store"
)

// memorySettings fakes the persistence backend so sessions can be tested
// without a real settings database.
type memorySettings struct {
	lastDeck     string
	recent       []store.DeckRef
	starredKeys  []string
	starredCards []card.Card
	orders       map[string][]string
	theme        string
}

func newMemorySettings() *memorySettings {
	return &memorySettings{orders: make(map[string][]string)}
}

func (m *memorySettings) LastDeck() string           { return m.lastDeck }
func (m *memorySettings) SetLastDeck(p string) error { m.lastDeck = p; return nil }
func (m *memorySettings) RecentDecks() []store.DeckRef {
	return append([]store.DeckRef(nil), m.recent...)
}
func (m *memorySettings) SaveRecentDecks(refs []store.DeckRef) error {
	m.recent = append([]store.DeckRef(nil), refs...)
	return nil
}
func (m *memorySettings) Starred() ([]string, []card.Card) {
	return append([]string(nil), m.starredKeys...), append([]card.Card(nil), m.starredCards...)
}
func (m *memorySettings) SaveStarred(keys []string, cards []card.Card) error {
	m.starredKeys = append([]string(nil), keys...)
	m.starredCards = append([]card.Card(nil), cards...)
	return nil
}
func (m *memorySettings) DeckOrder(path string) []string { return m.orders[path] }
func (m *memorySettings) SaveDeckOrder(path string, keys []string) error {
	m.orders[path] = append([]string(nil), keys...)
	return nil
}
func (m *memorySettings) ClearDeckOrder(path string) error {
	delete(m.orders, path)
	return nil
}
func (m *memorySettings) Theme() string           { return m.theme }
func (m *memorySettings) SetTheme(n string) error { m.theme = n; return nil }

func writeDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return path
}

func loadedSession(t *testing.T, m *memorySettings, content string) *Session {
	t.Helper()
	s := New(m)
	s.SetRand(rand.New(rand.NewSource(1)))
	s.LoadFromPath(writeDeck(t, "deck.csv", content))
	if s.ErrorMessage != "" {
		t.Fatalf("load failed: %s", s.ErrorMessage)
	}
	return s
}

func terms(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Term)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadGeneratesCardsInRowOrder(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Word,Meaning\ncat,a feline\ndog,a canine\n")
	cards := s.Cards()
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Term != "cat" || cards[0].Definition != "a feline" {
		t.Fatalf("unexpected card 0: %+v", cards[0])
	}
	if cards[1].Term != "dog" || cards[1].Definition != "a canine" {
		t.Fatalf("unexpected card 1: %+v", cards[1])
	}
}

func TestLoadAutoDetectsColumns(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Extra,My Definitions,The Term\nx,a feline,cat\n")
	if s.TermColumn != 2 {
		t.Fatalf("term column not detected: %d", s.TermColumn)
	}
	if s.DefColumn != 1 {
		t.Fatalf("definition column not detected: %d", s.DefColumn)
	}
	c, ok := s.CurrentCard()
	if !ok || c.Term != "cat" || c.Definition != "a feline" {
		t.Fatalf("unexpected current card: %+v", c)
	}
}

func TestLoadSingleColumnMapsBothRolesToZero(t *testing.T) {
	s := New(newMemorySettings())
	s.LoadFromPath(writeDeck(t, "deck.csv", "Word\ncat\n"))
	if s.TermColumn != 0 || s.DefColumn != 0 {
		t.Fatalf("expected 0/0 mapping, got %d/%d", s.TermColumn, s.DefColumn)
	}
}

func TestLoadFailureLeavesStateUntouched(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Word,Meaning\ncat,a feline\n")
	before := terms(s.Cards())
	path := s.Path

	s.LoadFromPath(filepath.Join(t.TempDir(), "missing.csv"))
	if s.ErrorMessage == "" {
		t.Fatalf("expected an error message")
	}
	if s.Path != path {
		t.Fatalf("path mutated on failed load")
	}
	if !equalStrings(terms(s.Cards()), before) {
		t.Fatalf("cards mutated on failed load")
	}
}

func TestImportFileRejectsUnsupportedExtension(t *testing.T) {
	s := New(newMemorySettings())
	s.ImportFile("/tmp/deck.pdf")
	if s.ErrorMessage == "" {
		t.Fatalf("expected unsupported file type error")
	}
	if len(s.Cards()) != 0 {
		t.Fatalf("state changed for rejected import")
	}
}

func TestRegenerateExcludesIncompleteRows(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\n,x\ny,\ncat,a feline\n")
	cards := s.Cards()
	if len(cards) != 1 || cards[0].Term != "cat" {
		t.Fatalf("empty-field rows must be excluded: %v", terms(cards))
	}
}

func TestRegenerateIsIdempotent(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\ncat,a feline\ndog,a canine\n")
	first := terms(s.Cards())
	s.RegenerateCards()
	if !equalStrings(terms(s.Cards()), first) {
		t.Fatalf("regenerate changed the sequence: %v vs %v", first, terms(s.Cards()))
	}
}

func TestRemapColumnAndRegenerate(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "a,b,c\n1,2,3\n")
	s.RemapColumn(RoleTerm, 2)
	s.RemapColumn(RoleDefinition, 0)
	s.RegenerateCards()
	c, ok := s.CurrentCard()
	if !ok || c.Term != "3" || c.Definition != "1" {
		t.Fatalf("remap not applied: %+v", c)
	}
	s.RemapColumn(RoleTerm, 9) // out of range, ignored
	if s.TermColumn != 2 {
		t.Fatalf("out of range remap applied")
	}
}

func TestNextWrapsByRestartingSession(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\na,1\nb,2\n")
	s.ToggleReveal(s.ListCards()[0].ID)
	s.Flip()
	s.Next()
	if s.CurrentIndex() != 1 || s.Flipped {
		t.Fatalf("next did not advance and clear flip state")
	}
	s.Next() // at last card: restart
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected restart to index 0, got %d", s.CurrentIndex())
	}
	if s.RevealedCount() != 0 {
		t.Fatalf("expected reveal state cleared on restart")
	}
}

func TestPreviousClampsAtZero(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\na,1\nb,2\n")
	s.Previous()
	if s.CurrentIndex() != 0 {
		t.Fatalf("previous must clamp at 0")
	}
	s.Next()
	s.Previous()
	if s.CurrentIndex() != 0 {
		t.Fatalf("previous did not step back")
	}
}

func TestShuffleActiveLeavesListOrder(t *testing.T) {
	s := loadedSession(t, newMemorySettings(),
		"Term,Definition\na,1\nb,2\nc,3\nd,4\ne,5\nf,6\n")
	listBefore := terms(s.ListCards())
	s.ShuffleActive()
	if !equalStrings(terms(s.ListCards()), listBefore) {
		t.Fatalf("shuffleActive must not touch list order")
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("shuffle must reset index")
	}
}

func TestShuffleListModePersistsOrder(t *testing.T) {
	m := newMemorySettings()
	content := "Term,Definition\na,1\nb,2\nc,3\nd,4\ne,5\nf,6\n"
	s := loadedSession(t, m, content)
	path := s.Path

	s.ShuffleListMode()
	shuffled := terms(s.ListCards())
	if !equalStrings(terms(s.ActiveCards()), shuffled) {
		t.Fatalf("list shuffle must mirror into active")
	}

	// A fresh session over the same path reproduces the shuffled order.
	s2 := New(m)
	s2.LoadFromPath(path)
	if !equalStrings(terms(s2.ListCards()), shuffled) {
		t.Fatalf("persisted order not applied: %v vs %v", terms(s2.ListCards()), shuffled)
	}
}

func TestStaleSavedOrderAppendsUnknownCards(t *testing.T) {
	m := newMemorySettings()
	path := writeDeck(t, "deck.csv", "Term,Definition\na,1\nb,2\nc,3\n")
	// Stale order: refers to b and a only, and to a card no longer present.
	m.orders[path] = []string{"gone|0", "b|2", "a|1"}

	s := New(m)
	s.LoadFromPath(path)
	if got := terms(s.ListCards()); !equalStrings(got, []string{"b", "a", "c"}) {
		t.Fatalf("stale order handling wrong: %v", got)
	}
}

func TestResetListOrderClearsOverride(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Term,Definition\na,1\nb,2\nc,3\nd,4\n")
	s.ShuffleListMode()
	if len(m.orders[s.Path]) == 0 {
		t.Fatalf("shuffle did not persist an order")
	}
	s.ResetListOrder()
	if len(m.orders[s.Path]) != 0 {
		t.Fatalf("reset did not clear the override")
	}
	if got := terms(s.ListCards()); !equalStrings(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("reset did not restore import order: %v", got)
	}
}

func TestToggleStarTwiceRestoresState(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Term,Definition\ncat,a feline\n")
	id := s.ListCards()[0].ID

	s.ToggleStar(id)
	if !s.IsStarred(s.ListCards()[0]) {
		t.Fatalf("card not starred")
	}
	if len(s.StarredCards()) != 1 {
		t.Fatalf("expected one materialized favorite")
	}
	if s.StarredCards()[0].ID == id {
		t.Fatalf("favorite must be a fresh instance, not the deck card")
	}

	s.ToggleStar(id)
	if s.IsStarred(s.ListCards()[0]) {
		t.Fatalf("second toggle did not unstar")
	}
	if len(s.StarredCards()) != 0 {
		t.Fatalf("duplicate favorites left behind: %v", s.StarredCards())
	}
	if len(m.starredKeys) != 0 {
		t.Fatalf("persisted keys not cleared: %v", m.starredKeys)
	}
}

func TestStarredPersistsAcrossSessions(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Term,Definition\ncat,a feline\n")
	s.ToggleStar(s.ListCards()[0].ID)

	s2 := New(m)
	s2.LoadFromPath(writeDeck(t, "other.csv", "Term,Definition\ncat,a feline\ndog,a canine\n"))
	if !s2.IsStarred(s2.ListCards()[0]) {
		t.Fatalf("content key must match across reloads")
	}
	if s2.IsStarred(s2.ListCards()[1]) {
		t.Fatalf("unstarred card reported starred")
	}
}

func TestEnterAndExitFavorites(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Term,Definition\na,1\nb,2\nc,3\n")
	path := s.Path

	s.EnterFavorites() // empty favorites: no-op
	if s.InFavorites() {
		t.Fatalf("entering empty favorites must be a no-op")
	}

	s.ToggleStar(s.ListCards()[1].ID)
	s.Next()
	s.EnterFavorites()
	if !s.InFavorites() {
		t.Fatalf("expected favorites active")
	}
	if got := terms(s.ListCards()); !equalStrings(got, []string{"b"}) {
		t.Fatalf("favorites sequence wrong: %v", got)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("index must reset entering favorites")
	}

	s.EnterFavorites() // already in favorites: no-op
	if got := len(s.ListCards()); got != 1 {
		t.Fatalf("re-entering favorites mutated state: %d cards", got)
	}

	s.ExitFavorites()
	if s.InFavorites() {
		t.Fatalf("expected favorites inactive")
	}
	if s.Path != path {
		t.Fatalf("path not restored: %q", s.Path)
	}
	if got := terms(s.ListCards()); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Fatalf("deck not restored: %v", got)
	}
	if s.CurrentIndex() != 1 {
		t.Fatalf("index not restored: %d", s.CurrentIndex())
	}

	s.ExitFavorites() // no snapshot: no-op
	if got := terms(s.ListCards()); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Fatalf("exit without snapshot mutated state: %v", got)
	}
}

func TestDeleteColumnShiftsMapping(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "a,Term,Definition\nx,cat,a feline\n")
	if s.TermColumn != 1 || s.DefColumn != 2 {
		t.Fatalf("unexpected initial mapping %d/%d", s.TermColumn, s.DefColumn)
	}
	s.DeleteColumn(0)
	if s.TermColumn != 0 || s.DefColumn != 1 {
		t.Fatalf("mappings not shifted: %d/%d", s.TermColumn, s.DefColumn)
	}
	s.DeleteColumn(0) // deletes the mapped term column
	if s.TermColumn != 0 {
		t.Fatalf("deleted role must reset to 0: %d", s.TermColumn)
	}
	if s.DefColumn != 0 {
		t.Fatalf("definition mapping must shift down: %d", s.DefColumn)
	}
	if !s.Dirty() {
		t.Fatalf("edits must mark the deck dirty")
	}
}

func TestEditAndSaveRoundTrip(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Term,Definition\ncat,a feline\n")
	s.AppendRow()
	s.SetCell(1, 0, "dog")
	s.SetCell(1, 1, "a canine")
	s.SetHeader(0, "Word")
	if !s.Dirty() {
		t.Fatalf("edits must mark dirty")
	}
	s.Save()
	if s.ErrorMessage != "" {
		t.Fatalf("save failed: %s", s.ErrorMessage)
	}
	if s.Dirty() {
		t.Fatalf("save must clear dirty")
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != "Word,Definition\ncat,a feline\ndog,a canine\n" {
		t.Fatalf("unexpected serialization: %q", raw)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\ncat,a feline\n")
	s.SetCell(0, 0, "bat")
	s.Path = filepath.Join(t.TempDir(), "missing-dir", "deck.csv")
	s.Save()
	if s.ErrorMessage == "" {
		t.Fatalf("expected a save error")
	}
	if !s.Dirty() {
		t.Fatalf("dirty flag must survive a failed save")
	}
}

func TestCheckAnswer(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\ncat,a feline\n")
	s.CheckAnswer("  A FELINE ")
	if !s.AnswerChecked || !s.AnswerCorrect {
		t.Fatalf("trimmed case-folded answer must match")
	}
	s.CheckAnswer("a cat")
	if s.AnswerCorrect {
		t.Fatalf("wrong answer reported correct")
	}
	s.TermFirst = false
	s.CheckAnswer("cat")
	if !s.AnswerCorrect {
		t.Fatalf("definition-first must check against the term")
	}
	s.Next()
	if s.AnswerChecked {
		t.Fatalf("navigation must clear answer state")
	}
}

func TestFilteredListCards(t *testing.T) {
	s := loadedSession(t, newMemorySettings(),
		"Term,Definition\ncat,a feline\ndog,a canine\ncanary,a bird\n")
	s.SetSearch("can")
	got := terms(s.FilteredListCards())
	if !equalStrings(got, []string{"dog", "canary"}) {
		t.Fatalf("unexpected filter result: %v", got)
	}
	if len(s.ListCards()) != 3 {
		t.Fatalf("filter must not mutate the underlying sequence")
	}
	s.SetSearch("")
	if len(s.FilteredListCards()) != 3 {
		t.Fatalf("empty query must return everything")
	}
}

func TestRevealTracking(t *testing.T) {
	s := loadedSession(t, newMemorySettings(), "Term,Definition\na,1\nb,2\n")
	id := s.ListCards()[0].ID
	s.ToggleReveal(id)
	if !s.IsRevealed(id) {
		t.Fatalf("toggle did not reveal")
	}
	s.ToggleReveal(id)
	if s.IsRevealed(id) {
		t.Fatalf("toggle did not hide")
	}
	s.RevealAll()
	if s.RevealedCount() != 2 {
		t.Fatalf("revealAll missed cards: %d", s.RevealedCount())
	}
	s.ClearReveals()
	if s.RevealedCount() != 0 {
		t.Fatalf("clear left reveals behind")
	}
	s.RevealAll()
	s.ShuffleListMode()
	if s.RevealedCount() != 0 {
		t.Fatalf("reshuffle must reset reveal state")
	}
}

func TestRecentDecksOrdering(t *testing.T) {
	m := newMemorySettings()
	s := New(m)
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first := writeDeck(t, "first.csv", "Term,Definition\na,1\n")
	second := writeDeck(t, "second.csv", "Term,Definition\nb,2\n")
	s.LoadFromPath(first)
	s.LoadFromPath(second)

	refs := s.RecentDecks()
	if len(refs) != 2 || refs[0].Path != second || refs[1].Path != first {
		t.Fatalf("new imports must go to the front: %+v", refs)
	}

	// Re-opening updates in place without reordering.
	opened := refs[1].LastOpened
	s.LoadFromPath(first)
	refs = s.RecentDecks()
	if refs[0].Path != second || refs[1].Path != first {
		t.Fatalf("re-open must not reorder: %+v", refs)
	}
	if !refs[1].LastOpened.After(opened) {
		t.Fatalf("re-open must refresh the timestamp")
	}
	if m.lastDeck != first {
		t.Fatalf("last deck not persisted: %q", m.lastDeck)
	}
}

func TestRecentDecksCap(t *testing.T) {
	m := newMemorySettings()
	s := New(m)
	for i := 0; i < store.MaxRecentDecks+2; i++ {
		name := string(rune('a'+i)) + ".csv"
		s.LoadFromPath(writeDeck(t, name, "Term,Definition\nx,1\n"))
	}
	if got := len(s.RecentDecks()); got != store.MaxRecentDecks {
		t.Fatalf("expected cap of %d, got %d", store.MaxRecentDecks, got)
	}
}

func TestRenameDeck(t *testing.T) {
	m := newMemorySettings()
	s := loadedSession(t, m, "Term,Definition\na,1\n")
	s.RenameDeck(s.Path, "Animals")
	refs := s.RecentDecks()
	if len(refs) != 1 || refs[0].Name != "Animals" {
		t.Fatalf("rename not applied: %+v", refs)
	}
}
