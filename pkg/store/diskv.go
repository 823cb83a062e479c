package store

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/pkheisig/lexiflow/pkg/card"
)

// Load creates a Settings backed by diskv using the provided config. A nil
// config falls back to LoadConfig.
func Load(cfg Config) (Settings, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	return &settings{d: diskv.New(diskv.Options{
		BasePath:          cfg.BasePath(),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

// Keys are slash-separated; the last segment becomes the file name.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	last := len(parts) - 1
	return &diskv.PathKey{
		Path:     parts[:last],
		FileName: parts[last] + ".json",
	}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, ".json")
	if len(pk.Path) == 0 {
		return name
	}
	return strings.Join(pk.Path, "/") + "/" + name
}

const (
	keyLastDeck     = "state/last-deck"
	keyRecentDecks  = "state/recent-decks"
	keyTheme        = "state/theme"
	keyStarredKeys  = "starred/keys"
	keyStarredCards = "starred/cards"
)

type settings struct {
	d *diskv.Diskv
}

// read unmarshals the value at key into target, reporting false when the key
// is absent or the payload does not parse.
func (s *settings) read(key string, target interface{}) bool {
	val, err := s.d.Read(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(val, target) == nil
}

func (s *settings) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, data)
}

func (s *settings) LastDeck() string {
	var path string
	s.read(keyLastDeck, &path)
	return path
}

func (s *settings) SetLastDeck(path string) error {
	return s.write(keyLastDeck, path)
}

func (s *settings) RecentDecks() []DeckRef {
	var refs []DeckRef
	s.read(keyRecentDecks, &refs)
	if len(refs) > MaxRecentDecks {
		refs = refs[:MaxRecentDecks]
	}
	return refs
}

func (s *settings) SaveRecentDecks(refs []DeckRef) error {
	if len(refs) > MaxRecentDecks {
		refs = refs[:MaxRecentDecks]
	}
	return s.write(keyRecentDecks, refs)
}

func (s *settings) Starred() ([]string, []card.Card) {
	var keys []string
	var cards []card.Card
	s.read(keyStarredKeys, &keys)
	s.read(keyStarredCards, &cards)
	return keys, cards
}

func (s *settings) SaveStarred(keys []string, cards []card.Card) error {
	if err := s.write(keyStarredKeys, keys); err != nil {
		return err
	}
	return s.write(keyStarredCards, cards)
}

// Deck paths can hold separators and other characters diskv keys cannot, so
// per-deck order keys hash the path.
func orderKey(path string) string {
	sum := md5.Sum([]byte(path))
	return "order/" + hex.EncodeToString(sum[:])
}

func (s *settings) DeckOrder(path string) []string {
	var keys []string
	s.read(orderKey(path), &keys)
	return keys
}

func (s *settings) SaveDeckOrder(path string, keys []string) error {
	return s.write(orderKey(path), keys)
}

func (s *settings) ClearDeckOrder(path string) error {
	key := orderKey(path)
	if !s.d.Has(key) {
		// Clearing an order that was never saved is not a failure.
		return nil
	}
	return s.d.Erase(key)
}

func (s *settings) Theme() string {
	var name string
	s.read(keyTheme, &name)
	return name
}

func (s *settings) SetTheme(name string) error {
	return s.write(keyTheme, name)
}
