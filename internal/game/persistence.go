package game

import "context"

// SavedDeckKey is the slot name a deck is persisted under.
const SavedDeckKey = "inwoDeck"

// SavedDeck is the persisted form of a built deck: the owning faction and the
// ordered card identifiers.
type SavedDeck struct {
	FactionID string   `json:"factionId"`
	CardIDs   []string `json:"deck"`
}

// DeckStore persists a single deck slot. The last successful save wins.
type DeckStore interface {
	SaveDeck(ctx context.Context, factionID string, cardIDs []string) error
	// LoadDeck returns ok=false when nothing has been saved.
	LoadDeck(ctx context.Context) (deck SavedDeck, ok bool, err error)
}

// ResolveSavedDeck maps the saved identifiers to catalog cards. Identifiers
// the catalog does not know are dropped; order is kept.
func ResolveSavedDeck(c *Catalog, saved SavedDeck) []Card {
	return c.Resolve(saved.CardIDs)
}

// LoadResolvedDeck loads the slot and resolves it in one step. The faction is
// nil when the saved faction id does not name a faction in the catalog.
func LoadResolvedDeck(ctx context.Context, store DeckStore, c *Catalog) (*FactionCard, []Card, bool, error) {
	saved, ok, err := store.LoadDeck(ctx)
	if err != nil || !ok {
		return nil, nil, ok, err
	}
	f, _ := c.Faction(saved.FactionID)
	return f, ResolveSavedDeck(c, saved), true, nil
}
