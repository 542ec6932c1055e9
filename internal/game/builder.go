package game

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrFactionInPool   = errors.New("faction cards cannot be added to a deck")
	ErrUniqueLimit     = errors.New("unique card limit reached")
	ErrCopyLimit       = errors.New("copy limit reached")
	ErrFactionMismatch = errors.New("saved deck belongs to another faction")
	ErrNotInDeck       = errors.New("card not in deck")
)

// DeckSource says where an opened deck came from.
type DeckSource int

const (
	SourceEmpty DeckSource = iota
	SourceSaved
	SourcePrebuilt
)

func (s DeckSource) String() string {
	switch s {
	case SourceSaved:
		return "saved"
	case SourcePrebuilt:
		return "prebuilt"
	default:
		return "empty"
	}
}

// DeckBuilder edits a deck for one faction. Every mutation keeps the copy
// limits, so a deck built here can only fail the size and ratio rules.
type DeckBuilder struct {
	Faction *FactionCard
	Source  DeckSource
	catalog *Catalog
	cards   []Card
}

// NewDeckBuilder starts an empty deck for a faction.
func NewDeckBuilder(c *Catalog, faction *FactionCard) *DeckBuilder {
	return &DeckBuilder{Faction: faction, catalog: c}
}

// OpenDeckBuilder opens the deck to edit for a faction: the saved deck when it
// belongs to this faction and is non-empty, else the prebuilt starter deck,
// else an empty deck. A store error is returned alongside the fallback deck.
func OpenDeckBuilder(ctx context.Context, store DeckStore, c *Catalog, factionID string) (*DeckBuilder, error) {
	f, ok := c.Faction(factionID)
	if !ok {
		return nil, fmt.Errorf("%w: faction %q", ErrUnknownCard, factionID)
	}
	b := NewDeckBuilder(c, f)

	var loadErr error
	if store != nil {
		saved, ok, err := store.LoadDeck(ctx)
		loadErr = err
		if err == nil && ok && saved.FactionID == factionID {
			if cards := ResolveSavedDeck(c, saved); len(cards) > 0 {
				b.cards = cards
				b.Source = SourceSaved
				return b, nil
			}
		}
	}
	if cards := c.Resolve(PrebuiltDeck(factionID)); len(cards) > 0 {
		b.cards = cards
		b.Source = SourcePrebuilt
	}
	if loadErr != nil {
		return b, fmt.Errorf("load saved deck: %w", loadErr)
	}
	return b, nil
}

// Add appends one copy of the card, refusing faction cards and copies beyond
// the card's limit.
func (b *DeckBuilder) Add(id string) error {
	card, ok := b.catalog.Card(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	if KindOf(card) == KindFaction {
		return fmt.Errorf("%w: %s", ErrFactionInPool, card.CardName())
	}
	have := b.Count(id)
	if have >= CopyLimit(card) {
		if card.IsUnique() {
			return fmt.Errorf("%w: %s", ErrUniqueLimit, card.CardName())
		}
		return fmt.Errorf("%w: %s already has %d copies", ErrCopyLimit, card.CardName(), have)
	}
	b.cards = append(b.cards, card)
	return nil
}

// Remove takes out the last copy of the card.
func (b *DeckBuilder) Remove(id string) error {
	for i := len(b.cards) - 1; i >= 0; i-- {
		if b.cards[i].CardID() == id {
			b.cards = removeAt(b.cards, i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotInDeck, id)
}

// Clear empties the deck.
func (b *DeckBuilder) Clear() {
	b.cards = nil
	b.Source = SourceEmpty
}

// Count returns how many copies of id the deck holds.
func (b *DeckBuilder) Count(id string) int {
	n := 0
	for _, c := range b.cards {
		if c.CardID() == id {
			n++
		}
	}
	return n
}

func (b *DeckBuilder) Cards() []Card { return cloneCards(b.cards) }
func (b *DeckBuilder) IDs() []string { return CardIDs(b.cards) }
func (b *DeckBuilder) Len() int      { return len(b.cards) }

// Validate runs the deck rules on the current contents.
func (b *DeckBuilder) Validate() ValidationResult {
	return ValidateDeck(b.Faction, b.cards)
}

// LoadSaved replaces the contents with the saved deck. It fails with
// ErrFactionMismatch when the slot belongs to another faction, and reports
// false when nothing is saved.
func (b *DeckBuilder) LoadSaved(ctx context.Context, store DeckStore) (bool, error) {
	saved, ok, err := store.LoadDeck(ctx)
	if err != nil {
		return false, fmt.Errorf("load saved deck: %w", err)
	}
	if !ok {
		return false, nil
	}
	if saved.FactionID != b.Faction.ID {
		return false, fmt.Errorf("%w: slot holds %q, editing %q", ErrFactionMismatch, saved.FactionID, b.Faction.ID)
	}
	b.cards = ResolveSavedDeck(b.catalog, saved)
	b.Source = SourceSaved
	return true, nil
}

// Save writes the current contents to the store under this faction.
func (b *DeckBuilder) Save(ctx context.Context, store DeckStore) error {
	if err := store.SaveDeck(ctx, b.Faction.ID, b.IDs()); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}
