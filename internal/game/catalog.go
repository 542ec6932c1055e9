package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCard = errors.New("unknown card")
	ErrNoFactions  = errors.New("catalog has no faction cards")
)

// Catalog is a read-only set of card definitions addressable by identifier.
type Catalog struct {
	cards []Card
	byID  map[string]Card
}

// NewCatalog indexes cards by identifier. Identifiers must be unique and
// non-empty.
func NewCatalog(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards: make([]Card, 0, len(cards)),
		byID:  make(map[string]Card, len(cards)),
	}
	for _, card := range cards {
		if card == nil {
			continue
		}
		id := card.CardID()
		if id == "" {
			return nil, fmt.Errorf("card %q has no id", card.CardName())
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate card id %q", id)
		}
		c.byID[id] = card
		c.cards = append(c.cards, card)
	}
	return c, nil
}

// Len returns the number of card definitions.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Card looks a card up by identifier.
func (c *Catalog) Card(id string) (Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// MustCard looks a card up by identifier and panics if it is missing.
// Intended for static data and tests.
func (c *Catalog) MustCard(id string) Card {
	card, ok := c.byID[id]
	if !ok {
		panic(fmt.Sprintf("card not found in catalog: %q", id))
	}
	return card
}

// Faction resolves id to a faction card. It fails when the id is unknown or
// names a card of another type.
func (c *Catalog) Faction(id string) (*FactionCard, bool) {
	f, ok := c.byID[id].(*FactionCard)
	return f, ok
}

// Cards returns every card in catalog order.
func (c *Catalog) Cards() []Card {
	return cloneCards(c.cards)
}

// ByKind returns the cards of one structural family in catalog order.
func (c *Catalog) ByKind(k Kind) []Card {
	var out []Card
	for _, card := range c.cards {
		if KindOf(card) == k {
			out = append(out, card)
		}
	}
	return out
}

// ByType returns the cards with the given type tag in catalog order.
func (c *Catalog) ByType(t CardType) []Card {
	var out []Card
	for _, card := range c.cards {
		if card.CardType() == t {
			out = append(out, card)
		}
	}
	return out
}

// Factions returns every faction card in catalog order.
func (c *Catalog) Factions() []*FactionCard {
	var out []*FactionCard
	for _, card := range c.cards {
		if f, ok := card.(*FactionCard); ok {
			out = append(out, f)
		}
	}
	return out
}

// Pool returns every card eligible for deck building: all group-like and
// event-like cards, in catalog order.
func (c *Catalog) Pool() []Card {
	var out []Card
	for _, card := range c.cards {
		switch KindOf(card) {
		case KindGroupLike, KindEventLike:
			out = append(out, card)
		}
	}
	return out
}

// Resolve maps identifiers to cards, silently dropping ids the catalog does
// not know. Order and duplicates are preserved.
func (c *Catalog) Resolve(ids []string) []Card {
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := c.byID[id]; ok {
			out = append(out, card)
		}
	}
	return out
}

// ResolveStrict maps identifiers to cards and fails on the first unknown id.
func (c *Catalog) ResolveStrict(ids []string) ([]Card, error) {
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		card, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCard, id)
		}
		out = append(out, card)
	}
	return out, nil
}

// Extend returns a new catalog with extra cards appended. Cards whose id is
// already present are skipped.
func (c *Catalog) Extend(extra ...Card) *Catalog {
	out := &Catalog{
		cards: cloneCards(c.cards),
		byID:  make(map[string]Card, len(c.byID)+len(extra)),
	}
	for id, card := range c.byID {
		out.byID[id] = card
	}
	for _, card := range extra {
		if card == nil {
			continue
		}
		if _, dup := out.byID[card.CardID()]; dup {
			continue
		}
		out.byID[card.CardID()] = card
		out.cards = append(out.cards, card)
	}
	return out
}
