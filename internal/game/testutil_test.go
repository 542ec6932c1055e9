package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/peterkuimelis/inwo/internal/log"
)

// --- Card helpers ---

func testGroup(id string, income int) *GroupCard {
	return &GroupCard{
		BaseCard:   BaseCard{ID: id, Name: "Group " + id, Type: TypeGroup},
		Power:      3,
		Resistance: 3,
		Income:     income,
		Alignments: []string{"Weird"},
	}
}

func testPlot(id string) *EventCard {
	return &EventCard{BaseCard: BaseCard{ID: id, Name: "Plot " + id, Type: TypePlot}}
}

func testFaction(id, power string) *FactionCard {
	return &FactionCard{
		BaseCard: BaseCard{ID: id, Name: "Faction " + id, Type: TypeFaction},
		Rarity:   "I",
		Power:    power,
	}
}

// makeDeck builds groups distinct group cards followed by plots distinct plots.
func makeDeck(groups, plots int) []Card {
	var deck []Card
	for i := 0; i < groups; i++ {
		deck = append(deck, testGroup(fmt.Sprintf("g%d", i), 1))
	}
	for i := 0; i < plots; i++ {
		deck = append(deck, testPlot(fmt.Sprintf("p%d", i)))
	}
	return deck
}

func mustCatalog(t *testing.T, cards ...Card) *Catalog {
	t.Helper()
	c, err := NewCatalog(cards)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// newTestMatch creates a deterministic match on the default catalog with the
// player's faction saved.
func newTestMatch(t *testing.T) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	m, err := NewMatch(MatchConfig{
		Saved:     &SavedDeck{FactionID: "bavarian-illuminati", CardIDs: PrebuiltDeck("bavarian-illuminati")},
		Logger:    logger,
		NoShuffle: true,
	})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		}
	})
	return m, logger
}

// --- In-memory DeckStore ---

type memStore struct {
	saved *SavedDeck
	err   error
}

func (s *memStore) SaveDeck(_ context.Context, factionID string, ids []string) error {
	if s.err != nil {
		return s.err
	}
	s.saved = &SavedDeck{FactionID: factionID, CardIDs: append([]string(nil), ids...)}
	return nil
}

func (s *memStore) LoadDeck(context.Context) (SavedDeck, bool, error) {
	if s.err != nil {
		return SavedDeck{}, false, s.err
	}
	if s.saved == nil {
		return SavedDeck{}, false, nil
	}
	return *s.saved, true, nil
}

func ids(cards []Card) []string { return CardIDs(cards) }
