package game

import (
	"math/rand"
	"time"

	"github.com/peterkuimelis/inwo/internal/log"
)

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Catalog   *Catalog   // nil uses DefaultCatalog
	Saved     *SavedDeck // the player's saved deck, if any
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // keep catalog order (for deterministic tests)
}

// NewGameState builds the opening snapshot of a match: factions resolved,
// main deck shuffled, opening hands dealt, money seeded from faction power.
// It only fails when the catalog has no faction cards at all.
func NewGameState(cfg MatchConfig) (GameState, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}

	var gs GameState

	// Player faction and built deck
	if cfg.Saved != nil && cfg.Saved.FactionID != "" {
		if f, ok := cat.Faction(cfg.Saved.FactionID); ok {
			gs.PlayerFaction = f
			gs.PlayerDeck = ResolveSavedDeck(cat, *cfg.Saved)
		}
	}
	if gs.PlayerFaction == nil {
		f, err := defaultFaction(cat, DefaultPlayerFaction)
		if err != nil {
			return GameState{}, err
		}
		gs.PlayerFaction = f
		gs.PlayerDeck = cat.Pool()
		logger.Log(log.NewFallbackEvent(fallbackReason(cfg.Saved), f.Name))
	}

	opp, err := defaultFaction(cat, DefaultOpponentFaction)
	if err != nil {
		return GameState{}, err
	}
	if opp.ID != DefaultOpponentFaction {
		logger.Log(log.NewFallbackEvent("opponent faction "+DefaultOpponentFaction+" missing from catalog", opp.Name))
	}
	gs.OpponentFaction = opp

	// Shared main deck: every non-faction card
	deck := cat.Pool()
	if !cfg.NoShuffle {
		Shuffle(deck, newRand(cfg.Seed))
	}

	// Opening hands
	var hand, short []Card
	deck, hand = drawMatching(deck, nil, KindGroupLike, OpeningGroupDraw)
	if n := len(hand); n < OpeningGroupDraw {
		logger.Log(log.NewShortDrawEvent(log.SidePlayer, "group-like", OpeningGroupDraw, n))
	}
	before := len(hand)
	deck, hand = drawMatching(deck, hand, KindEventLike, OpeningEventDraw)
	if n := len(hand) - before; n < OpeningEventDraw {
		logger.Log(log.NewShortDrawEvent(log.SidePlayer, "event-like", OpeningEventDraw, n))
	}
	gs.PlayerHand = hand

	deck, short, _ = DrawCards(deck, nil, OpponentOpening)
	if n := len(short); n < OpponentOpening {
		logger.Log(log.NewShortDrawEvent(log.SideOpponent, "any", OpponentOpening, n))
	}
	gs.OpponentHand = short
	gs.MainDeck = deck
	gs.DiscardPile = []Card{}

	gs.PlayerField = []Card{gs.PlayerFaction}
	gs.OpponentField = []Card{gs.OpponentFaction}
	gs.PlayerMoney = gs.PlayerFaction.StartingMoney()
	gs.OpponentMoney = gs.OpponentFaction.StartingMoney()

	gs.Phase = PhaseCollectIncome
	gs.Turn = 1
	gs.Log = []string{
		"Game started!",
		"Player chose " + gs.PlayerFaction.Name + ".",
		"Opponent chose " + gs.OpponentFaction.Name + ".",
	}

	logger.Log(log.NewGameStartEvent(gs.PlayerFaction.Name, gs.OpponentFaction.Name))
	return gs, nil
}

func fallbackReason(saved *SavedDeck) string {
	switch {
	case saved == nil:
		return "no saved deck"
	case saved.FactionID == "":
		return "saved deck has no faction"
	default:
		return "saved faction " + saved.FactionID + " is not a faction card"
	}
}

// defaultFaction resolves id, falling back to the first faction in the catalog.
func defaultFaction(cat *Catalog, id string) (*FactionCard, error) {
	if f, ok := cat.Faction(id); ok {
		return f, nil
	}
	all := cat.Factions()
	if len(all) == 0 {
		return nil, ErrNoFactions
	}
	return all[0], nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes cards in place with a uniform Fisher–Yates shuffle.
func Shuffle(cards []Card, r *rand.Rand) {
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// drawMatching moves up to n cards of the given kind from deck to hand,
// scanning from the front. Both returned slices are new.
func drawMatching(deck, hand []Card, k Kind, n int) ([]Card, []Card) {
	newDeck := make([]Card, 0, len(deck))
	newHand := cloneCards(hand)
	taken := 0
	for _, c := range deck {
		if taken < n && KindOf(c) == k {
			newHand = append(newHand, c)
			taken++
			continue
		}
		newDeck = append(newDeck, c)
	}
	return newDeck, newHand
}
