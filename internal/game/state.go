package game

import "fmt"

const (
	OpeningGroupDraw = 4
	OpeningEventDraw = 4
	OpponentOpening  = 8
	BuyCardCost      = 2
	OpponentIncome   = 2
	OpponentDraw     = 1

	DefaultPlayerFaction   = "bavarian-illuminati"
	DefaultOpponentFaction = "servants-of-cthulhu"
)

// --- Phase ---

type Phase int

const (
	PhaseCollectIncome Phase = iota
	PhaseMainActions
	PhaseRepositionGroups
	PhaseEndTurn
)

var phaseNames = [...]string{
	PhaseCollectIncome:    "Collect Income",
	PhaseMainActions:      "Main Actions",
	PhaseRepositionGroups: "Reposition Groups",
	PhaseEndTurn:          "End Turn",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

// Next returns the phase that follows p in the single forward cycle.
func (p Phase) Next() Phase {
	return (p + 1) % Phase(len(phaseNames))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}

// --- Side ---

// Side marks the winner of a match, if any.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return ""
	}
}

// --- GameState ---

// GameState is one immutable-by-convention snapshot of a match. Transitions
// take a snapshot and return a new one; they never modify their input.
type GameState struct {
	PlayerFaction *FactionCard
	PlayerDeck    []Card // the built deck the player brought; not drawn from
	PlayerHand    []Card
	PlayerField   []Card
	PlayerMoney   int

	OpponentFaction *FactionCard
	OpponentHand    []Card
	OpponentField   []Card
	OpponentMoney   int

	MainDeck    []Card // shared draw pile, front is index 0
	DiscardPile []Card

	Phase  Phase
	Turn   int // 1-based turn counter
	Log    []string
	Winner Side
}

// Clone returns a deep copy of the snapshot's sequences. Card definitions are
// shared since they are read-only catalog entries.
func (gs GameState) Clone() GameState {
	out := gs
	out.PlayerDeck = cloneCards(gs.PlayerDeck)
	out.PlayerHand = cloneCards(gs.PlayerHand)
	out.PlayerField = cloneCards(gs.PlayerField)
	out.OpponentHand = cloneCards(gs.OpponentHand)
	out.OpponentField = cloneCards(gs.OpponentField)
	out.MainDeck = cloneCards(gs.MainDeck)
	out.DiscardPile = cloneCards(gs.DiscardPile)
	out.Log = append([]string(nil), gs.Log...)
	return out
}

// Over reports whether a winner has been recorded.
func (gs GameState) Over() bool {
	return gs.Winner != SideNone
}

// appendLog returns the log with entry appended, never sharing the backing array.
func (gs GameState) appendLog(entry string) []string {
	out := make([]string, 0, len(gs.Log)+1)
	out = append(out, gs.Log...)
	return append(out, entry)
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// indexOfID returns the position of the first card with the identifier, or -1.
func indexOfID(cards []Card, id string) int {
	for i, c := range cards {
		if c.CardID() == id {
			return i
		}
	}
	return -1
}

// removeAt returns a new slice without element i.
func removeAt(cards []Card, i int) []Card {
	out := make([]Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}
