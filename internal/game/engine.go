package game

import (
	"fmt"

	"github.com/peterkuimelis/inwo/internal/log"
)

// --- Pure transitions ---

// DrawCards moves up to n cards from the front of deck to the end of hand.
// It returns new slices and the cards drawn; drawing stops when deck runs out.
func DrawCards(deck, hand []Card, n int) (newDeck, newHand, drawn []Card) {
	if n > len(deck) {
		n = len(deck)
	}
	if n < 0 {
		n = 0
	}
	drawn = cloneCards(deck[:n])
	newDeck = cloneCards(deck[n:])
	newHand = make([]Card, 0, len(hand)+n)
	newHand = append(newHand, hand...)
	newHand = append(newHand, drawn...)
	return newDeck, newHand, drawn
}

// CollectIncome returns money plus the income of every group-like card on field.
func CollectIncome(money int, field []Card) int {
	for _, c := range field {
		money += IncomeOf(c)
	}
	return money
}

// BuyOutcome tags the result of a buy attempt.
type BuyOutcome int

const (
	BuyOK BuyOutcome = iota
	BuyInsufficientFunds
	BuyDeckEmpty
	BuyWrongPhase
)

func (o BuyOutcome) String() string {
	switch o {
	case BuyOK:
		return "ok"
	case BuyInsufficientFunds:
		return "insufficient_funds"
	case BuyDeckEmpty:
		return "deck_empty"
	case BuyWrongPhase:
		return "wrong_phase"
	default:
		return "unknown"
	}
}

// BuyResult is the outcome of BuyCard. On failure Money, Deck and Hand are
// the inputs unchanged.
type BuyResult struct {
	Outcome BuyOutcome
	Message string
	Card    Card // the purchased card on success
	Money   int
	Deck    []Card
	Hand    []Card
}

// Success reports whether the purchase went through.
func (r BuyResult) Success() bool { return r.Outcome == BuyOK }

// BuyCard pays cost to move the front card of deck into hand.
func BuyCard(money int, deck, hand []Card, cost int) BuyResult {
	if money < cost {
		return BuyResult{
			Outcome: BuyInsufficientFunds,
			Message: "Not enough money to buy a card.",
			Money:   money, Deck: deck, Hand: hand,
		}
	}
	if len(deck) == 0 {
		return BuyResult{
			Outcome: BuyDeckEmpty,
			Message: "The deck is empty.",
			Money:   money, Deck: deck, Hand: hand,
		}
	}
	newDeck, newHand, drawn := DrawCards(deck, hand, 1)
	return BuyResult{
		Outcome: BuyOK,
		Message: fmt.Sprintf("Bought %s for %d money.", drawn[0].CardName(), cost),
		Card:    drawn[0],
		Money:   money - cost,
		Deck:    newDeck,
		Hand:    newHand,
	}
}

// BuyInState applies BuyCard to a snapshot. The purchase message is appended
// to the game log on success; on failure the snapshot is returned unchanged.
func BuyInState(gs GameState) (GameState, BuyResult) {
	res := BuyCard(gs.PlayerMoney, gs.MainDeck, gs.PlayerHand, BuyCardCost)
	if !res.Success() {
		return gs, res
	}
	next := gs.Clone()
	next.PlayerMoney = res.Money
	next.MainDeck = res.Deck
	next.PlayerHand = res.Hand
	next.Log = gs.appendLog(res.Message)
	return next, res
}

// PlayResult is the outcome of PlayCard.
type PlayResult struct {
	OK      bool
	Message string
	Card    Card
}

// PlayCard moves the first hand card with the identifier onto the player's
// field. It is allowed in every phase and has no cost. A card not in hand
// leaves the snapshot unchanged.
func PlayCard(gs GameState, cardID string) (GameState, PlayResult) {
	i := indexOfID(gs.PlayerHand, cardID)
	if i < 0 {
		return gs, PlayResult{Message: fmt.Sprintf("Card %q is not in your hand.", cardID)}
	}
	card := gs.PlayerHand[i]
	msg := "Player played " + card.CardName()

	next := gs.Clone()
	next.PlayerHand = removeAt(gs.PlayerHand, i)
	next.PlayerField = append(cloneCards(gs.PlayerField), card)
	next.Log = gs.appendLog(msg)
	return next, PlayResult{OK: true, Message: msg, Card: card}
}

// AdvancePhase applies the current phase's effects and moves to the next
// phase. The turn counter increases only when End Turn wraps to Collect Income.
func AdvancePhase(gs GameState) GameState {
	next := gs.Clone()
	var entry string

	switch gs.Phase {
	case PhaseCollectIncome:
		next.PlayerMoney = CollectIncome(gs.PlayerMoney, gs.PlayerField)
		entry = fmt.Sprintf("Collected income. Money: %d", next.PlayerMoney)
	case PhaseMainActions:
		entry = "Main actions phase completed."
	case PhaseRepositionGroups:
		entry = "Groups repositioned."
	case PhaseEndTurn:
		var drawn []Card
		next.MainDeck, next.OpponentHand, drawn = DrawCards(gs.MainDeck, gs.OpponentHand, OpponentDraw)
		next.OpponentMoney = gs.OpponentMoney + OpponentIncome
		next.Turn = gs.Turn + 1
		if len(drawn) > 0 {
			entry = fmt.Sprintf("Opponent's turn completed. Opponent drew a card and gained %d money.", OpponentIncome)
		} else {
			entry = fmt.Sprintf("Opponent's turn completed. Opponent gained %d money.", OpponentIncome)
		}
	}

	next.Phase = gs.Phase.Next()
	next.Log = gs.appendLog(entry)
	return next
}

// --- Match: holds the current snapshot ---

// Match owns the current snapshot of one game and replaces it wholesale on
// every transition. It is not safe for concurrent use.
type Match struct {
	state  GameState
	Logger log.EventLogger
}

// NewMatch creates a match from the given config.
func NewMatch(cfg MatchConfig) (*Match, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewMemoryLogger()
	}
	gs, err := NewGameState(cfg)
	if err != nil {
		return nil, err
	}
	return &Match{state: gs, Logger: cfg.Logger}, nil
}

// State returns a copy of the current snapshot.
func (m *Match) State() GameState {
	return m.state.Clone()
}

func (m *Match) log(e log.GameEvent) {
	if m.Logger != nil {
		m.Logger.Log(e)
	}
}

// NextPhase advances the phase machine one step and returns the new snapshot.
func (m *Match) NextPhase() GameState {
	prev := m.state
	next := AdvancePhase(prev)
	m.state = next

	phase := prev.Phase.String()
	switch prev.Phase {
	case PhaseCollectIncome:
		m.log(log.NewIncomeEvent(prev.Turn, phase, next.PlayerMoney-prev.PlayerMoney, next.PlayerMoney))
	case PhaseEndTurn:
		drew := len(next.OpponentHand) > len(prev.OpponentHand)
		if drew {
			m.log(log.NewDrawEvent(prev.Turn, phase, log.SideOpponent, next.OpponentHand[len(next.OpponentHand)-1].CardName()))
		}
		m.log(log.NewOpponentTurnEvent(prev.Turn, phase, drew, OpponentIncome, next.OpponentMoney))
		m.log(log.NewTurnEvent(next.Turn))
	}
	m.log(log.NewPhaseChangeEvent(next.Turn, next.Phase.String()))
	return m.State()
}

// BuyCard buys the top card of the main deck. Buying is only allowed during
// Main Actions.
func (m *Match) BuyCard() BuyResult {
	gs := m.state
	phase := gs.Phase.String()
	if gs.Phase != PhaseMainActions {
		res := BuyResult{
			Outcome: BuyWrongPhase,
			Message: fmt.Sprintf("Cards can only be bought during %s.", PhaseMainActions),
			Money:   gs.PlayerMoney, Deck: gs.MainDeck, Hand: gs.PlayerHand,
		}
		m.log(log.NewBuyFailedEvent(gs.Turn, phase, res.Message))
		return res
	}
	next, res := BuyInState(gs)
	if !res.Success() {
		m.log(log.NewBuyFailedEvent(gs.Turn, phase, res.Message))
		return res
	}
	m.state = next
	m.log(log.NewBuyEvent(gs.Turn, phase, res.Card.CardName(), BuyCardCost, next.PlayerMoney))
	return res
}

// PlayCard moves a card from the player's hand to the field.
func (m *Match) PlayCard(cardID string) PlayResult {
	gs := m.state
	next, res := PlayCard(gs, cardID)
	if !res.OK {
		m.log(log.NewPlayFailedEvent(gs.Turn, gs.Phase.String(), cardID))
		return res
	}
	m.state = next
	m.log(log.NewPlayEvent(gs.Turn, gs.Phase.String(), res.Card.CardName()))
	return res
}
