package game

import (
	"testing"

	"github.com/peterkuimelis/inwo/internal/log"
)

func TestCollectIncomeIgnoresFaction(t *testing.T) {
	field := []Card{testGroup("g", 3), testFaction("f", "10/10"), testPlot("p")}
	if got := CollectIncome(5, field); got != 8 {
		t.Errorf("CollectIncome = %d, want 8", got)
	}
}

func TestBuyCardInsufficientFunds(t *testing.T) {
	deck := makeDeck(2, 1)
	hand := []Card{testPlot("h")}
	res := BuyCard(1, deck, hand, BuyCardCost)
	if res.Success() || res.Outcome != BuyInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", res.Outcome)
	}
	if res.Money != 1 || len(res.Deck) != 3 || len(res.Hand) != 1 {
		t.Errorf("state changed: money=%d deck=%d hand=%d", res.Money, len(res.Deck), len(res.Hand))
	}
	if res.Message != "Not enough money to buy a card." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestBuyCardEmptyDeck(t *testing.T) {
	res := BuyCard(10, nil, nil, BuyCardCost)
	if res.Outcome != BuyDeckEmpty {
		t.Fatalf("expected empty deck, got %v", res.Outcome)
	}
	if res.Money != 10 {
		t.Errorf("money = %d", res.Money)
	}
}

func TestBuyCardSuccess(t *testing.T) {
	deck := makeDeck(2, 0)
	res := BuyCard(5, deck, nil, 2)
	if !res.Success() {
		t.Fatalf("buy failed: %s", res.Message)
	}
	if res.Money != 3 {
		t.Errorf("money = %d, want 3", res.Money)
	}
	if len(res.Hand) != 1 || res.Hand[0].CardID() != "g0" {
		t.Errorf("hand = %v", ids(res.Hand))
	}
	if len(res.Deck) != 1 || res.Deck[0].CardID() != "g1" {
		t.Errorf("deck = %v", ids(res.Deck))
	}
	if res.Message != "Bought Group g0 for 2 money." {
		t.Errorf("message = %q", res.Message)
	}
	if len(deck) != 2 {
		t.Error("input deck was modified")
	}
}

func TestDrawCardsStopsWhenEmpty(t *testing.T) {
	deck := makeDeck(1, 1)
	newDeck, hand, drawn := DrawCards(deck, nil, 5)
	if len(newDeck) != 0 || len(hand) != 2 || len(drawn) != 2 {
		t.Errorf("deck=%d hand=%d drawn=%d", len(newDeck), len(hand), len(drawn))
	}
	if len(deck) != 2 {
		t.Error("input deck was modified")
	}
}

func TestTurnCycle(t *testing.T) {
	m, _ := newTestMatch(t)
	start := m.State()
	if start.Phase != PhaseCollectIncome || start.Turn != 1 {
		t.Fatalf("start = %s turn %d", start.Phase, start.Turn)
	}

	want := []Phase{PhaseMainActions, PhaseRepositionGroups, PhaseEndTurn, PhaseCollectIncome}
	for i, p := range want {
		gs := m.NextPhase()
		if gs.Phase != p {
			t.Fatalf("step %d: phase = %s, want %s", i, gs.Phase, p)
		}
		if i < 3 && gs.Turn != 1 {
			t.Errorf("step %d: turn advanced early to %d", i, gs.Turn)
		}
	}
	if got := m.State().Turn; got != 2 {
		t.Errorf("turn = %d, want 2", got)
	}
}

func TestPhaseLogEntries(t *testing.T) {
	m, _ := newTestMatch(t)
	for i := 0; i < 4; i++ {
		m.NextPhase()
	}
	gs := m.State()
	want := []string{
		"Collected income. Money: 10",
		"Main actions phase completed.",
		"Groups repositioned.",
		"Opponent's turn completed. Opponent drew a card and gained 2 money.",
	}
	if len(gs.Log) != 3+len(want) {
		t.Fatalf("log = %v", gs.Log)
	}
	for i, w := range want {
		if gs.Log[3+i] != w {
			t.Errorf("log[%d] = %q, want %q", 3+i, gs.Log[3+i], w)
		}
	}
}

func TestOpponentMicroTurn(t *testing.T) {
	m, logger := newTestMatch(t)
	before := m.State()
	for i := 0; i < 4; i++ {
		m.NextPhase()
	}
	after := m.State()
	if len(after.OpponentHand) != len(before.OpponentHand)+1 {
		t.Errorf("opponent hand %d -> %d", len(before.OpponentHand), len(after.OpponentHand))
	}
	if after.OpponentMoney != before.OpponentMoney+OpponentIncome {
		t.Errorf("opponent money %d -> %d", before.OpponentMoney, after.OpponentMoney)
	}
	if len(after.MainDeck) != len(before.MainDeck)-1 {
		t.Errorf("main deck %d -> %d", len(before.MainDeck), len(after.MainDeck))
	}
	if n := len(logger.EventsOfType(log.EventOpponentTurn)); n != 1 {
		t.Errorf("opponent turn events = %d", n)
	}
	if n := len(logger.EventsOfType(log.EventNewTurn)); n != 1 {
		t.Errorf("new turn events = %d", n)
	}
}

func TestOpponentTurnWithEmptyDeck(t *testing.T) {
	gs := GameState{Phase: PhaseEndTurn, Turn: 3, OpponentMoney: 1}
	next := AdvancePhase(gs)
	if next.Turn != 4 || next.Phase != PhaseCollectIncome {
		t.Errorf("turn %d phase %s", next.Turn, next.Phase)
	}
	if next.OpponentMoney != 3 || len(next.OpponentHand) != 0 {
		t.Errorf("money %d hand %d", next.OpponentMoney, len(next.OpponentHand))
	}
	if next.Log[0] != "Opponent's turn completed. Opponent gained 2 money." {
		t.Errorf("log = %v", next.Log)
	}
}

func TestIncomeFromPlayedGroup(t *testing.T) {
	m, logger := newTestMatch(t)
	// prebuilt-group-3 has income 3 and is in the opening hand with NoShuffle.
	res := m.PlayCard("prebuilt-group-3")
	if !res.OK {
		t.Fatalf("play failed: %s", res.Message)
	}
	gs := m.NextPhase()
	if gs.PlayerMoney != 13 {
		t.Errorf("money = %d, want 13", gs.PlayerMoney)
	}
	inc := logger.EventsOfType(log.EventIncome)
	if len(inc) != 1 || inc[0].Details != "Player collects 3 income (money 13)" {
		t.Errorf("income events = %+v", inc)
	}
}

func TestMatchBuyOnlyInMainActions(t *testing.T) {
	m, logger := newTestMatch(t)
	res := m.BuyCard()
	if res.Outcome != BuyWrongPhase {
		t.Fatalf("outcome = %v, want wrong_phase", res.Outcome)
	}
	if m.State().PlayerMoney != 10 {
		t.Error("money changed on refused buy")
	}

	m.NextPhase() // Main Actions
	before := m.State()
	res = m.BuyCard()
	if !res.Success() {
		t.Fatalf("buy failed: %s", res.Message)
	}
	after := m.State()
	if after.PlayerMoney != before.PlayerMoney-BuyCardCost {
		t.Errorf("money %d -> %d", before.PlayerMoney, after.PlayerMoney)
	}
	if len(after.PlayerHand) != len(before.PlayerHand)+1 {
		t.Errorf("hand %d -> %d", len(before.PlayerHand), len(after.PlayerHand))
	}
	if after.PlayerHand[len(after.PlayerHand)-1].CardID() != before.MainDeck[0].CardID() {
		t.Error("bought card is not the front of the main deck")
	}
	if last := after.Log[len(after.Log)-1]; last != res.Message {
		t.Errorf("log tail = %q, want %q", last, res.Message)
	}
	if len(logger.EventsOfType(log.EventBuyFailed)) != 1 || len(logger.EventsOfType(log.EventBuy)) != 1 {
		t.Error("expected one failed and one successful buy event")
	}
}

func TestMatchBuyUntilBroke(t *testing.T) {
	m, _ := newTestMatch(t)
	m.NextPhase() // income 0, money stays 10
	for i := 0; i < 5; i++ {
		if res := m.BuyCard(); !res.Success() {
			t.Fatalf("buy %d failed: %s", i, res.Message)
		}
	}
	res := m.BuyCard()
	if res.Outcome != BuyInsufficientFunds {
		t.Errorf("outcome = %v", res.Outcome)
	}
	if m.State().PlayerMoney != 0 {
		t.Errorf("money = %d", m.State().PlayerMoney)
	}
}

func TestPlayCardAnyPhase(t *testing.T) {
	m, _ := newTestMatch(t)
	for _, p := range []Phase{PhaseCollectIncome, PhaseMainActions, PhaseRepositionGroups, PhaseEndTurn} {
		gs := m.State()
		if gs.Phase != p {
			t.Fatalf("phase = %s, want %s", gs.Phase, p)
		}
		id := gs.PlayerHand[0].CardID()
		if res := m.PlayCard(id); !res.OK {
			t.Errorf("%s: play failed: %s", p, res.Message)
		}
		m.NextPhase()
	}
	gs := m.State()
	if len(gs.PlayerField) != 5 {
		t.Errorf("field size = %d, want 5", len(gs.PlayerField))
	}
}

func TestPlayCardNotInHand(t *testing.T) {
	m, logger := newTestMatch(t)
	before := m.State()
	res := m.PlayCard("nope")
	if res.OK {
		t.Fatal("expected failure")
	}
	after := m.State()
	if len(after.PlayerHand) != len(before.PlayerHand) || len(after.Log) != len(before.Log) {
		t.Error("state changed on failed play")
	}
	if len(logger.EventsOfType(log.EventPlayFailed)) != 1 {
		t.Error("expected a play-failed event")
	}
}

func TestPlayCardRemovesOneCopy(t *testing.T) {
	g := testGroup("g", 1)
	gs := GameState{PlayerHand: []Card{g, testPlot("p"), g}}
	next, res := PlayCard(gs, "g")
	if !res.OK {
		t.Fatal(res.Message)
	}
	if got := ids(next.PlayerHand); len(got) != 2 || got[0] != "p" || got[1] != "g" {
		t.Errorf("hand = %v", got)
	}
	if len(next.PlayerField) != 1 {
		t.Errorf("field = %v", ids(next.PlayerField))
	}
	if next.Log[0] != "Player played Group g" {
		t.Errorf("log = %v", next.Log)
	}
}

func TestSnapshotsAreNotMutated(t *testing.T) {
	m, _ := newTestMatch(t)
	gs0 := m.State()
	handLen, logLen, deckLen := len(gs0.PlayerHand), len(gs0.Log), len(gs0.MainDeck)
	firstHand := gs0.PlayerHand[0].CardID()

	gs1 := AdvancePhase(gs0)
	gs2, _ := PlayCard(gs1, firstHand)
	gs3, _ := BuyInState(gs2)
	_ = AdvancePhase(AdvancePhase(AdvancePhase(gs3)))

	if gs0.Phase != PhaseCollectIncome || len(gs0.Log) != logLen {
		t.Errorf("gs0 changed: phase %s log %d", gs0.Phase, len(gs0.Log))
	}
	if len(gs0.PlayerHand) != handLen || gs0.PlayerHand[0].CardID() != firstHand {
		t.Error("gs0 hand changed")
	}
	if len(gs0.MainDeck) != deckLen {
		t.Error("gs0 main deck changed")
	}
	if gs1.Phase != PhaseMainActions || len(gs1.PlayerField) != 1 {
		t.Errorf("gs1 changed: phase %s field %d", gs1.Phase, len(gs1.PlayerField))
	}
	if len(gs2.PlayerHand) != handLen-1 {
		t.Errorf("gs2 hand = %d", len(gs2.PlayerHand))
	}

	// Writing through a returned snapshot must not reach the match.
	snap := m.State()
	snap.PlayerHand[0] = nil
	snap.Log[0] = "tampered"
	if cur := m.State(); cur.PlayerHand[0] == nil || cur.Log[0] != "Game started!" {
		t.Error("match state aliased by State()")
	}
}

func TestPhaseText(t *testing.T) {
	for p := PhaseCollectIncome; p <= PhaseEndTurn; p++ {
		b, _ := p.MarshalText()
		var got Phase
		if err := got.UnmarshalText(b); err != nil || got != p {
			t.Errorf("round trip %s: got %s err %v", p, got, err)
		}
	}
	var p Phase
	if err := p.UnmarshalText([]byte("Draw")); err == nil {
		t.Error("expected error for unknown phase")
	}
	if PhaseEndTurn.Next() != PhaseCollectIncome {
		t.Error("End Turn should wrap to Collect Income")
	}
}
