package net

import (
	"github.com/peterkuimelis/inwo/internal/game"
	"github.com/peterkuimelis/inwo/internal/log"
)

// BuildStateView creates a StateView from the player's perspective. The
// opponent's hand is reduced to a count.
func BuildStateView(state game.GameState) *StateView {
	sv := &StateView{
		Turn:         state.Turn,
		Phase:        state.Phase.String(),
		DeckCount:    len(state.MainDeck),
		DiscardCount: len(state.DiscardPile),
		Log:          append([]string{}, state.Log...),
		Winner:       state.Winner.String(),
	}

	sv.You = PlayerView{
		Money:     state.PlayerMoney,
		HandCount: len(state.PlayerHand),
		Hand:      CardViews(state.PlayerHand),
		Field:     CardViews(state.PlayerField),
	}
	if state.PlayerFaction != nil {
		sv.You.Faction = CardViewOf(state.PlayerFaction)
	}

	sv.Opponent = PlayerView{
		Money:     state.OpponentMoney,
		HandCount: len(state.OpponentHand),
		Field:     CardViews(state.OpponentField),
	}
	if state.OpponentFaction != nil {
		sv.Opponent.Faction = CardViewOf(state.OpponentFaction)
	}
	return sv
}

// CardViewOf flattens a card variant into its wire form.
func CardViewOf(c game.Card) CardView {
	info := c.Info()
	cv := CardView{
		ID:          info.ID,
		Name:        info.Name,
		Type:        string(info.Type),
		Kind:        game.KindOf(c).String(),
		ImageURL:    info.ImageURL,
		Description: info.Description,
		Unique:      info.Unique,
	}
	switch v := c.(type) {
	case *game.FactionCard:
		cv.Power = v.Power
		cv.SpecialGoal = v.SpecialGoal
		cv.Abilities = v.Abilities
	case *game.GroupCard:
		cv.Power = v.Power
		cv.Resistance = v.Resistance
		cv.Income = v.Income
		cv.Alignments = v.Alignments
	}
	return cv
}

// CardViews converts a card sequence, never returning nil.
func CardViews(cards []game.Card) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardViewOf(c))
	}
	return out
}

// EventViewOf converts a logged event.
func EventViewOf(e log.GameEvent) EventView {
	side := "player"
	if e.Side == log.SideOpponent {
		side = "opponent"
	}
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Side:    side,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
		Warning: e.Warning,
	}
}
