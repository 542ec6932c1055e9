package game

import (
	"fmt"
	"math"
)

const (
	MinDeckSize     = 45
	MaxCopies       = 2
	MaxUniqueCopies = 1
)

// DuplicateCard records a card that exceeds its copy limit.
type DuplicateCard struct {
	CardName string `json:"cardName"`
	Count    int    `json:"count"`
}

// ValidationResult is the outcome of checking a candidate deck.
type ValidationResult struct {
	FactionID      string          `json:"factionId,omitempty"`
	IsValid        bool            `json:"isValid"`
	Messages       []string        `json:"messages"`
	TotalCards     int             `json:"totalCards"`
	GroupCount     int             `json:"groupCount"`
	PlotCount      int             `json:"plotCount"`
	DuplicateCards []DuplicateCard `json:"duplicateCards"`
}

// ValidateDeck checks a deck against the construction rules. Every rule is
// evaluated and every violation reported; the result depends only on the
// arguments. faction may be nil.
func ValidateDeck(faction *FactionCard, deck []Card) ValidationResult {
	res := ValidationResult{
		IsValid:        true,
		Messages:       []string{},
		DuplicateCards: []DuplicateCard{},
		TotalCards:     len(deck),
	}
	if faction != nil {
		res.FactionID = faction.ID
	}

	for _, c := range deck {
		switch KindOf(c) {
		case KindGroupLike:
			res.GroupCount++
		case KindEventLike:
			res.PlotCount++
		}
	}

	fail := func(msg string) {
		res.Messages = append(res.Messages, msg)
		res.IsValid = false
	}

	if res.TotalCards < MinDeckSize {
		fail(fmt.Sprintf("Deck must have at least %d cards. Current: %d", MinDeckSize, res.TotalCards))
	}
	if res.TotalCards > 0 && belowThird(res.GroupCount, res.TotalCards) {
		fail(fmt.Sprintf("At least 1/3 of your deck must be Groups (or Group-like cards). Current: %d (%d%%)",
			res.GroupCount, percent(res.GroupCount, res.TotalCards)))
	}
	if res.TotalCards > 0 && belowThird(res.PlotCount, res.TotalCards) {
		fail(fmt.Sprintf("At least 1/3 of your deck must be Plots (or Event-like cards). Current: %d (%d%%)",
			res.PlotCount, percent(res.PlotCount, res.TotalCards)))
	}

	for _, cc := range countCopies(deck) {
		card, count := cc.card, cc.count
		switch {
		case KindOf(card) == KindFaction:
			fail(fmt.Sprintf("Faction card %q should not be in the deck pool.", card.CardName()))
		case card.IsUnique() && count > MaxUniqueCopies:
			fail(fmt.Sprintf("Unique card %q can only have 1 copy. Found: %d", card.CardName(), count))
			res.DuplicateCards = append(res.DuplicateCards, DuplicateCard{CardName: card.CardName(), Count: count})
		case count > MaxCopies:
			fail(fmt.Sprintf("Card %q has too many copies. Max %d. Found: %d", card.CardName(), MaxCopies, count))
			res.DuplicateCards = append(res.DuplicateCards, DuplicateCard{CardName: card.CardName(), Count: count})
		}
	}
	return res
}

// belowThird reports n/total < 1/3 without floating point.
func belowThird(n, total int) bool {
	return 3*n < total
}

func percent(n, total int) int {
	return int(math.Round(float64(n) * 100 / float64(total)))
}

type copyCount struct {
	card  Card
	count int
}

// countCopies tallies cards by identifier in first-occurrence order.
func countCopies(deck []Card) []copyCount {
	var out []copyCount
	pos := make(map[string]int)
	for _, c := range deck {
		if c == nil {
			continue
		}
		if i, ok := pos[c.CardID()]; ok {
			out[i].count++
			continue
		}
		pos[c.CardID()] = len(out)
		out = append(out, copyCount{card: c, count: 1})
	}
	return out
}

// CopyLimit returns how many copies of a card a deck may hold.
func CopyLimit(c Card) int {
	switch {
	case KindOf(c) == KindFaction:
		return 0
	case c.IsUnique():
		return MaxUniqueCopies
	default:
		return MaxCopies
	}
}
