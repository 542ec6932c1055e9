package game

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Enums ---

// CardType is the printed type line of a card. It is the only discriminant
// for which structural variant a card uses.
type CardType string

const (
	TypeFaction       CardType = "Faction"
	TypeGroup         CardType = "Group"
	TypePlot          CardType = "Plot"
	TypeResource      CardType = "Resource"
	TypeNewWorldOrder CardType = "New World Order"
	TypePersonality   CardType = "Personality"
	TypePlace         CardType = "Place"
	TypeOrganization  CardType = "Organization"
	TypeSpecial       CardType = "Special"
	TypeGoal          CardType = "Goal"
	TypeArtifact      CardType = "Artifact"
	TypeDisaster      CardType = "Disaster"
)

// AllCardTypes lists every type tag in catalog order.
var AllCardTypes = []CardType{
	TypeFaction, TypeGroup, TypePlot, TypeResource, TypeNewWorldOrder, TypePersonality,
	TypePlace, TypeOrganization, TypeSpecial, TypeGoal, TypeArtifact, TypeDisaster,
}

// Kind is the structural family a type tag belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindFaction
	KindGroupLike
	KindEventLike
)

func (k Kind) String() string {
	switch k {
	case KindFaction:
		return "Faction"
	case KindGroupLike:
		return "Group-like"
	case KindEventLike:
		return "Event-like"
	default:
		return "Unknown"
	}
}

// Kind maps a type tag to its structural family.
func (t CardType) Kind() Kind {
	switch t {
	case TypeFaction:
		return KindFaction
	case TypeGroup, TypeOrganization, TypePersonality, TypePlace, TypeResource, TypeArtifact:
		return KindGroupLike
	case TypePlot, TypeSpecial, TypeGoal, TypeDisaster, TypeNewWorldOrder:
		return KindEventLike
	default:
		return KindUnknown
	}
}

func (t CardType) IsGroupLike() bool { return t.Kind() == KindGroupLike }
func (t CardType) IsEventLike() bool { return t.Kind() == KindEventLike }

// ParseCardType accepts a type tag case-insensitively.
func ParseCardType(s string) (CardType, error) {
	s = strings.TrimSpace(s)
	for _, t := range AllCardTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown card type %q", s)
}

// --- Card definitions (static, shared by reference) ---

// Card is one of *FactionCard, *GroupCard or *EventCard. Callers switch on the
// concrete type (or on CardType().Kind(), which always agrees with it).
type Card interface {
	CardID() string
	CardName() string
	CardType() CardType
	IsUnique() bool
	Info() BaseCard
	sealed()
}

// BaseCard holds the attributes every card carries.
type BaseCard struct {
	ID          string
	Name        string
	Type        CardType
	ImageURL    string
	Description string
	Unique      bool
}

func (b BaseCard) CardID() string     { return b.ID }
func (b BaseCard) CardName() string   { return b.Name }
func (b BaseCard) CardType() CardType { return b.Type }
func (b BaseCard) IsUnique() bool     { return b.Unique }
func (b BaseCard) Info() BaseCard     { return b }

func (b BaseCard) String() string { return b.Name }

// FactionCard is the Illuminati card a side plays face up from the start.
type FactionCard struct {
	BaseCard
	Rarity      string
	Power       string // "A/B"
	SpecialGoal string
	Abilities   []string
}

// GroupCard is any group-like card with battlefield stats.
type GroupCard struct {
	BaseCard
	Power      int
	Resistance int
	Income     int
	Alignments []string
}

// EventCard is any event-like card; it carries no stats.
type EventCard struct {
	BaseCard
}

func (*FactionCard) sealed() {}
func (*GroupCard) sealed()   {}
func (*EventCard) sealed()   {}

// NewFactionCard builds a faction card, rejecting a non-faction type tag.
func NewFactionCard(base BaseCard, rarity, power, specialGoal string, abilities []string) (*FactionCard, error) {
	if base.Type == "" {
		base.Type = TypeFaction
	}
	if base.Type.Kind() != KindFaction {
		return nil, fmt.Errorf("card %q: type %q is not a faction", base.ID, base.Type)
	}
	return &FactionCard{
		BaseCard:    base,
		Rarity:      rarity,
		Power:       power,
		SpecialGoal: specialGoal,
		Abilities:   append([]string(nil), abilities...),
	}, nil
}

// NewGroupCard builds a group-like card, rejecting other type tags.
func NewGroupCard(base BaseCard, power, resistance, income int, alignments []string) (*GroupCard, error) {
	if base.Type == "" {
		base.Type = TypeGroup
	}
	if base.Type.Kind() != KindGroupLike {
		return nil, fmt.Errorf("card %q: type %q is not group-like", base.ID, base.Type)
	}
	return &GroupCard{
		BaseCard:   base,
		Power:      power,
		Resistance: resistance,
		Income:     income,
		Alignments: append([]string(nil), alignments...),
	}, nil
}

// NewEventCard builds an event-like card, rejecting other type tags.
func NewEventCard(base BaseCard) (*EventCard, error) {
	if base.Type == "" {
		base.Type = TypePlot
	}
	if base.Type.Kind() != KindEventLike {
		return nil, fmt.Errorf("card %q: type %q is not event-like", base.ID, base.Type)
	}
	return &EventCard{BaseCard: base}, nil
}

// StartingMoney parses the numerator of the power rating ("10/10" → 10).
// Anything unparsable yields 0.
func (f *FactionCard) StartingMoney() int {
	head, _, _ := strings.Cut(f.Power, "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return n
}

// HasAlignment reports whether the group carries the alignment (case-insensitive).
func (g *GroupCard) HasAlignment(alignment string) bool {
	for _, a := range g.Alignments {
		if strings.EqualFold(a, alignment) {
			return true
		}
	}
	return false
}

// KindOf returns the structural family of a card.
func KindOf(c Card) Kind {
	if c == nil {
		return KindUnknown
	}
	return c.CardType().Kind()
}

// IncomeOf returns the income a card contributes on the field. Only
// group-like cards produce income.
func IncomeOf(c Card) int {
	switch v := c.(type) {
	case *GroupCard:
		return v.Income
	default:
		return 0
	}
}

// CardIDs lists the identifiers of a card sequence in order.
func CardIDs(cards []Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.CardID())
	}
	return ids
}
