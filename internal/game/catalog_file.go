package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML layout for a custom card list.
type CatalogFile struct {
	Cards []CardDef `yaml:"cards"`
}

// CardDef is one card in a catalog file. Which fields apply depends on type.
type CardDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Image       string   `yaml:"image,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Unique      bool     `yaml:"unique,omitempty"`
	Rarity      string   `yaml:"rarity,omitempty"`
	Power       any      `yaml:"power,omitempty"`
	Resistance  int      `yaml:"resistance,omitempty"`
	Income      int      `yaml:"income,omitempty"`
	Alignments  []string `yaml:"alignments,omitempty"`
	SpecialGoal string   `yaml:"specialGoal,omitempty"`
	Abilities   []string `yaml:"abilities,omitempty"`
}

// Build turns the definition into its card variant.
func (d CardDef) Build() (Card, error) {
	t, err := ParseCardType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", d.ID, err)
	}
	base := BaseCard{
		ID:          d.ID,
		Name:        d.Name,
		Type:        t,
		ImageURL:    d.Image,
		Description: d.Description,
		Unique:      d.Unique,
	}
	switch t.Kind() {
	case KindFaction:
		return NewFactionCard(base, d.Rarity, fmt.Sprint(powerValue(d.Power)), d.SpecialGoal, d.Abilities)
	case KindGroupLike:
		n, ok := powerValue(d.Power).(int)
		if !ok {
			return nil, fmt.Errorf("card %q: group power must be a number", d.ID)
		}
		return NewGroupCard(base, n, d.Resistance, d.Income, d.Alignments)
	default:
		return NewEventCard(base)
	}
}

// powerValue normalises the power field: factions use "A/B", groups a number.
func powerValue(v any) any {
	switch p := v.(type) {
	case nil:
		return 0
	case int:
		return p
	case string:
		return p
	default:
		return fmt.Sprint(p)
	}
}

// ParseCatalog decodes catalog YAML into a Catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	cards := make([]Card, 0, len(cf.Cards))
	for _, def := range cf.Cards {
		card, err := def.Build()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return NewCatalog(cards)
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}
