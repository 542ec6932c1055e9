package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name    string      `yaml:"name"`
	Faction string      `yaml:"faction"`
	Cards   []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck. Count defaults to 1.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// IDs expands the entry list into an ordered id sequence of at most
// MaxDeckIDs ids.
func (d DeckEntry) IDs() []string {
	var ids []string
	for _, entry := range d.Cards {
		n := entry.Count
		if n == 0 {
			n = 1
		}
		n = min(n, MaxDeckIDs-len(ids))
		for i := 0; i < n; i++ {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// Saved converts the entry into the persisted deck shape.
func (d DeckEntry) Saved() SavedDeck {
	return SavedDeck{FactionID: d.Faction, CardIDs: d.IDs()}
}

func readDeckFile(path string) (DeckFile, error) {
	var df DeckFile
	data, err := os.ReadFile(path)
	if err != nil {
		return df, err
	}
	if err := yaml.Unmarshal(data, &df); err != nil {
		return df, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → entry.
func ParseDeckFile(path string) (map[string]DeckEntry, error) {
	df, err := readDeckFile(path)
	if err != nil {
		return nil, err
	}
	decks := make(map[string]DeckEntry, len(df.Decks))
	for _, deck := range df.Decks {
		decks[deck.Name] = deck
	}
	return decks, nil
}

// DeckByName returns the named deck from the deck file. An empty name selects
// the first deck.
func DeckByName(path, name string) (DeckEntry, error) {
	df, err := readDeckFile(path)
	if err != nil {
		return DeckEntry{}, err
	}
	if len(df.Decks) == 0 {
		return DeckEntry{}, fmt.Errorf("deck file %s has no decks", path)
	}
	if name == "" {
		return df.Decks[0], nil
	}
	for _, deck := range df.Decks {
		if deck.Name == name {
			return deck, nil
		}
	}
	return DeckEntry{}, fmt.Errorf("deck %q not found (have %d decks)", name, len(df.Decks))
}

// DeckEntryFromIDs compresses an id sequence into run-length entries,
// preserving first-occurrence order.
func DeckEntryFromIDs(name, factionID string, ids []string) DeckEntry {
	d := DeckEntry{Name: name, Faction: factionID}
	pos := make(map[string]int)
	for _, id := range ids {
		if i, ok := pos[id]; ok {
			d.Cards[i].Count++
			continue
		}
		pos[id] = len(d.Cards)
		d.Cards = append(d.Cards, CardEntry{ID: id, Count: 1})
	}
	return d
}

// WriteDeckFile writes decks to path as YAML.
func WriteDeckFile(path string, decks ...DeckEntry) error {
	data, err := yaml.Marshal(DeckFile{Decks: decks})
	if err != nil {
		return fmt.Errorf("encode deck YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
