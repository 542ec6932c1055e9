package game

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	TableCardAlignment   = "Table"
	tableCardDescription = "Digitized from the physical tabletop collection."
	tableCardImagePrefix = "/cards/table-cards/"
)

var (
	transparentSuffix = regexp.MustCompile(`(?i)_transparent$`)
	digitsOnly        = regexp.MustCompile(`^\d+$`)
)

// LoadTableCards builds a group card for every .png scan in dir. Files are
// taken in natural order ("2" before "10"); stats cycle with the position.
func LoadTableCards(dir string) ([]Card, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read table cards: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		files = append(files, e.Name())
	}
	SortNatural(files)

	cards := make([]Card, 0, len(files))
	for i, file := range files {
		cards = append(cards, tableCard(i, file))
	}
	return cards, nil
}

func tableCard(index int, file string) *GroupCard {
	rawID := strings.TrimSuffix(file, filepath.Ext(file))
	id := transparentSuffix.ReplaceAllString(rawID, "")
	label := strings.ReplaceAll(id, "_", " ")
	switch {
	case id != "" && digitsOnly.MatchString(id):
		label = "#" + id
	case label == "":
		label = rawID
	}
	return &GroupCard{
		BaseCard: BaseCard{
			ID:          rawID,
			Name:        "Table Card " + label,
			Type:        TypeGroup,
			ImageURL:    tableCardImagePrefix + file,
			Description: tableCardDescription,
		},
		Power:      2 + index%5,
		Resistance: 3 + (index+2)%5,
		Income:     1 + index%3,
		Alignments: []string{TableCardAlignment},
	}
}

// SortNatural sorts names in place, comparing digit runs numerically and
// ignoring case.
func SortNatural(names []string) {
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
}
