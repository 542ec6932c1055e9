package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FilterOptions narrows a card list. Zero values match everything.
type FilterOptions struct {
	Query     string // free words matched against name and description
	Kind      Kind
	Types     []CardType
	Alignment string
	Unique    *bool
}

var caseFolder = cases.Fold()

// foldText lowercases s and strips diacritics so "Zürich" matches "zurich".
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return caseFolder.String(out)
}

// FilterCards returns the cards matching every set option, in input order.
// Every whitespace-separated word of the query must appear in the card's
// name or description.
func FilterCards(cards []Card, opt FilterOptions) []Card {
	words := strings.Fields(foldText(opt.Query))
	var out []Card
	for _, c := range cards {
		if opt.Kind != KindUnknown && KindOf(c) != opt.Kind {
			continue
		}
		if len(opt.Types) > 0 && !containsType(opt.Types, c.CardType()) {
			continue
		}
		if opt.Unique != nil && c.IsUnique() != *opt.Unique {
			continue
		}
		if opt.Alignment != "" {
			g, ok := c.(*GroupCard)
			if !ok || !g.HasAlignment(opt.Alignment) {
				continue
			}
		}
		if len(words) > 0 {
			info := c.Info()
			hay := foldText(info.Name + " " + info.Description)
			if !containsAll(hay, words) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func containsType(types []CardType, t CardType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

func containsAll(hay string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}
