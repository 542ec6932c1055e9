package game

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDeckCode = errors.New("invalid deck code")

const deckCodeHeader = "inwo1"

// MaxDeckIDs bounds the number of ids a deck code or deck file may expand to.
const MaxDeckIDs = 500

// ExportDeckText renders a deck as text: a header line with the faction,
// then one "Nx id" line per run of identical consecutive ids.
func ExportDeckText(factionID string, ids []string) string {
	lines := []string{deckCodeHeader + " " + factionID}
	for i := 0; i < len(ids); {
		j := i
		for j < len(ids) && ids[j] == ids[i] {
			j++
		}
		lines = append(lines, strconv.Itoa(j-i)+"x"+ids[i])
		i = j
	}
	return strings.Join(lines, "\n")
}

// ParseDeckText is the inverse of ExportDeckText.
func ParseDeckText(text string) (SavedDeck, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	head, factionID, ok := strings.Cut(strings.TrimSpace(lines[0]), " ")
	if !ok || head != deckCodeHeader {
		return SavedDeck{}, fmt.Errorf("%w: missing header", ErrInvalidDeckCode)
	}
	saved := SavedDeck{FactionID: strings.TrimSpace(factionID), CardIDs: []string{}}
	for n, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		count, id, ok := strings.Cut(line, "x")
		k, err := strconv.Atoi(count)
		if !ok || err != nil || k < 1 || id == "" {
			return SavedDeck{}, fmt.Errorf("%w: line %d: %q", ErrInvalidDeckCode, n+2, line)
		}
		if k > MaxDeckIDs-len(saved.CardIDs) {
			return SavedDeck{}, fmt.Errorf("%w: more than %d cards", ErrInvalidDeckCode, MaxDeckIDs)
		}
		for i := 0; i < k; i++ {
			saved.CardIDs = append(saved.CardIDs, id)
		}
	}
	return saved, nil
}

// EncodeDeckCode packs a deck into a URL-safe share code. Card order is kept.
func EncodeDeckCode(factionID string, ids []string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(ExportDeckText(factionID, ids)))
}

// DecodeDeckCode unpacks a share code produced by EncodeDeckCode.
func DecodeDeckCode(code string) (SavedDeck, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return SavedDeck{}, fmt.Errorf("%w: %v", ErrInvalidDeckCode, err)
	}
	return ParseDeckText(string(raw))
}
