package game

import (
	"reflect"
	"strings"
	"testing"
)

func hasMessage(res ValidationResult, substr string) bool {
	for _, m := range res.Messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateEmptyDeck(t *testing.T) {
	res := ValidateDeck(nil, nil)
	if res.IsValid {
		t.Fatal("empty deck should be invalid")
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected only the size message, got %v", res.Messages)
	}
	if res.Messages[0] != "Deck must have at least 45 cards. Current: 0" {
		t.Errorf("unexpected message %q", res.Messages[0])
	}
	if res.DuplicateCards == nil || len(res.DuplicateCards) != 0 {
		t.Errorf("expected empty duplicate list, got %v", res.DuplicateCards)
	}
}

func TestValidateTooSmall(t *testing.T) {
	res := ValidateDeck(nil, makeDeck(22, 22))
	if res.IsValid {
		t.Fatal("44-card deck should be invalid")
	}
	if !hasMessage(res, "Current: 44") {
		t.Errorf("expected size message with count, got %v", res.Messages)
	}
	if res.TotalCards != 44 || res.GroupCount != 22 || res.PlotCount != 22 {
		t.Errorf("counts = %d/%d/%d", res.TotalCards, res.GroupCount, res.PlotCount)
	}
}

func TestValidateThirtyFifteen(t *testing.T) {
	f := testFaction("f", "8/8")
	res := ValidateDeck(f, makeDeck(30, 15))
	if !res.IsValid {
		t.Fatalf("30 groups + 15 plots should be valid: %v", res.Messages)
	}
	if len(res.Messages) != 0 {
		t.Errorf("expected no messages, got %v", res.Messages)
	}
	if res.FactionID != "f" {
		t.Errorf("FactionID = %q", res.FactionID)
	}
}

func TestValidateRatioMessages(t *testing.T) {
	res := ValidateDeck(nil, makeDeck(44, 1))
	if res.IsValid {
		t.Fatal("1 plot in 45 should be invalid")
	}
	want := "At least 1/3 of your deck must be Plots (or Event-like cards). Current: 1 (2%)"
	if !hasMessage(res, want) {
		t.Errorf("missing %q in %v", want, res.Messages)
	}
	if hasMessage(res, "must be Groups") {
		t.Error("group ratio should pass")
	}

	res = ValidateDeck(nil, makeDeck(0, 45))
	if !hasMessage(res, "must be Groups (or Group-like cards). Current: 0 (0%)") {
		t.Errorf("expected group ratio message, got %v", res.Messages)
	}
}

func TestValidateExactThird(t *testing.T) {
	// 15 of 45 is exactly one third and passes.
	res := ValidateDeck(nil, makeDeck(15, 30))
	if !res.IsValid {
		t.Errorf("15/45 groups should pass: %v", res.Messages)
	}
}

func TestValidateUniqueDuplicate(t *testing.T) {
	deck := makeDeck(30, 15)
	u := testGroup("u", 1)
	u.Unique = true
	u.Name = "The Unique One"
	deck = append(deck, u, u)

	res := ValidateDeck(nil, deck)
	if res.IsValid {
		t.Fatal("two copies of a unique card should be invalid")
	}
	if len(res.DuplicateCards) != 1 || res.DuplicateCards[0] != (DuplicateCard{CardName: "The Unique One", Count: 2}) {
		t.Errorf("DuplicateCards = %v", res.DuplicateCards)
	}
	if !hasMessage(res, `Unique card "The Unique One" can only have 1 copy. Found: 2`) {
		t.Errorf("messages = %v", res.Messages)
	}
}

func TestValidateCopyLimit(t *testing.T) {
	deck := makeDeck(30, 15)
	extra := testPlot("p0")
	deck = append(deck, extra, extra) // p0 now has 3 copies

	res := ValidateDeck(nil, deck)
	if res.IsValid {
		t.Fatal("three copies should be invalid")
	}
	if len(res.DuplicateCards) != 1 || res.DuplicateCards[0].Count != 3 {
		t.Errorf("DuplicateCards = %v", res.DuplicateCards)
	}
	if !hasMessage(res, `Card "Plot p0" has too many copies. Max 2. Found: 3`) {
		t.Errorf("messages = %v", res.Messages)
	}

	// Two copies are fine.
	deck = append(makeDeck(30, 16), testGroup("g0", 1))
	res = ValidateDeck(nil, deck)
	if !res.IsValid {
		t.Errorf("two copies should be valid: %v", res.Messages)
	}
	if len(res.DuplicateCards) != 0 {
		t.Errorf("DuplicateCards = %v", res.DuplicateCards)
	}
}

func TestValidateFactionInDeck(t *testing.T) {
	deck := append(makeDeck(30, 15), testFaction("bad", "9/9"))
	res := ValidateDeck(nil, deck)
	if res.IsValid {
		t.Fatal("a faction card in the deck should be invalid")
	}
	if !hasMessage(res, `Faction card "Faction bad" should not be in the deck pool.`) {
		t.Errorf("messages = %v", res.Messages)
	}
	if len(res.DuplicateCards) != 0 {
		t.Errorf("faction should not be listed as duplicate: %v", res.DuplicateCards)
	}
	if res.TotalCards != 46 || res.GroupCount != 30 || res.PlotCount != 15 {
		t.Errorf("counts = %d/%d/%d", res.TotalCards, res.GroupCount, res.PlotCount)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	f := testFaction("f", "1/1")
	u := testGroup("u", 1)
	u.Unique = true
	deck := []Card{f, u, u, testPlot("x"), testPlot("x"), testPlot("x")}

	res := ValidateDeck(nil, deck)
	// size, faction, unique and copy limit; both ratios hold at 2 and 3 of 6
	if len(res.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d: %v", len(res.Messages), res.Messages)
	}
	if !strings.HasPrefix(res.Messages[0], "Deck must have") {
		t.Errorf("rule order: first message %q", res.Messages[0])
	}
	if len(res.DuplicateCards) != 2 {
		t.Errorf("DuplicateCards = %v", res.DuplicateCards)
	}
}

func TestValidateIdempotent(t *testing.T) {
	deck := append(makeDeck(10, 10), testPlot("p1"), testPlot("p1"), testGroup("g2", 1), testGroup("g2", 1))
	a := ValidateDeck(nil, deck)
	b := ValidateDeck(nil, deck)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestValidatePrebuiltDecks(t *testing.T) {
	c := DefaultCatalog()
	for _, id := range PrebuiltFactions() {
		f, _ := c.Faction(id)
		res := ValidateDeck(f, c.Resolve(PrebuiltDeck(id)))
		if !res.IsValid {
			t.Errorf("%s prebuilt deck invalid: %v", id, res.Messages)
		}
	}
}

func TestCopyLimit(t *testing.T) {
	u := testGroup("u", 0)
	u.Unique = true
	tests := []struct {
		card Card
		want int
	}{
		{testGroup("g", 0), 2},
		{testPlot("p"), 2},
		{u, 1},
		{testFaction("f", "1/1"), 0},
	}
	for _, tt := range tests {
		if got := CopyLimit(tt.card); got != tt.want {
			t.Errorf("CopyLimit(%s) = %d, want %d", tt.card.CardID(), got, tt.want)
		}
	}
}
