package game

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestOpenDeckBuilderSources(t *testing.T) {
	ctx := context.Background()
	c := DefaultCatalog()

	// Nothing saved: prebuilt deck.
	store := &memStore{}
	b, err := OpenDeckBuilder(ctx, store, c, "ufos")
	if err != nil {
		t.Fatal(err)
	}
	if b.Source != SourcePrebuilt || !reflect.DeepEqual(b.IDs(), PrebuiltDeck("ufos")) {
		t.Errorf("source %s, %d cards", b.Source, b.Len())
	}

	// Saved deck for the same faction wins.
	store.saved = &SavedDeck{FactionID: "ufos", CardIDs: []string{"prebuilt-plot-9", "ghost"}}
	b, _ = OpenDeckBuilder(ctx, store, c, "ufos")
	if b.Source != SourceSaved || !reflect.DeepEqual(b.IDs(), []string{"prebuilt-plot-9"}) {
		t.Errorf("source %s, ids %v", b.Source, b.IDs())
	}

	// Saved deck for another faction is ignored.
	b, _ = OpenDeckBuilder(ctx, store, c, "shangri-la")
	if b.Source != SourcePrebuilt {
		t.Errorf("source = %s", b.Source)
	}

	// Saved deck that resolves to nothing falls through to prebuilt.
	store.saved = &SavedDeck{FactionID: "ufos", CardIDs: []string{"ghost"}}
	b, _ = OpenDeckBuilder(ctx, store, c, "ufos")
	if b.Source != SourcePrebuilt {
		t.Errorf("source = %s", b.Source)
	}

	// No prebuilt deck: empty.
	custom := mustCatalog(t, testFaction("lonely", "3/3"), testGroup("a", 1))
	b, _ = OpenDeckBuilder(ctx, &memStore{}, custom, "lonely")
	if b.Source != SourceEmpty || b.Len() != 0 {
		t.Errorf("source %s, %d cards", b.Source, b.Len())
	}

	if _, err := OpenDeckBuilder(ctx, store, c, "prebuilt-group-1"); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("err = %v", err)
	}
}

func TestOpenDeckBuilderStoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	b, err := OpenDeckBuilder(context.Background(), &memStore{err: boom}, DefaultCatalog(), "ufos")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if b == nil || b.Source != SourcePrebuilt {
		t.Error("expected prebuilt fallback alongside the error")
	}
}

func TestDeckBuilderLimits(t *testing.T) {
	u := testGroup("u", 1)
	u.Unique = true
	c := mustCatalog(t, testFaction("f", "1/1"), testGroup("g", 1), u)
	f, _ := c.Faction("f")
	b := NewDeckBuilder(c, f)

	if err := b.Add("g"); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("g"); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("g"); !errors.Is(err, ErrCopyLimit) {
		t.Errorf("third copy: %v", err)
	}
	if err := b.Add("u"); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("u"); !errors.Is(err, ErrUniqueLimit) {
		t.Errorf("second unique: %v", err)
	}
	if err := b.Add("f"); !errors.Is(err, ErrFactionInPool) {
		t.Errorf("faction: %v", err)
	}
	if err := b.Add("nope"); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("unknown: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("len = %d", b.Len())
	}

	if err := b.Remove("g"); err != nil {
		t.Fatal(err)
	}
	if b.Count("g") != 1 {
		t.Errorf("count after remove = %d", b.Count("g"))
	}
	if err := b.Remove("nope"); !errors.Is(err, ErrNotInDeck) {
		t.Errorf("remove missing: %v", err)
	}

	res := b.Validate()
	if res.IsValid || res.TotalCards != 2 || len(res.DuplicateCards) != 0 {
		t.Errorf("validate = %+v", res)
	}
}

func TestDeckBuilderSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	c := DefaultCatalog()
	store := &memStore{}

	f, _ := c.Faction("the-network")
	b := NewDeckBuilder(c, f)
	for _, id := range []string{"prebuilt-group-2", "prebuilt-plot-1", "prebuilt-group-2"} {
		if err := b.Add(id); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Save(ctx, store); err != nil {
		t.Fatal(err)
	}
	if store.saved.FactionID != "the-network" {
		t.Errorf("saved faction = %s", store.saved.FactionID)
	}

	other := NewDeckBuilder(c, f)
	ok, err := other.LoadSaved(ctx, store)
	if err != nil || !ok {
		t.Fatalf("LoadSaved = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(other.IDs(), b.IDs()) {
		t.Errorf("loaded %v, want %v", other.IDs(), b.IDs())
	}

	g, _ := c.Faction("ufos")
	mismatch := NewDeckBuilder(c, g)
	if _, err := mismatch.LoadSaved(ctx, store); !errors.Is(err, ErrFactionMismatch) {
		t.Errorf("err = %v, want ErrFactionMismatch", err)
	}
	if mismatch.Len() != 0 {
		t.Error("mismatched load changed the deck")
	}

	ok, err = NewDeckBuilder(c, f).LoadSaved(ctx, &memStore{})
	if ok || err != nil {
		t.Errorf("empty store: %v, %v", ok, err)
	}
}

func TestSaveLoadRoundTripDropsUnknown(t *testing.T) {
	ctx := context.Background()
	c := DefaultCatalog()
	store := &memStore{}
	in := []string{"prebuilt-plot-3", "gone", "prebuilt-group-7", "also-gone", "prebuilt-plot-3"}
	if err := store.SaveDeck(ctx, "ufos", in); err != nil {
		t.Fatal(err)
	}
	f, cards, ok, err := LoadResolvedDeck(ctx, store, c)
	if err != nil || !ok {
		t.Fatalf("load: %v %v", ok, err)
	}
	if f == nil || f.ID != "ufos" {
		t.Errorf("faction = %v", f)
	}
	want := []string{"prebuilt-plot-3", "prebuilt-group-7", "prebuilt-plot-3"}
	if got := ids(cards); !reflect.DeepEqual(got, want) {
		t.Errorf("cards = %v", got)
	}
}
