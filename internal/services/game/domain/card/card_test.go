package card

import "testing"

func TestCatalogComposition(t *testing.T) {
	seen := map[ID]bool{}
	perMonth := map[Month]int{}
	perCategory := map[Category]int{}

	for _, id := range Deck() {
		if seen[id] {
			t.Fatalf("duplicate card id %d", id)
		}
		seen[id] = true

		c, err := Lookup(id)
		if err != nil {
			t.Fatalf("lookup %d: %v", id, err)
		}
		if c.ID != id {
			t.Fatalf("catalog id mismatch: slot %d holds %d", id, c.ID)
		}
		if c.Month < 1 || c.Month > 12 {
			t.Fatalf("card %d has month %d", id, c.Month)
		}
		perMonth[c.Month]++
		perCategory[c.Category]++
	}

	if len(seen) != Total {
		t.Fatalf("expected %d cards, got %d", Total, len(seen))
	}
	for month, count := range perMonth {
		if count != 4 {
			t.Fatalf("month %d has %d cards, want 4", month, count)
		}
	}

	wantCategories := map[Category]int{
		CategoryBright: 5,
		CategoryAnimal: 9,
		CategoryRibbon: 10,
		CategoryChaff:  24,
	}
	for category, want := range wantCategories {
		if perCategory[category] != want {
			t.Fatalf("category %s has %d cards, want %d", category, perCategory[category], want)
		}
	}
}

func TestNamedCards(t *testing.T) {
	brights := []ID{IDCrane, IDCurtain, IDMoon, IDRainMan, IDPhoenix}
	for _, id := range brights {
		if MustLookup(id).Category != CategoryBright {
			t.Fatalf("card %d should be a bright", id)
		}
	}

	animals := []ID{IDBoar, IDDeer, IDButterflies, IDSakeCup, IDGeese, IDSwallow}
	for _, id := range animals {
		if MustLookup(id).Category != CategoryAnimal {
			t.Fatalf("card %d should be an animal", id)
		}
	}
}

func TestRibbonClassification(t *testing.T) {
	var poem, blue int
	for _, id := range Deck() {
		if IsPoemRibbon(id) {
			poem++
		}
		if IsBlueRibbon(id) {
			blue++
		}
	}
	if poem != 3 {
		t.Fatalf("expected 3 poem ribbons, got %d", poem)
	}
	if blue != 3 {
		t.Fatalf("expected 3 blue ribbons, got %d", blue)
	}
}

func TestLookupUnknownID(t *testing.T) {
	for _, id := range []ID{0, -1, 49} {
		if _, err := Lookup(id); err == nil {
			t.Fatalf("expected error for id %d", id)
		}
		if Valid(id) {
			t.Fatalf("id %d should not be valid", id)
		}
	}
}
