package card

import "fmt"

// ID identifies one of the 48 hanafuda cards.
type ID int

// Month is the flower month a card belongs to, 1 through 12.
type Month int

// Category classifies a card for matching and yaku purposes.
type Category int

const (
	// CategoryUnspecified represents an invalid category value.
	CategoryUnspecified Category = iota
	// CategoryBright marks one of the five 20-point light cards.
	CategoryBright
	// CategoryAnimal marks a 10-point animal card.
	CategoryAnimal
	// CategoryRibbon marks a 5-point ribbon card.
	CategoryRibbon
	// CategoryChaff marks a 1-point plain card.
	CategoryChaff
)

func (c Category) String() string {
	switch c {
	case CategoryBright:
		return "bright"
	case CategoryAnimal:
		return "animal"
	case CategoryRibbon:
		return "ribbon"
	case CategoryChaff:
		return "chaff"
	default:
		return "unspecified"
	}
}

// Total is the number of cards in a complete hanafuda deck.
const Total = 48

// Named card ids referenced by yaku detection. IDs are assigned per
// month in blocks of four, notable card first.
const (
	IDCrane       ID = 1  // January bright
	IDCurtain     ID = 9  // March bright
	IDButterflies ID = 21 // June animal
	IDBoar        ID = 25 // July animal
	IDMoon        ID = 29 // August bright
	IDGeese       ID = 30 // August animal
	IDSakeCup     ID = 33 // September animal
	IDDeer        ID = 37 // October animal
	IDRainMan     ID = 41 // November bright
	IDSwallow     ID = 42 // November animal
	IDPhoenix     ID = 45 // December bright
)

// Card is the immutable identity of a single hanafuda card.
type Card struct {
	ID       ID
	Month    Month
	Category Category
	Name     string
}

// catalog is the process-wide static 48-card table. It is never mutated.
var catalog = [Total]Card{
	{IDCrane, 1, CategoryBright, "crane"},
	{2, 1, CategoryRibbon, "pine poem ribbon"},
	{3, 1, CategoryChaff, "pine chaff"},
	{4, 1, CategoryChaff, "pine chaff"},
	{5, 2, CategoryAnimal, "bush warbler"},
	{6, 2, CategoryRibbon, "plum poem ribbon"},
	{7, 2, CategoryChaff, "plum chaff"},
	{8, 2, CategoryChaff, "plum chaff"},
	{IDCurtain, 3, CategoryBright, "curtain"},
	{10, 3, CategoryRibbon, "cherry poem ribbon"},
	{11, 3, CategoryChaff, "cherry chaff"},
	{12, 3, CategoryChaff, "cherry chaff"},
	{13, 4, CategoryAnimal, "cuckoo"},
	{14, 4, CategoryRibbon, "wisteria ribbon"},
	{15, 4, CategoryChaff, "wisteria chaff"},
	{16, 4, CategoryChaff, "wisteria chaff"},
	{17, 5, CategoryAnimal, "eight-plank bridge"},
	{18, 5, CategoryRibbon, "iris ribbon"},
	{19, 5, CategoryChaff, "iris chaff"},
	{20, 5, CategoryChaff, "iris chaff"},
	{IDButterflies, 6, CategoryAnimal, "butterflies"},
	{22, 6, CategoryRibbon, "peony blue ribbon"},
	{23, 6, CategoryChaff, "peony chaff"},
	{24, 6, CategoryChaff, "peony chaff"},
	{IDBoar, 7, CategoryAnimal, "boar"},
	{26, 7, CategoryRibbon, "clover ribbon"},
	{27, 7, CategoryChaff, "clover chaff"},
	{28, 7, CategoryChaff, "clover chaff"},
	{IDMoon, 8, CategoryBright, "full moon"},
	{IDGeese, 8, CategoryAnimal, "geese"},
	{31, 8, CategoryChaff, "pampas chaff"},
	{32, 8, CategoryChaff, "pampas chaff"},
	{IDSakeCup, 9, CategoryAnimal, "sake cup"},
	{34, 9, CategoryRibbon, "chrysanthemum blue ribbon"},
	{35, 9, CategoryChaff, "chrysanthemum chaff"},
	{36, 9, CategoryChaff, "chrysanthemum chaff"},
	{IDDeer, 10, CategoryAnimal, "deer"},
	{38, 10, CategoryRibbon, "maple blue ribbon"},
	{39, 10, CategoryChaff, "maple chaff"},
	{40, 10, CategoryChaff, "maple chaff"},
	{IDRainMan, 11, CategoryBright, "rain man"},
	{IDSwallow, 11, CategoryAnimal, "swallow"},
	{43, 11, CategoryRibbon, "willow ribbon"},
	{44, 11, CategoryChaff, "lightning"},
	{IDPhoenix, 12, CategoryBright, "phoenix"},
	{46, 12, CategoryChaff, "paulownia chaff"},
	{47, 12, CategoryChaff, "paulownia chaff"},
	{48, 12, CategoryChaff, "paulownia chaff"},
}

// poem ribbon months (red ribbons with writing) and blue ribbon months.
var (
	poemRibbonMonths = map[Month]bool{1: true, 2: true, 3: true}
	blueRibbonMonths = map[Month]bool{6: true, 9: true, 10: true}
)

// Lookup resolves a card id against the static catalog.
func Lookup(id ID) (Card, error) {
	if id < 1 || id > Total {
		return Card{}, fmt.Errorf("unknown card id %d", id)
	}
	return catalog[id-1], nil
}

// MustLookup resolves a card id and panics on unknown ids. Unknown ids
// in engine-internal paths are programming bugs, not game events.
func MustLookup(id ID) Card {
	c, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether id names a catalog card.
func Valid(id ID) bool {
	return id >= 1 && id <= Total
}

// Deck returns the full 48-card id sequence in catalog order.
func Deck() []ID {
	ids := make([]ID, Total)
	for i := range catalog {
		ids[i] = catalog[i].ID
	}
	return ids
}

// IsPoemRibbon reports whether id is one of the three poem ribbons.
func IsPoemRibbon(id ID) bool {
	c := MustLookup(id)
	return c.Category == CategoryRibbon && poemRibbonMonths[c.Month]
}

// IsBlueRibbon reports whether id is one of the three blue ribbons.
func IsBlueRibbon(id ID) bool {
	c := MustLookup(id)
	return c.Category == CategoryRibbon && blueRibbonMonths[c.Month]
}
