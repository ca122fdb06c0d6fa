package yaku

// Type identifies a scorable hand pattern.
type Type string

const (
	// TypeFiveBrights is all five bright cards.
	TypeFiveBrights Type = "five_brights"
	// TypeFourBrights is four brights excluding the rain man.
	TypeFourBrights Type = "four_brights"
	// TypeRainFourBrights is four brights including the rain man.
	TypeRainFourBrights Type = "rain_four_brights"
	// TypeThreeBrights is three or more brights excluding the rain man.
	TypeThreeBrights Type = "three_brights"
	// TypePoemRibbons is the three red poem ribbons.
	TypePoemRibbons Type = "poem_ribbons"
	// TypeBlueRibbons is the three blue ribbons.
	TypeBlueRibbons Type = "blue_ribbons"
	// TypeRibbons is five or more ribbons of any kind.
	TypeRibbons Type = "ribbons"
	// TypeBoarDeerButterfly is the classic animal trio.
	TypeBoarDeerButterfly Type = "boar_deer_butterfly"
	// TypeMoonViewing is the full moon together with the sake cup.
	TypeMoonViewing Type = "moon_viewing"
	// TypeFlowerViewing is the curtain together with the sake cup.
	TypeFlowerViewing Type = "flower_viewing"
	// TypeAnimals is five or more animal cards.
	TypeAnimals Type = "animals"
	// TypeChaff is ten or more chaff cards.
	TypeChaff Type = "chaff"
)

// Rule carries the configurable base points and enable flag for one
// pattern type. Disabled patterns never appear in detection results.
type Rule struct {
	Points  int
	Enabled bool
}

// RuleTable maps every pattern type to its rule. Tables are immutable
// configuration values threaded through every detection call.
type RuleTable map[Type]Rule

// DefaultRules returns the standard koi-koi point table with every
// pattern enabled.
func DefaultRules() RuleTable {
	return RuleTable{
		TypeFiveBrights:       {Points: 10, Enabled: true},
		TypeFourBrights:       {Points: 8, Enabled: true},
		TypeRainFourBrights:   {Points: 7, Enabled: true},
		TypeThreeBrights:      {Points: 5, Enabled: true},
		TypePoemRibbons:       {Points: 5, Enabled: true},
		TypeBlueRibbons:       {Points: 5, Enabled: true},
		TypeRibbons:           {Points: 1, Enabled: true},
		TypeBoarDeerButterfly: {Points: 5, Enabled: true},
		TypeMoonViewing:       {Points: 5, Enabled: true},
		TypeFlowerViewing:     {Points: 5, Enabled: true},
		TypeAnimals:           {Points: 1, Enabled: true},
		TypeChaff:             {Points: 1, Enabled: true},
	}
}

// rule returns the configured rule for a type, disabled when absent.
func (t RuleTable) rule(pattern Type) Rule {
	if t == nil {
		return Rule{}
	}
	return t[pattern]
}
