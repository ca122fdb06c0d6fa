// Package yaku detects scorable hand patterns in a captured pile.
//
// Detection is stateless: every call evaluates the full depository
// against a rule table. The bright family is mutually exclusive with
// the highest-scoring satisfied pattern winning; every other family
// entry is evaluated independently and may stack.
package yaku

import "github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"

// Active is one satisfied pattern with its resolved point value and
// the depository cards that satisfy it.
type Active struct {
	Type   Type
	Points int
	Cards  []card.ID
}

// thresholds for the count-based patterns: base points at the
// threshold, plus one point per card beyond it.
const (
	ribbonThreshold = 5
	animalThreshold = 5
	chaffThreshold  = 10
)

// Detect returns the active patterns for a depository under a rule
// table, in a fixed evaluation order so results are deterministic.
func Detect(depository []card.ID, table RuleTable) []Active {
	p := newPile(depository)

	var active []Active
	if bright, ok := detectBrights(p, table); ok {
		active = append(active, bright)
	}
	for _, detect := range []func(pile, RuleTable) (Active, bool){
		detectPoemRibbons,
		detectBlueRibbons,
		detectRibbons,
		detectBoarDeerButterfly,
		detectMoonViewing,
		detectFlowerViewing,
		detectAnimals,
		detectChaff,
	} {
		if pattern, ok := detect(p, table); ok {
			active = append(active, pattern)
		}
	}
	return active
}

// NewlyFormed reports patterns that are brand-new since previous, or
// whose point value increased. This drives the continuation decision
// the instant a capture forms or upgrades a pattern.
func NewlyFormed(previous, current []Active) []Active {
	before := make(map[Type]int, len(previous))
	for _, pattern := range previous {
		before[pattern.Type] = pattern.Points
	}

	var formed []Active
	for _, pattern := range current {
		points, existed := before[pattern.Type]
		if !existed || pattern.Points > points {
			formed = append(formed, pattern)
		}
	}
	return formed
}

// TotalPoints sums the point values of the provided patterns.
func TotalPoints(active []Active) int {
	total := 0
	for _, pattern := range active {
		total += pattern.Points
	}
	return total
}

// pile is the pre-bucketed view of a depository used by the detectors.
type pile struct {
	has     map[card.ID]bool
	brights []card.ID
	animals []card.ID
	ribbons []card.ID
	chaff   []card.ID
	poem    []card.ID
	blue    []card.ID
}

func newPile(depository []card.ID) pile {
	p := pile{has: make(map[card.ID]bool, len(depository))}
	for _, id := range depository {
		p.has[id] = true
		switch card.MustLookup(id).Category {
		case card.CategoryBright:
			p.brights = append(p.brights, id)
		case card.CategoryAnimal:
			p.animals = append(p.animals, id)
		case card.CategoryRibbon:
			p.ribbons = append(p.ribbons, id)
			if card.IsPoemRibbon(id) {
				p.poem = append(p.poem, id)
			}
			if card.IsBlueRibbon(id) {
				p.blue = append(p.blue, id)
			}
		case card.CategoryChaff:
			p.chaff = append(p.chaff, id)
		}
	}
	return p
}

func (p pile) hasAll(ids ...card.ID) bool {
	for _, id := range ids {
		if !p.has[id] {
			return false
		}
	}
	return true
}

// detectBrights resolves the mutually exclusive bright family. The
// pattern satisfied by the card holdings is chosen first; a disabled
// rule then suppresses the family entirely rather than downgrading to
// a lesser bright pattern.
func detectBrights(p pile, table RuleTable) (Active, bool) {
	hasRain := p.has[card.IDRainMan]
	nonRain := make([]card.ID, 0, len(p.brights))
	for _, id := range p.brights {
		if id != card.IDRainMan {
			nonRain = append(nonRain, id)
		}
	}

	var pattern Type
	var cards []card.ID
	switch {
	case len(p.brights) == 5:
		pattern, cards = TypeFiveBrights, p.brights
	case len(p.brights) == 4 && !hasRain:
		pattern, cards = TypeFourBrights, p.brights
	case len(p.brights) == 4 && hasRain:
		pattern, cards = TypeRainFourBrights, p.brights
	case len(nonRain) >= 3:
		pattern, cards = TypeThreeBrights, nonRain
	default:
		return Active{}, false
	}

	rule := table.rule(pattern)
	if !rule.Enabled {
		return Active{}, false
	}
	return Active{Type: pattern, Points: rule.Points, Cards: append([]card.ID(nil), cards...)}, true
}

func detectPoemRibbons(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypePoemRibbons)
	if !rule.Enabled || len(p.poem) != 3 {
		return Active{}, false
	}
	return Active{Type: TypePoemRibbons, Points: rule.Points, Cards: append([]card.ID(nil), p.poem...)}, true
}

func detectBlueRibbons(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeBlueRibbons)
	if !rule.Enabled || len(p.blue) != 3 {
		return Active{}, false
	}
	return Active{Type: TypeBlueRibbons, Points: rule.Points, Cards: append([]card.ID(nil), p.blue...)}, true
}

func detectRibbons(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeRibbons)
	if !rule.Enabled || len(p.ribbons) < ribbonThreshold {
		return Active{}, false
	}
	points := rule.Points + len(p.ribbons) - ribbonThreshold
	return Active{Type: TypeRibbons, Points: points, Cards: append([]card.ID(nil), p.ribbons...)}, true
}

func detectBoarDeerButterfly(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeBoarDeerButterfly)
	if !rule.Enabled || !p.hasAll(card.IDBoar, card.IDDeer, card.IDButterflies) {
		return Active{}, false
	}
	cards := []card.ID{card.IDBoar, card.IDDeer, card.IDButterflies}
	return Active{Type: TypeBoarDeerButterfly, Points: rule.Points, Cards: cards}, true
}

func detectMoonViewing(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeMoonViewing)
	if !rule.Enabled || !p.hasAll(card.IDMoon, card.IDSakeCup) {
		return Active{}, false
	}
	return Active{Type: TypeMoonViewing, Points: rule.Points, Cards: []card.ID{card.IDMoon, card.IDSakeCup}}, true
}

func detectFlowerViewing(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeFlowerViewing)
	if !rule.Enabled || !p.hasAll(card.IDCurtain, card.IDSakeCup) {
		return Active{}, false
	}
	return Active{Type: TypeFlowerViewing, Points: rule.Points, Cards: []card.ID{card.IDCurtain, card.IDSakeCup}}, true
}

func detectAnimals(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeAnimals)
	if !rule.Enabled || len(p.animals) < animalThreshold {
		return Active{}, false
	}
	points := rule.Points + len(p.animals) - animalThreshold
	return Active{Type: TypeAnimals, Points: points, Cards: append([]card.ID(nil), p.animals...)}, true
}

func detectChaff(p pile, table RuleTable) (Active, bool) {
	rule := table.rule(TypeChaff)
	if !rule.Enabled || len(p.chaff) < chaffThreshold {
		return Active{}, false
	}
	points := rule.Points + len(p.chaff) - chaffThreshold
	return Active{Type: TypeChaff, Points: points, Cards: append([]card.ID(nil), p.chaff...)}, true
}
