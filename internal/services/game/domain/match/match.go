// Package match classifies a played or drawn card against the open
// field and executes the resulting capture.
package match

import (
	"errors"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
)

// Kind enumerates how a card relates to the field by month equality.
type Kind int

const (
	// KindNoMatch means no field card shares the month.
	KindNoMatch Kind = iota
	// KindSingle means exactly one field card shares the month.
	KindSingle
	// KindDouble means two field cards share the month and the player
	// must choose which one to capture.
	KindDouble
	// KindTriple means three field cards share the month and all three
	// are captured; leaving any behind would orphan an uncapturable pair.
	KindTriple
)

func (k Kind) String() string {
	switch k {
	case KindNoMatch:
		return "no_match"
	case KindSingle:
		return "single"
	case KindDouble:
		return "double"
	case KindTriple:
		return "triple"
	default:
		return "unknown"
	}
}

// ErrInvalidTargetSelection indicates a capture target that is missing
// when required or not among the outcome's valid targets.
var ErrInvalidTargetSelection = errors.New("invalid capture target selection")

// Outcome is the closed result of analyzing a card against the field.
// Targets holds 0, 1, 2, or 3 field card ids according to Kind.
type Outcome struct {
	Kind    Kind
	Targets []card.ID
}

// RequiresChoice reports whether the outcome needs a player-supplied target.
func (o Outcome) RequiresChoice() bool {
	return o.Kind == KindDouble
}

// Analyze counts field cards sharing the played card's month. Four
// same-month field cards cannot occur: the special-condition pre-check
// redeals such fields before play begins.
func Analyze(played card.ID, field []card.ID) Outcome {
	month := card.MustLookup(played).Month
	var targets []card.ID
	for _, id := range field {
		if card.MustLookup(id).Month == month {
			targets = append(targets, id)
		}
	}

	switch len(targets) {
	case 0:
		return Outcome{Kind: KindNoMatch}
	case 1:
		return Outcome{Kind: KindSingle, Targets: targets}
	case 2:
		return Outcome{Kind: KindDouble, Targets: targets}
	default:
		return Outcome{Kind: KindTriple, Targets: targets[:3]}
	}
}

// ExecuteCapture resolves an outcome into the captured card set,
// including the played card itself when anything is captured.
//
// A Double outcome requires chosen to name one of the two targets. For
// every other kind a supplied target must still be among the outcome's
// valid targets; naming a card the outcome cannot take is rejected.
func ExecuteCapture(played card.ID, chosen *card.ID, outcome Outcome) ([]card.ID, error) {
	if chosen != nil && !containsTarget(outcome.Targets, *chosen) {
		return nil, ErrInvalidTargetSelection
	}

	switch outcome.Kind {
	case KindNoMatch:
		return nil, nil
	case KindSingle:
		return []card.ID{played, outcome.Targets[0]}, nil
	case KindDouble:
		if chosen == nil {
			return nil, ErrInvalidTargetSelection
		}
		return []card.ID{played, *chosen}, nil
	case KindTriple:
		captured := []card.ID{played}
		return append(captured, outcome.Targets...), nil
	default:
		return nil, ErrInvalidTargetSelection
	}
}

func containsTarget(targets []card.ID, id card.ID) bool {
	for _, target := range targets {
		if target == id {
			return true
		}
	}
	return false
}

// RemoveFromField returns field minus the provided ids. Pure set
// difference: ids not present are ignored.
func RemoveFromField(field []card.ID, remove []card.ID) []card.ID {
	drop := make(map[card.ID]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	kept := make([]card.ID, 0, len(field))
	for _, id := range field {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// AddToField returns field plus the provided id. Pure set union.
func AddToField(field []card.ID, id card.ID) []card.ID {
	return append(append([]card.ID(nil), field...), id)
}
