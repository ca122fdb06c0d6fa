// Package score converts active patterns and a continuation multiplier
// into a settled point value.
package score

import "github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"

// doubleThreshold is the base-point total at which the final score is
// doubled, per the reference rules.
const doubleThreshold = 7

// Settlement is the audit-friendly breakdown of a scored round. It is
// fully re-derivable from the stored patterns and multiplier.
type Settlement struct {
	BasePoints  int
	Multiplier  int
	Doubled     bool
	FinalPoints int
}

// Settle computes the settlement for the given active patterns and
// koi-koi multiplier. The function is pure.
func Settle(active []yaku.Active, koiMultiplier int) Settlement {
	if koiMultiplier < 1 {
		koiMultiplier = 1
	}

	base := yaku.TotalPoints(active)
	doubled := base >= doubleThreshold
	final := base * koiMultiplier
	if doubled {
		final *= 2
	}

	return Settlement{
		BasePoints:  base,
		Multiplier:  koiMultiplier,
		Doubled:     doubled,
		FinalPoints: final,
	}
}
