// Package special checks the pre-round instant-win and redeal
// conditions that run once after dealing, before the first turn.
package special

import "github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"

// Kind enumerates the special round-start conditions.
type Kind int

const (
	// KindNone means no special condition applies and play proceeds.
	KindNone Kind = iota
	// KindFourOfAMonth is four same-month cards in one hand (teshi):
	// that player wins instantly.
	KindFourOfAMonth
	// KindFourPairs is a hand of four disjoint same-month pairs
	// (kuttsuki): that player wins instantly.
	KindFourPairs
	// KindFieldFour is four same-month cards on the dealt field: the
	// round is redealt with no winner.
	KindFieldFour
)

func (k Kind) String() string {
	switch k {
	case KindFourOfAMonth:
		return "four_of_a_month"
	case KindFourPairs:
		return "four_pairs"
	case KindFieldFour:
		return "field_four"
	default:
		return "none"
	}
}

// InstantWinPoints is awarded to the holder of a winning initial hand.
const InstantWinPoints = 6

// Flags toggles each check independently. A disabled check is skipped
// entirely.
type Flags struct {
	FourOfAMonth bool
	FourPairs    bool
	FieldFour    bool
}

// AllEnabled returns the standard configuration with every check on.
func AllEnabled() Flags {
	return Flags{FourOfAMonth: true, FourPairs: true, FieldFour: true}
}

// Result reports the first matching condition. PlayerID is empty for
// KindFieldFour, and Points is zero unless a player wins instantly.
type Result struct {
	Kind     Kind
	PlayerID string
	Points   int
}

// Hand pairs a player id with their dealt hand for detection.
type Hand struct {
	PlayerID string
	Cards    []card.ID
}

// Detect checks the special conditions in fixed priority order:
// four-of-a-month in either hand, then four pairs in either hand, then
// four of a month on the field. Only the first match applies. Hands are
// checked in deal order, so the dealer's hand wins ties.
func Detect(hands [2]Hand, field []card.ID, flags Flags) Result {
	if flags.FourOfAMonth {
		for _, hand := range hands {
			if hasFourOfAMonth(hand.Cards) {
				return Result{Kind: KindFourOfAMonth, PlayerID: hand.PlayerID, Points: InstantWinPoints}
			}
		}
	}
	if flags.FourPairs {
		for _, hand := range hands {
			if hasFourPairs(hand.Cards) {
				return Result{Kind: KindFourPairs, PlayerID: hand.PlayerID, Points: InstantWinPoints}
			}
		}
	}
	if flags.FieldFour && hasFourOfAMonth(field) {
		return Result{Kind: KindFieldFour}
	}
	return Result{Kind: KindNone}
}

func monthCounts(ids []card.ID) map[card.Month]int {
	counts := make(map[card.Month]int, len(ids))
	for _, id := range ids {
		counts[card.MustLookup(id).Month]++
	}
	return counts
}

func hasFourOfAMonth(ids []card.ID) bool {
	for _, count := range monthCounts(ids) {
		if count >= 4 {
			return true
		}
	}
	return false
}

// hasFourPairs reports whether an eight-card hand decomposes into four
// disjoint same-month pairs. A month holding four cards contributes two
// pairs, but that hand is already claimed by the four-of-a-month check
// when it is enabled.
func hasFourPairs(ids []card.ID) bool {
	if len(ids) != 8 {
		return false
	}
	pairs := 0
	for _, count := range monthCounts(ids) {
		if count%2 != 0 {
			return false
		}
		pairs += count / 2
	}
	return pairs == 4
}
