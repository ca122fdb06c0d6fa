package deck

import "github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"

// Fixture returns a fixed 48-card ordering for reproducible scenarios,
// bypassing Shuffle without touching the shuffle path itself.
//
// The ordering is arranged so the first player holds the January crane
// while the dealt field holds the other three January cards: playing
// the crane immediately produces a triple match. Neither hand contains
// four of a month or four same-month pairs, and the field holds no four
// of a month, so the special-condition pre-checks stay silent.
func Fixture() []card.ID {
	return []card.ID{
		// hand A: one card per month, crane first
		1, 5, 9, 13, 17, 21, 25, 29,
		// hand B: one card per month, offset from hand A
		6, 10, 14, 18, 22, 26, 30, 33,
		// field: the remaining three January cards plus late-month filler
		2, 3, 4, 37, 41, 45, 34, 38,
		// stock: everything else in catalog order
		7, 8, 11, 12, 15, 16, 19, 20,
		23, 24, 27, 28, 31, 32, 35, 36,
		39, 40, 42, 43, 44, 46, 47, 48,
	}
}
