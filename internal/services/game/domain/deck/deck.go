// Package deck implements shuffling and dealing for a koi-koi round.
package deck

import (
	"errors"
	"math/rand"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
)

const (
	handSize  = 8
	fieldSize = 8
	stockSize = 24
)

// ErrInvalidDeckSize indicates the input deck is not the complete 48-card set.
var ErrInvalidDeckSize = errors.New("deck must contain the 48 unique cards")

// ErrInvalidPlayerCount indicates dealing was requested for other than two players.
var ErrInvalidPlayerCount = errors.New("dealing requires exactly two players")

// Deal is the outcome of dealing a shuffled deck: two hands, the open
// field, and the face-down stock, in the fixed slicing order hand A,
// hand B, field, stock.
type Deal struct {
	HandA []card.ID
	HandB []card.ID
	Field []card.ID
	Stock []card.ID
}

// Shuffle returns a uniform permutation of the full 48-card deck.
//
// Shuffle is deterministic with respect to seed: the same seed always
// yields the same ordering, which keeps dealt rounds replayable from a
// stored seed. Production callers obtain seeds from crypto/rand via the
// platform random package.
func Shuffle(seed int64) []card.ID {
	ids := card.Deck()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

// New deals a shuffled deck into hands, field, and stock.
func New(shuffled []card.ID, playerCount int) (Deal, error) {
	if playerCount != 2 {
		return Deal{}, ErrInvalidPlayerCount
	}
	if len(shuffled) != card.Total {
		return Deal{}, ErrInvalidDeckSize
	}
	seen := make(map[card.ID]bool, card.Total)
	for _, id := range shuffled {
		if !card.Valid(id) || seen[id] {
			return Deal{}, ErrInvalidDeckSize
		}
		seen[id] = true
	}

	deal := Deal{
		HandA: append([]card.ID(nil), shuffled[:handSize]...),
		HandB: append([]card.ID(nil), shuffled[handSize:2*handSize]...),
		Field: append([]card.ID(nil), shuffled[2*handSize:2*handSize+fieldSize]...),
		Stock: append([]card.ID(nil), shuffled[2*handSize+fieldSize:]...),
	}
	return deal, nil
}
