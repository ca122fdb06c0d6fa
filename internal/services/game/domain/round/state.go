package round

import (
	"errors"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/deck"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"
)

// FlowState is the round's current position in the turn cycle.
type FlowState int

const (
	// FlowAwaitingHandPlay waits for the active player to play a hand card.
	FlowAwaitingHandPlay FlowState = iota
	// FlowAwaitingSelection waits for the active player to pick one of
	// two same-month targets for an ambiguous drawn-card match.
	FlowAwaitingSelection
	// FlowAwaitingDecision waits for the active player to continue
	// (koi-koi) or end the round after newly forming a pattern.
	FlowAwaitingDecision
	// FlowEnded marks a settled round.
	FlowEnded
)

func (s FlowState) String() string {
	switch s {
	case FlowAwaitingHandPlay:
		return "awaiting_hand_play"
	case FlowAwaitingSelection:
		return "awaiting_selection"
	case FlowAwaitingDecision:
		return "awaiting_decision"
	case FlowEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidStateTransition indicates a command issued in an
	// incompatible flow state.
	ErrInvalidStateTransition = errors.New("command not allowed in current flow state")
	// ErrWrongPlayer indicates a command from someone other than the
	// active player.
	ErrWrongPlayer = errors.New("command issued by non-active player")
	// ErrCardNotInHand indicates the referenced card is not in the
	// caller's hand.
	ErrCardNotInHand = errors.New("card is not in the player's hand")
)

// PlayerState is one player's per-round card holdings.
type PlayerState struct {
	PlayerID   string
	Hand       []card.ID
	Depository []card.ID
}

// KoiStatus tracks one player's continuation state for the round. The
// multiplier doubles on every koi-koi call, so it is always 2^n for n
// continuations.
type KoiStatus struct {
	PlayerID          string
	Multiplier        int
	ContinuationCount int
}

// PendingSelection is present exactly while the round awaits a target
// choice for an ambiguous drawn-card match.
type PendingSelection struct {
	DrawnCard       card.ID
	PossibleTargets []card.ID
	// HandPlay is the already-committed hand-card result the final
	// turn record is assembled from.
	HandPlay Capture
	// PriorYaku is the active pattern set at the start of the turn,
	// compared after the selection resolves so patterns formed by the
	// hand-play capture still trigger the decision.
	PriorYaku []yaku.Active
}

// PendingDecision is present exactly while the round awaits a koi-koi
// or end-round decision.
type PendingDecision struct {
	ActiveYaku []yaku.Active
}

// Round is one dealt round of koi-koi. Mutating operations stage every
// change first and commit only on success, so a rejected command leaves
// the round untouched. Version increments on every accepted mutation.
type Round struct {
	DealerID       string
	ActivePlayerID string
	Flow           FlowState
	Stock          []card.ID
	Field          []card.ID
	Players        [2]PlayerState
	Koi            [2]KoiStatus
	Selection      *PendingSelection
	Decision       *PendingDecision
	Rules          yaku.RuleTable
	Version        uint64
}

// New builds a round from a deal. The dealer owns hand A and, per the
// standard rule this engine fixes, plays first.
func New(dealerID, opponentID string, d deck.Deal, rules yaku.RuleTable) *Round {
	return &Round{
		DealerID:       dealerID,
		ActivePlayerID: dealerID,
		Flow:           FlowAwaitingHandPlay,
		Stock:          append([]card.ID(nil), d.Stock...),
		Field:          append([]card.ID(nil), d.Field...),
		Players: [2]PlayerState{
			{PlayerID: dealerID, Hand: append([]card.ID(nil), d.HandA...)},
			{PlayerID: opponentID, Hand: append([]card.ID(nil), d.HandB...)},
		},
		Koi: [2]KoiStatus{
			{PlayerID: dealerID, Multiplier: 1},
			{PlayerID: opponentID, Multiplier: 1},
		},
		Rules: rules,
	}
}

// playerIndex resolves a player id to its slot, or -1.
func (r *Round) playerIndex(playerID string) int {
	for i := range r.Players {
		if r.Players[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// Player returns the state for a player id, nil when unknown.
func (r *Round) Player(playerID string) *PlayerState {
	idx := r.playerIndex(playerID)
	if idx < 0 {
		return nil
	}
	return &r.Players[idx]
}

// KoiFor returns the koi status for a player id, nil when unknown.
func (r *Round) KoiFor(playerID string) *KoiStatus {
	for i := range r.Koi {
		if r.Koi[i].PlayerID == playerID {
			return &r.Koi[i]
		}
	}
	return nil
}

func (r *Round) handsEmpty() bool {
	return len(r.Players[0].Hand) == 0 && len(r.Players[1].Hand) == 0
}

func removeCard(hand []card.ID, id card.ID) ([]card.ID, bool) {
	for i, held := range hand {
		if held == id {
			next := make([]card.ID, 0, len(hand)-1)
			next = append(next, hand[:i]...)
			return append(next, hand[i+1:]...), true
		}
	}
	return hand, false
}
