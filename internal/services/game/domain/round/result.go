package round

import (
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/match"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/special"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"
)

// Capture records how a single played or drawn card resolved against
// the field.
type Capture struct {
	Played   card.ID
	Outcome  match.Outcome
	Captured []card.ID
	// PlacedOnField is true when the card matched nothing and joined
	// the field instead.
	PlacedOnField bool
}

// PlayResult is the discrete record of one hand-play command.
type PlayResult struct {
	PlayerID string
	HandPlay Capture
	// Drawn is the stock card drawn this turn, nil when the stock was
	// already empty.
	Drawn *card.ID
	// DrawPlay is the drawn card's resolution, nil while a target
	// selection is pending or when nothing was drawn.
	DrawPlay *Capture
	NewYaku  []yaku.Active
	Flow     FlowState
	// End is set when this play concluded the round (exhaustion draw).
	End *EndResult
}

// SelectResult is the discrete record of resolving a pending selection.
type SelectResult struct {
	PlayerID string
	DrawPlay Capture
	NewYaku  []yaku.Active
	Flow     FlowState
	End      *EndResult
}

// Decision enumerates the two answers to a pending decision.
type Decision int

const (
	// DecisionKoiKoi continues the round, doubling the caller's
	// eventual multiplier.
	DecisionKoiKoi Decision = iota
	// DecisionEndRound settles the round in the caller's favor.
	DecisionEndRound
)

func (d Decision) String() string {
	switch d {
	case DecisionKoiKoi:
		return "koi_koi"
	case DecisionEndRound:
		return "end_round"
	default:
		return "unknown"
	}
}

// DecisionResult is the discrete record of a koi-koi/end decision.
type DecisionResult struct {
	PlayerID string
	Decision Decision
	// Koi is the caller's continuation status after a koi-koi call.
	Koi  *KoiStatus
	Flow FlowState
	// End is set when the decision settled the round.
	End *EndResult
}

// EndResult represents every way a round can end: an explicit
// settlement, an exhaustion draw, or a pre-play special condition.
type EndResult struct {
	WinnerID      string
	ActiveYaku    []yaku.Active
	BasePoints    int
	FinalPoints   int
	KoiMultiplier int
	KoiApplied    bool
	Doubled       bool
	IsDraw        bool
	SpecialRule   special.Kind
}
