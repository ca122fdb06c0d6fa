package round

import (
	"fmt"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
)

// InvariantError signals a conservation or consistency violation. It is
// a programming-bug signal, never an expected game event: callers
// should treat it as fatal rather than report it to a player.
type InvariantError struct {
	Kind   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation (%s): %s", e.Kind, e.Detail)
}

// Verify checks the round's structural invariants: every one of the 48
// cards appears exactly once across stock, field, hands, and
// depositories, and the pending sub-state matches the flow state.
func Verify(r *Round) error {
	if r == nil {
		return &InvariantError{Kind: "missing_round", Detail: "round is nil"}
	}

	counts := make(map[card.ID]int, card.Total)
	tally := func(zone string, ids []card.ID) *InvariantError {
		for _, id := range ids {
			if !card.Valid(id) {
				return &InvariantError{Kind: "unknown_card", Detail: fmt.Sprintf("%s holds unknown card %d", zone, id)}
			}
			counts[id]++
		}
		return nil
	}

	zones := []struct {
		name string
		ids  []card.ID
	}{
		{"stock", r.Stock},
		{"field", r.Field},
		{"hand_a", r.Players[0].Hand},
		{"hand_b", r.Players[1].Hand},
		{"depository_a", r.Players[0].Depository},
		{"depository_b", r.Players[1].Depository},
	}
	for _, zone := range zones {
		if err := tally(zone.name, zone.ids); err != nil {
			return err
		}
	}
	// A pending drawn card sits outside every zone until its selection
	// resolves.
	if r.Selection != nil {
		if err := tally("pending_selection", []card.ID{r.Selection.DrawnCard}); err != nil {
			return err
		}
	}

	for _, id := range card.Deck() {
		switch counts[id] {
		case 1:
		case 0:
			return &InvariantError{Kind: "card_missing", Detail: fmt.Sprintf("card %d is not in any zone", id)}
		default:
			return &InvariantError{Kind: "card_duplicated", Detail: fmt.Sprintf("card %d appears %d times", id, counts[id])}
		}
	}

	if (r.Flow == FlowAwaitingSelection) != (r.Selection != nil) {
		return &InvariantError{Kind: "selection_state", Detail: fmt.Sprintf("flow %s with selection present=%v", r.Flow, r.Selection != nil)}
	}
	if (r.Flow == FlowAwaitingDecision) != (r.Decision != nil) {
		return &InvariantError{Kind: "decision_state", Detail: fmt.Sprintf("flow %s with decision present=%v", r.Flow, r.Decision != nil)}
	}
	return nil
}
