package round

import (
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/match"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/score"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/special"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"
)

// PlayHandCard runs one turn for the active player: resolve the hand
// card against the field, draw from the stock, resolve the drawn card,
// then either defer to a target selection, offer a continuation
// decision, end the round on exhaustion, or pass the turn.
//
// Every change is staged on working copies and committed only after
// all validation passes, so a rejected command mutates nothing.
func (r *Round) PlayHandCard(playerID string, cardID card.ID, target *card.ID) (PlayResult, error) {
	if r.Flow != FlowAwaitingHandPlay {
		return PlayResult{}, ErrInvalidStateTransition
	}
	if playerID != r.ActivePlayerID {
		return PlayResult{}, ErrWrongPlayer
	}
	idx := r.playerIndex(playerID)

	hand, held := removeCard(r.Players[idx].Hand, cardID)
	if !held {
		return PlayResult{}, ErrCardNotInHand
	}

	priorYaku := yaku.Detect(r.Players[idx].Depository, r.Rules)

	handOutcome := match.Analyze(cardID, r.Field)
	handCaptured, err := match.ExecuteCapture(cardID, target, handOutcome)
	if err != nil {
		return PlayResult{}, err
	}

	field := append([]card.ID(nil), r.Field...)
	depository := append([]card.ID(nil), r.Players[idx].Depository...)
	handPlay := Capture{Played: cardID, Outcome: handOutcome, Captured: handCaptured}
	if len(handCaptured) == 0 {
		field = match.AddToField(field, cardID)
		handPlay.PlacedOnField = true
	} else {
		field = match.RemoveFromField(field, handCaptured)
		depository = append(depository, handCaptured...)
	}

	// Draw one card unless the stock is exhausted; hand-only turns are
	// tolerated near round end.
	stock := r.Stock
	var drawn *card.ID
	var drawPlay *Capture
	if len(stock) > 0 {
		drawnCard := stock[0]
		stock = stock[1:]
		drawn = &drawnCard

		drawOutcome := match.Analyze(drawnCard, field)
		if drawOutcome.RequiresChoice() {
			// Ambiguous draw match: commit the hand play and park the
			// drawn card until the player chooses a target.
			r.Players[idx].Hand = hand
			r.Players[idx].Depository = depository
			r.Field = field
			r.Stock = append([]card.ID(nil), stock...)
			r.Selection = &PendingSelection{
				DrawnCard:       drawnCard,
				PossibleTargets: append([]card.ID(nil), drawOutcome.Targets...),
				HandPlay:        handPlay,
				PriorYaku:       priorYaku,
			}
			r.Flow = FlowAwaitingSelection
			r.Version++
			return PlayResult{
				PlayerID: playerID,
				HandPlay: handPlay,
				Drawn:    drawn,
				Flow:     r.Flow,
			}, nil
		}

		drawCaptured, err := match.ExecuteCapture(drawnCard, nil, drawOutcome)
		if err != nil {
			return PlayResult{}, err
		}
		capture := Capture{Played: drawnCard, Outcome: drawOutcome, Captured: drawCaptured}
		if len(drawCaptured) == 0 {
			field = match.AddToField(field, drawnCard)
			capture.PlacedOnField = true
		} else {
			field = match.RemoveFromField(field, drawCaptured)
			depository = append(depository, drawCaptured...)
		}
		drawPlay = &capture
	}

	newYaku := yaku.NewlyFormed(priorYaku, yaku.Detect(depository, r.Rules))

	r.Players[idx].Hand = hand
	r.Players[idx].Depository = depository
	r.Field = field
	r.Stock = append([]card.ID(nil), stock...)
	r.Version++

	result := PlayResult{
		PlayerID: playerID,
		HandPlay: handPlay,
		Drawn:    drawn,
		DrawPlay: drawPlay,
		NewYaku:  newYaku,
	}
	result.End = r.finishTurn(idx, newYaku)
	result.Flow = r.Flow
	return result, nil
}

// SelectTarget resolves a pending ambiguous draw match by capturing the
// chosen pair, then applies the same decision-or-pass tail as a normal
// turn.
func (r *Round) SelectTarget(playerID string, targetID card.ID) (SelectResult, error) {
	if r.Flow != FlowAwaitingSelection || r.Selection == nil {
		return SelectResult{}, ErrInvalidStateTransition
	}
	if playerID != r.ActivePlayerID {
		return SelectResult{}, ErrWrongPlayer
	}

	pending := r.Selection
	outcome := match.Outcome{Kind: match.KindDouble, Targets: pending.PossibleTargets}
	captured, err := match.ExecuteCapture(pending.DrawnCard, &targetID, outcome)
	if err != nil {
		return SelectResult{}, err
	}

	idx := r.playerIndex(playerID)
	depository := append(append([]card.ID(nil), r.Players[idx].Depository...), captured...)
	newYaku := yaku.NewlyFormed(pending.PriorYaku, yaku.Detect(depository, r.Rules))

	r.Players[idx].Depository = depository
	r.Field = match.RemoveFromField(r.Field, captured)
	r.Selection = nil
	r.Version++

	result := SelectResult{
		PlayerID: playerID,
		DrawPlay: Capture{Played: pending.DrawnCard, Outcome: outcome, Captured: captured},
		NewYaku:  newYaku,
	}
	result.End = r.finishTurn(idx, newYaku)
	result.Flow = r.Flow
	return result, nil
}

// HandleDecision answers a pending decision. Koi-koi doubles the
// caller's multiplier and passes the turn; end-round settles
// immediately in the caller's favor.
func (r *Round) HandleDecision(playerID string, decision Decision) (DecisionResult, error) {
	if r.Flow != FlowAwaitingDecision || r.Decision == nil {
		return DecisionResult{}, ErrInvalidStateTransition
	}
	if playerID != r.ActivePlayerID {
		return DecisionResult{}, ErrWrongPlayer
	}
	idx := r.playerIndex(playerID)

	switch decision {
	case DecisionKoiKoi:
		r.Koi[idx].Multiplier *= 2
		r.Koi[idx].ContinuationCount++
		r.Decision = nil
		r.Version++

		result := DecisionResult{PlayerID: playerID, Decision: decision, Koi: &r.Koi[idx]}
		if r.handsEmpty() {
			// Nobody has cards left to honor the continuation with.
			end := r.drawEnd()
			r.Flow = FlowEnded
			result.End = &end
		} else {
			r.ActivePlayerID = r.Players[1-idx].PlayerID
			r.Flow = FlowAwaitingHandPlay
		}
		result.Flow = r.Flow
		return result, nil

	case DecisionEndRound:
		end := r.settle(idx)
		r.Decision = nil
		r.Flow = FlowEnded
		r.Version++
		return DecisionResult{PlayerID: playerID, Decision: decision, Flow: r.Flow, End: &end}, nil

	default:
		return DecisionResult{}, ErrInvalidStateTransition
	}
}

// finishTurn applies the common turn tail: offer a decision when new
// patterns formed, end the round when both hands are exhausted, or pass
// the turn. It returns a non-nil end result only for the exhaustion
// draw.
func (r *Round) finishTurn(idx int, newYaku []yaku.Active) *EndResult {
	if len(newYaku) > 0 {
		r.Decision = &PendingDecision{
			ActiveYaku: yaku.Detect(r.Players[idx].Depository, r.Rules),
		}
		r.Flow = FlowAwaitingDecision
		return nil
	}
	if r.handsEmpty() {
		end := r.drawEnd()
		r.Flow = FlowEnded
		return &end
	}
	r.ActivePlayerID = r.Players[1-idx].PlayerID
	r.Flow = FlowAwaitingHandPlay
	return nil
}

// settle builds the end result for an explicit end-round decision.
func (r *Round) settle(winnerIdx int) EndResult {
	active := yaku.Detect(r.Players[winnerIdx].Depository, r.Rules)
	settlement := score.Settle(active, r.Koi[winnerIdx].Multiplier)
	return EndResult{
		WinnerID:      r.Players[winnerIdx].PlayerID,
		ActiveYaku:    active,
		BasePoints:    settlement.BasePoints,
		FinalPoints:   settlement.FinalPoints,
		KoiMultiplier: settlement.Multiplier,
		KoiApplied:    r.Koi[winnerIdx].ContinuationCount > 0,
		Doubled:       settlement.Doubled,
		SpecialRule:   special.KindNone,
	}
}

// drawEnd builds the zero-score result for an exhaustion draw.
func (r *Round) drawEnd() EndResult {
	return EndResult{IsDraw: true, KoiMultiplier: 1, SpecialRule: special.KindNone}
}

// EndFromSpecial builds the end result for a pre-play special
// condition: an instant win for teshi/kuttsuki, a no-score draw for a
// field four.
func EndFromSpecial(result special.Result) EndResult {
	if result.Kind == special.KindFieldFour {
		return EndResult{IsDraw: true, KoiMultiplier: 1, SpecialRule: result.Kind}
	}
	return EndResult{
		WinnerID:      result.PlayerID,
		BasePoints:    result.Points,
		FinalPoints:   result.Points,
		KoiMultiplier: 1,
		SpecialRule:   result.Kind,
	}
}
