package game

import (
	"fmt"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/match"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/round"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/special"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"
)

// Snapshot is a complete serializable picture of a game, including any
// live round, sufficient to resume an interrupted session with no loss
// of information.
type Snapshot struct {
	GameID         string           `json:"game_id"`
	Players        []PlayerSnapshot `json:"players"`
	Rules          RulesetSnapshot  `json:"rules"`
	Scores         map[string]int   `json:"scores"`
	RoundsPlayed   int              `json:"rounds_played"`
	Status         string           `json:"status"`
	ForcedWinnerID string           `json:"forced_winner_id,omitempty"`
	Version        uint64           `json:"version"`
	Round          *RoundSnapshot   `json:"round,omitempty"`
}

// PlayerSnapshot is one seat's identity.
type PlayerSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// RulesetSnapshot serializes the immutable configuration.
type RulesetSnapshot struct {
	TotalRounds  int                     `json:"total_rounds"`
	Yaku         map[string]RuleSnapshot `json:"yaku"`
	FourOfAMonth bool                    `json:"four_of_a_month"`
	FourPairs    bool                    `json:"four_pairs"`
	FieldFour    bool                    `json:"field_four"`
}

// RuleSnapshot serializes one pattern rule.
type RuleSnapshot struct {
	Points  int  `json:"points"`
	Enabled bool `json:"enabled"`
}

// RoundSnapshot serializes a live round, stock ordering included so a
// restored round draws the same cards.
type RoundSnapshot struct {
	DealerID       string                 `json:"dealer_id"`
	ActivePlayerID string                 `json:"active_player_id"`
	Flow           string                 `json:"flow"`
	Stock          []card.ID              `json:"stock"`
	Field          []card.ID              `json:"field"`
	Players        [2]RoundPlayerSnapshot `json:"players"`
	Koi            [2]KoiSnapshot         `json:"koi"`
	Selection      *SelectionSnapshot     `json:"selection,omitempty"`
	Decision       *DecisionSnapshot      `json:"decision,omitempty"`
	Version        uint64                 `json:"version"`
}

// RoundPlayerSnapshot serializes one player's round holdings.
type RoundPlayerSnapshot struct {
	PlayerID   string    `json:"player_id"`
	Hand       []card.ID `json:"hand"`
	Depository []card.ID `json:"depository"`
}

// KoiSnapshot serializes one player's continuation status.
type KoiSnapshot struct {
	PlayerID          string `json:"player_id"`
	Multiplier        int    `json:"multiplier"`
	ContinuationCount int    `json:"continuation_count"`
}

// SelectionSnapshot serializes a pending target selection.
type SelectionSnapshot struct {
	DrawnCard       card.ID          `json:"drawn_card"`
	PossibleTargets []card.ID        `json:"possible_targets"`
	HandPlay        CaptureSnapshot  `json:"hand_play"`
	PriorYaku       []ActiveSnapshot `json:"prior_yaku,omitempty"`
}

// CaptureSnapshot serializes one card resolution.
type CaptureSnapshot struct {
	Played        card.ID   `json:"played"`
	Outcome       string    `json:"outcome"`
	Targets       []card.ID `json:"targets,omitempty"`
	Captured      []card.ID `json:"captured,omitempty"`
	PlacedOnField bool      `json:"placed_on_field,omitempty"`
}

// DecisionSnapshot serializes a pending koi-koi decision.
type DecisionSnapshot struct {
	ActiveYaku []ActiveSnapshot `json:"active_yaku"`
}

// ActiveSnapshot serializes one active pattern.
type ActiveSnapshot struct {
	Type   string    `json:"type"`
	Points int       `json:"points"`
	Cards  []card.ID `json:"cards,omitempty"`
}

// ToSnapshot projects the game into its serializable form.
func ToSnapshot(g *Game) *Snapshot {
	players := make([]PlayerSnapshot, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerSnapshot{ID: p.ID, Name: p.Name}
	}
	scores := make(map[string]int, len(g.Scores))
	for id, points := range g.Scores {
		scores[id] = points
	}

	rules := RulesetSnapshot{
		TotalRounds:  g.Rules.TotalRounds,
		Yaku:         make(map[string]RuleSnapshot, len(g.Rules.Yaku)),
		FourOfAMonth: g.Rules.Special.FourOfAMonth,
		FourPairs:    g.Rules.Special.FourPairs,
		FieldFour:    g.Rules.Special.FieldFour,
	}
	for pattern, rule := range g.Rules.Yaku {
		rules.Yaku[string(pattern)] = RuleSnapshot{Points: rule.Points, Enabled: rule.Enabled}
	}

	return &Snapshot{
		GameID:         g.ID,
		Players:        players,
		Rules:          rules,
		Scores:         scores,
		RoundsPlayed:   g.RoundsPlayed,
		Status:         g.Status.String(),
		ForcedWinnerID: g.ForcedWinnerID,
		Version:        g.Version,
		Round:          roundToSnapshot(g.Current),
	}
}

func roundToSnapshot(r *round.Round) *RoundSnapshot {
	if r == nil {
		return nil
	}
	snapshot := &RoundSnapshot{
		DealerID:       r.DealerID,
		ActivePlayerID: r.ActivePlayerID,
		Flow:           r.Flow.String(),
		Stock:          append([]card.ID(nil), r.Stock...),
		Field:          append([]card.ID(nil), r.Field...),
		Version:        r.Version,
	}
	for i, p := range r.Players {
		snapshot.Players[i] = RoundPlayerSnapshot{
			PlayerID:   p.PlayerID,
			Hand:       append([]card.ID(nil), p.Hand...),
			Depository: append([]card.ID(nil), p.Depository...),
		}
	}
	for i, koi := range r.Koi {
		snapshot.Koi[i] = KoiSnapshot(koi)
	}
	if r.Selection != nil {
		snapshot.Selection = &SelectionSnapshot{
			DrawnCard:       r.Selection.DrawnCard,
			PossibleTargets: append([]card.ID(nil), r.Selection.PossibleTargets...),
			HandPlay:        captureToSnapshot(r.Selection.HandPlay),
			PriorYaku:       activesToSnapshot(r.Selection.PriorYaku),
		}
	}
	if r.Decision != nil {
		snapshot.Decision = &DecisionSnapshot{ActiveYaku: activesToSnapshot(r.Decision.ActiveYaku)}
	}
	return snapshot
}

func captureToSnapshot(c round.Capture) CaptureSnapshot {
	return CaptureSnapshot{
		Played:        c.Played,
		Outcome:       c.Outcome.Kind.String(),
		Targets:       append([]card.ID(nil), c.Outcome.Targets...),
		Captured:      append([]card.ID(nil), c.Captured...),
		PlacedOnField: c.PlacedOnField,
	}
}

func activesToSnapshot(active []yaku.Active) []ActiveSnapshot {
	if active == nil {
		return nil
	}
	out := make([]ActiveSnapshot, len(active))
	for i, a := range active {
		out[i] = ActiveSnapshot{Type: string(a.Type), Points: a.Points, Cards: append([]card.ID(nil), a.Cards...)}
	}
	return out
}

func activesFromSnapshot(snapshots []ActiveSnapshot) []yaku.Active {
	if snapshots == nil {
		return nil
	}
	out := make([]yaku.Active, len(snapshots))
	for i, s := range snapshots {
		out[i] = yaku.Active{Type: yaku.Type(s.Type), Points: s.Points, Cards: append([]card.ID(nil), s.Cards...)}
	}
	return out
}

// Restore rebuilds a live game from its snapshot.
func Restore(s *Snapshot) (*Game, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	status, err := statusFromString(s.Status)
	if err != nil {
		return nil, err
	}

	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = Player{ID: p.ID, Name: p.Name}
	}
	scores := make(map[string]int, len(s.Scores))
	for id, points := range s.Scores {
		scores[id] = points
	}

	rules := Ruleset{
		TotalRounds: s.Rules.TotalRounds,
		Yaku:        make(yaku.RuleTable, len(s.Rules.Yaku)),
		Special: special.Flags{
			FourOfAMonth: s.Rules.FourOfAMonth,
			FourPairs:    s.Rules.FourPairs,
			FieldFour:    s.Rules.FieldFour,
		},
	}
	for pattern, rule := range s.Rules.Yaku {
		rules.Yaku[yaku.Type(pattern)] = yaku.Rule{Points: rule.Points, Enabled: rule.Enabled}
	}

	restored := &Game{
		ID:             s.GameID,
		Players:        players,
		Rules:          rules,
		Scores:         scores,
		RoundsPlayed:   s.RoundsPlayed,
		Status:         status,
		ForcedWinnerID: s.ForcedWinnerID,
		Version:        s.Version,
	}
	if s.Round != nil {
		restoredRound, err := roundFromSnapshot(s.Round, rules.Yaku)
		if err != nil {
			return nil, err
		}
		restored.Current = restoredRound
	}
	return restored, nil
}

func roundFromSnapshot(s *RoundSnapshot, rules yaku.RuleTable) (*round.Round, error) {
	flow, err := flowFromString(s.Flow)
	if err != nil {
		return nil, err
	}

	restored := &round.Round{
		DealerID:       s.DealerID,
		ActivePlayerID: s.ActivePlayerID,
		Flow:           flow,
		Stock:          append([]card.ID(nil), s.Stock...),
		Field:          append([]card.ID(nil), s.Field...),
		Rules:          rules,
		Version:        s.Version,
	}
	for i, p := range s.Players {
		restored.Players[i] = round.PlayerState{
			PlayerID:   p.PlayerID,
			Hand:       append([]card.ID(nil), p.Hand...),
			Depository: append([]card.ID(nil), p.Depository...),
		}
	}
	for i, koi := range s.Koi {
		restored.Koi[i] = round.KoiStatus(koi)
	}
	if s.Selection != nil {
		handPlay, err := captureFromSnapshot(s.Selection.HandPlay)
		if err != nil {
			return nil, err
		}
		restored.Selection = &round.PendingSelection{
			DrawnCard:       s.Selection.DrawnCard,
			PossibleTargets: append([]card.ID(nil), s.Selection.PossibleTargets...),
			HandPlay:        handPlay,
			PriorYaku:       activesFromSnapshot(s.Selection.PriorYaku),
		}
	}
	if s.Decision != nil {
		restored.Decision = &round.PendingDecision{ActiveYaku: activesFromSnapshot(s.Decision.ActiveYaku)}
	}
	return restored, nil
}

func captureFromSnapshot(s CaptureSnapshot) (round.Capture, error) {
	kind, err := matchKindFromString(s.Outcome)
	if err != nil {
		return round.Capture{}, err
	}
	return round.Capture{
		Played:        s.Played,
		Outcome:       match.Outcome{Kind: kind, Targets: append([]card.ID(nil), s.Targets...)},
		Captured:      append([]card.ID(nil), s.Captured...),
		PlacedOnField: s.PlacedOnField,
	}, nil
}

func statusFromString(value string) (Status, error) {
	switch value {
	case StatusWaiting.String():
		return StatusWaiting, nil
	case StatusInProgress.String():
		return StatusInProgress, nil
	case StatusFinished.String():
		return StatusFinished, nil
	default:
		return StatusWaiting, fmt.Errorf("unknown game status %q", value)
	}
}

func flowFromString(value string) (round.FlowState, error) {
	switch value {
	case round.FlowAwaitingHandPlay.String():
		return round.FlowAwaitingHandPlay, nil
	case round.FlowAwaitingSelection.String():
		return round.FlowAwaitingSelection, nil
	case round.FlowAwaitingDecision.String():
		return round.FlowAwaitingDecision, nil
	case round.FlowEnded.String():
		return round.FlowEnded, nil
	default:
		return round.FlowAwaitingHandPlay, fmt.Errorf("unknown flow state %q", value)
	}
}

func matchKindFromString(value string) (match.Kind, error) {
	switch value {
	case match.KindNoMatch.String():
		return match.KindNoMatch, nil
	case match.KindSingle.String():
		return match.KindSingle, nil
	case match.KindDouble.String():
		return match.KindDouble, nil
	case match.KindTriple.String():
		return match.KindTriple, nil
	default:
		return match.KindNoMatch, fmt.Errorf("unknown match outcome %q", value)
	}
}
