package game

import (
	"errors"
	"strings"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/deck"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/round"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/special"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/yaku"
)

// Status is the game lifecycle state.
type Status int

const (
	// StatusWaiting means the game has one player and awaits a second.
	StatusWaiting Status = iota
	// StatusInProgress means two players are seated and rounds run.
	StatusInProgress
	// StatusFinished means the game is over.
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyGameID indicates a missing game identifier.
	ErrEmptyGameID = errors.New("game id is required")
	// ErrEmptyPlayerID indicates a missing player identifier.
	ErrEmptyPlayerID = errors.New("player id is required")
	// ErrInvalidRuleset indicates a ruleset with no rounds to play.
	ErrInvalidRuleset = errors.New("ruleset must allow at least one round")
	// ErrNotWaiting indicates a join on a game that is not waiting for
	// a second player.
	ErrNotWaiting = errors.New("game is not waiting for players")
	// ErrNotInProgress indicates a round operation on a game that is
	// not in progress.
	ErrNotInProgress = errors.New("game is not in progress")
	// ErrRoundInProgress indicates a new round was requested while one
	// is still live.
	ErrRoundInProgress = errors.New("a round is already in progress")
	// ErrNoActiveRound indicates a round command with no live round.
	ErrNoActiveRound = errors.New("no round is in progress")
	// ErrUnknownPlayer indicates a player id outside the game.
	ErrUnknownPlayer = errors.New("player is not part of this game")
	// ErrPlayerAlreadyJoined indicates the same player joining twice.
	ErrPlayerAlreadyJoined = errors.New("player already joined this game")
)

// Ruleset is the immutable configuration threaded through every round.
type Ruleset struct {
	TotalRounds int
	Yaku        yaku.RuleTable
	Special     special.Flags
}

// DefaultRuleset is the standard twelve-round configuration.
func DefaultRuleset() Ruleset {
	return Ruleset{
		TotalRounds: 12,
		Yaku:        yaku.DefaultRules(),
		Special:     special.AllEnabled(),
	}
}

// Player identifies one seat in a game.
type Player struct {
	ID   string
	Name string
}

// Game is the aggregate root for a koi-koi match: players, cumulative
// scores, and the current round. Mutations are apply-or-reject and bump
// Version on success.
type Game struct {
	ID           string
	Players      []Player
	Rules        Ruleset
	Scores       map[string]int
	RoundsPlayed int
	Status       Status
	Current      *round.Round
	// ForcedWinnerID records a forfeit result set by FinishGame.
	ForcedWinnerID string
	Version        uint64
}

// Create starts a game with its first player, waiting for a second.
func Create(id string, first Player, rules Ruleset) (*Game, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyGameID
	}
	if strings.TrimSpace(first.ID) == "" {
		return nil, ErrEmptyPlayerID
	}
	if rules.TotalRounds < 1 {
		return nil, ErrInvalidRuleset
	}
	return &Game{
		ID:      id,
		Players: []Player{first},
		Rules:   rules,
		Scores:  map[string]int{first.ID: 0},
		Status:  StatusWaiting,
	}, nil
}

// AddSecondPlayerAndStart seats the second player and moves the game to
// in-progress. Any second player may join; the first round is dealt by
// a separate StartRound call so the caller controls the shuffle.
func (g *Game) AddSecondPlayerAndStart(second Player) error {
	if g.Status != StatusWaiting || len(g.Players) != 1 {
		return ErrNotWaiting
	}
	if strings.TrimSpace(second.ID) == "" {
		return ErrEmptyPlayerID
	}
	if second.ID == g.Players[0].ID {
		return ErrPlayerAlreadyJoined
	}
	g.Players = append(g.Players, second)
	g.Scores[second.ID] = 0
	g.Status = StatusInProgress
	g.Version++
	return nil
}

// StartResult reports how a deal resolved: either a live round or a
// special pre-play condition that ended (or voided) the round before
// any turn.
type StartResult struct {
	Round *round.Round
	// Special is set when a pre-play condition fired. For an instant
	// win the score is already applied; for a field four the deal is
	// void and the caller should redeal with a fresh ordering.
	Special *round.EndResult
}

// StartRound deals the provided full-deck ordering into a new round.
// The dealer alternates each round, starting with the first player, and
// plays first. Test fixtures inject a fixed ordering here without
// touching the shuffle path.
func (g *Game) StartRound(ordering []card.ID) (StartResult, error) {
	if g.Status != StatusInProgress || len(g.Players) != 2 {
		return StartResult{}, ErrNotInProgress
	}
	if g.Current != nil {
		return StartResult{}, ErrRoundInProgress
	}

	dealer := g.Players[g.RoundsPlayed%2]
	opponent := g.Players[1-g.RoundsPlayed%2]
	deal, err := deck.New(ordering, len(g.Players))
	if err != nil {
		return StartResult{}, err
	}

	hands := [2]special.Hand{
		{PlayerID: dealer.ID, Cards: deal.HandA},
		{PlayerID: opponent.ID, Cards: deal.HandB},
	}
	if condition := special.Detect(hands, deal.Field, g.Rules.Special); condition.Kind != special.KindNone {
		end := round.EndFromSpecial(condition)
		if condition.Kind != special.KindFieldFour {
			if err := g.FinishRound(condition.PlayerID, end.FinalPoints); err != nil {
				return StartResult{}, err
			}
		} else {
			g.Version++
		}
		return StartResult{Special: &end}, nil
	}

	g.Current = round.New(dealer.ID, opponent.ID, deal, g.Rules.Yaku)
	g.Version++
	return StartResult{Round: g.Current}, nil
}

// FinishRound settles a won round: credit the winner, advance the round
// counter, drop the current round, and finish the game once the target
// round count is reached.
func (g *Game) FinishRound(winnerID string, points int) error {
	if g.Status != StatusInProgress {
		return ErrNotInProgress
	}
	if _, ok := g.Scores[winnerID]; !ok {
		return ErrUnknownPlayer
	}
	g.Scores[winnerID] += points
	g.advanceRound()
	return nil
}

// FinishRoundDraw settles a drawn round with no score change.
func (g *Game) FinishRoundDraw() error {
	if g.Status != StatusInProgress {
		return ErrNotInProgress
	}
	g.advanceRound()
	return nil
}

func (g *Game) advanceRound() {
	g.RoundsPlayed++
	g.Current = nil
	if g.RoundsPlayed >= g.Rules.TotalRounds {
		g.Status = StatusFinished
	}
	g.Version++
}

// ApplyRoundEnd routes a round end result into the cumulative score,
// covering wins, draws, and special-condition outcomes uniformly.
func (g *Game) ApplyRoundEnd(end round.EndResult) error {
	if end.IsDraw {
		if end.SpecialRule == special.KindFieldFour {
			// a voided deal is not a played round
			return nil
		}
		return g.FinishRoundDraw()
	}
	return g.FinishRound(end.WinnerID, end.FinalPoints)
}

// FinishGame force-ends the game, used for disconnects and forfeits.
// It always enters the finished state regardless of round count. A
// non-empty winner id is recorded as a forced result and takes
// precedence over the score comparison; an empty id leaves the winner
// to the scores.
func (g *Game) FinishGame(winnerID string) {
	g.Current = nil
	g.Status = StatusFinished
	g.ForcedWinnerID = winnerID
	g.Version++
}

// Result compares cumulative scores once a game is decided.
type Result struct {
	// WinnerID is empty for a tie.
	WinnerID    string
	Margin      int
	FinalScores map[string]int
}

// Winner compares the two cumulative scores.
func (g *Game) Winner() Result {
	scores := make(map[string]int, len(g.Scores))
	for id, points := range g.Scores {
		scores[id] = points
	}
	result := Result{FinalScores: scores}
	if len(g.Players) != 2 {
		return result
	}
	if g.ForcedWinnerID != "" {
		result.WinnerID = g.ForcedWinnerID
		return result
	}

	a, b := g.Players[0], g.Players[1]
	switch {
	case scores[a.ID] > scores[b.ID]:
		result.WinnerID = a.ID
		result.Margin = scores[a.ID] - scores[b.ID]
	case scores[b.ID] > scores[a.ID]:
		result.WinnerID = b.ID
		result.Margin = scores[b.ID] - scores[a.ID]
	}
	return result
}

// HasPlayer reports whether a player id belongs to this game.
func (g *Game) HasPlayer(playerID string) bool {
	for _, p := range g.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
