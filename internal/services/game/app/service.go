package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/ychleo102615/hanahuda-sub001/internal/platform/errors"
	"github.com/ychleo102615/hanahuda-sub001/internal/platform/id"
	"github.com/ychleo102615/hanahuda-sub001/internal/platform/random"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/deck"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/game"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/match"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/round"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/storage"
)

// Service executes game commands. Every mutation for a given game runs
// under that game's lock: load the stored snapshot, restore, apply the
// command, persist. A command that fails leaves the stored game
// untouched.
type Service struct {
	store   storage.GameStore
	newID   func() (string, error)
	newSeed func() (int64, error)
	shuffle func(seed int64) []card.ID
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the game id generator, used by tests for
// predictable ids.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newID = fn }
}

// WithSeedSource replaces the shuffle seed source, used by tests for
// deterministic deals.
func WithSeedSource(fn func() (int64, error)) Option {
	return func(s *Service) { s.newSeed = fn }
}

// WithShuffler replaces the deck shuffle, used by tests to deal fixed
// orderings.
func WithShuffler(fn func(seed int64) []card.ID) Option {
	return func(s *Service) { s.shuffle = fn }
}

// WithClock replaces the persistence timestamp clock.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// NewService creates a game service over the provided store.
func NewService(store storage.GameStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		newID:   id.NewID,
		newSeed: random.NewSeed,
		shuffle: deck.Shuffle,
		now:     func() time.Time { return time.Now().UTC() },
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateGame creates a game hosted by the given player, waiting for an
// opponent.
func (s *Service) CreateGame(ctx context.Context, host game.Player, rules *game.Ruleset) (*game.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gameID, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate game id: %w", err)
	}

	ruleset := game.DefaultRuleset()
	if rules != nil {
		ruleset = *rules
	}
	g, err := game.Create(gameID, host, ruleset)
	if err != nil {
		return nil, translate(err)
	}

	now := s.now()
	record := storage.GameRecord{
		ID:        g.ID,
		Status:    g.Status.String(),
		Version:   g.Version,
		Snapshot:  game.ToSnapshot(g),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveGame(ctx, record); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return record.Snapshot, nil
}

// JoinGame seats the second player and deals the first round.
func (s *Service) JoinGame(ctx context.Context, gameID string, player game.Player) (*game.Snapshot, error) {
	return s.withGame(ctx, gameID, func(g *game.Game) error {
		if err := g.AddSecondPlayerAndStart(player); err != nil {
			return err
		}
		return s.dealUntilLive(g)
	})
}

// PlayHandCard plays one card from the caller's hand, with an optional
// capture target for double matches.
func (s *Service) PlayHandCard(ctx context.Context, gameID, playerID string, cardID card.ID, target *card.ID) (round.PlayResult, *game.Snapshot, error) {
	var result round.PlayResult
	snapshot, err := s.withGame(ctx, gameID, func(g *game.Game) error {
		r, err := s.liveRound(g, playerID)
		if err != nil {
			return err
		}
		result, err = r.PlayHandCard(playerID, cardID, target)
		if err != nil {
			return err
		}
		return s.settleIfEnded(g, result.End)
	})
	return result, snapshot, err
}

// SelectTarget resolves a pending double-match selection.
func (s *Service) SelectTarget(ctx context.Context, gameID, playerID string, targetID card.ID) (round.SelectResult, *game.Snapshot, error) {
	var result round.SelectResult
	snapshot, err := s.withGame(ctx, gameID, func(g *game.Game) error {
		r, err := s.liveRound(g, playerID)
		if err != nil {
			return err
		}
		result, err = r.SelectTarget(playerID, targetID)
		if err != nil {
			return err
		}
		return s.settleIfEnded(g, result.End)
	})
	return result, snapshot, err
}

// MakeDecision answers a pending koi-koi decision.
func (s *Service) MakeDecision(ctx context.Context, gameID, playerID string, decision round.Decision) (round.DecisionResult, *game.Snapshot, error) {
	var result round.DecisionResult
	snapshot, err := s.withGame(ctx, gameID, func(g *game.Game) error {
		r, err := s.liveRound(g, playerID)
		if err != nil {
			return err
		}
		result, err = r.HandleDecision(playerID, decision)
		if err != nil {
			return err
		}
		return s.settleIfEnded(g, result.End)
	})
	return result, snapshot, err
}

// Leave forfeits the game for the leaving player; the opponent wins
// regardless of the score.
func (s *Service) Leave(ctx context.Context, gameID, playerID string) (*game.Snapshot, error) {
	return s.withGame(ctx, gameID, func(g *game.Game) error {
		if !g.HasPlayer(playerID) {
			return game.ErrUnknownPlayer
		}
		winnerID := ""
		for _, p := range g.Players {
			if p.ID != playerID {
				winnerID = p.ID
			}
		}
		g.FinishGame(winnerID)
		return nil
	})
}

// Snapshot returns the stored snapshot of one game.
func (s *Service) Snapshot(ctx context.Context, gameID string) (*game.Snapshot, error) {
	record, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, translate(err)
	}
	return record.Snapshot, nil
}

// ListGames returns one page of stored games.
func (s *Service) ListGames(ctx context.Context, pageSize int, pageToken string) (storage.GamePage, error) {
	return s.store.ListGames(ctx, pageSize, pageToken)
}

// withGame runs one mutation under the game's lock: restore from the
// store, apply fn, verify invariants, persist. Errors leave the stored
// record untouched.
func (s *Service) withGame(ctx context.Context, gameID string, fn func(*game.Game) error) (*game.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock := s.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, translate(err)
	}
	g, err := game.Restore(record.Snapshot)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSnapshotInvalid, "restore game", err)
	}

	if err := fn(g); err != nil {
		return nil, translate(err)
	}
	if g.Current != nil {
		if err := round.Verify(g.Current); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvariantViolation, "round invariants violated", err)
		}
	}

	record.Status = g.Status.String()
	record.Version = g.Version
	record.Snapshot = game.ToSnapshot(g)
	record.UpdatedAt = s.now()
	if err := s.store.SaveGame(ctx, record); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return record.Snapshot, nil
}

func (s *Service) lockFor(gameID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[gameID] = lock
	}
	return lock
}

// liveRound returns the current round after checking the caller belongs
// to the game.
func (s *Service) liveRound(g *game.Game, playerID string) (*round.Round, error) {
	if !g.HasPlayer(playerID) {
		return nil, game.ErrUnknownPlayer
	}
	if g.Current == nil {
		return nil, game.ErrNoActiveRound
	}
	return g.Current, nil
}

// settleIfEnded applies a round end to the game score and deals the
// next round while the game remains in progress.
func (s *Service) settleIfEnded(g *game.Game, end *round.EndResult) error {
	if end == nil {
		return nil
	}
	if err := g.ApplyRoundEnd(*end); err != nil {
		return err
	}
	return s.dealUntilLive(g)
}

// dealUntilLive shuffles and deals rounds until one survives its
// pre-play checks or the game finishes. Field-four deals are voided
// and redealt; instant wins settle and the next round is dealt.
func (s *Service) dealUntilLive(g *game.Game) error {
	for g.Status == game.StatusInProgress && g.Current == nil {
		seed, err := s.newSeed()
		if err != nil {
			return fmt.Errorf("generate shuffle seed: %w", err)
		}
		result, err := g.StartRound(s.shuffle(seed))
		if err != nil {
			return err
		}
		if result.Round != nil {
			return nil
		}
	}
	return nil
}

// translate wraps domain sentinels in coded platform errors so the
// transport layer can map them to statuses.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return err
	}

	code := apperrors.CodeUnknown
	switch {
	case errors.Is(err, game.ErrEmptyGameID):
		code = apperrors.CodeGameIDEmpty
	case errors.Is(err, game.ErrEmptyPlayerID):
		code = apperrors.CodePlayerIDEmpty
	case errors.Is(err, game.ErrInvalidRuleset):
		code = apperrors.CodeInvalidRuleset
	case errors.Is(err, game.ErrNotWaiting):
		code = apperrors.CodeGameNotWaiting
	case errors.Is(err, game.ErrNotInProgress):
		code = apperrors.CodeGameNotInProgress
	case errors.Is(err, game.ErrRoundInProgress):
		code = apperrors.CodeRoundInProgress
	case errors.Is(err, game.ErrNoActiveRound):
		code = apperrors.CodeNoActiveRound
	case errors.Is(err, game.ErrUnknownPlayer):
		code = apperrors.CodeUnknownPlayer
	case errors.Is(err, game.ErrPlayerAlreadyJoined):
		code = apperrors.CodePlayerAlreadyJoined
	case errors.Is(err, round.ErrInvalidStateTransition):
		code = apperrors.CodeInvalidStateTransition
	case errors.Is(err, round.ErrWrongPlayer):
		code = apperrors.CodeWrongPlayer
	case errors.Is(err, round.ErrCardNotInHand):
		code = apperrors.CodeCardNotInHand
	case errors.Is(err, match.ErrInvalidTargetSelection):
		code = apperrors.CodeInvalidTargetSelection
	case errors.Is(err, deck.ErrInvalidDeckSize):
		code = apperrors.CodeInvalidDeckSize
	case errors.Is(err, deck.ErrInvalidPlayerCount):
		code = apperrors.CodeInvalidPlayerCount
	}
	return apperrors.Wrap(code, err.Error(), err)
}
