package storage

import (
	"context"
	"time"

	apperrors "github.com/ychleo102615/hanahuda-sub001/internal/platform/errors"
	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/game"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such game"
// states and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// GameRecord is one persisted game: queryable metadata columns plus the
// full snapshot for crash recovery.
type GameRecord struct {
	ID        string
	Status    string
	Version   uint64
	Snapshot  *game.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GamePage is one keyset page of game records.
type GamePage struct {
	Games         []GameRecord
	NextPageToken string
}

// GameStore persists games. SaveGame is an upsert keyed by game id;
// the service writes after every accepted command.
type GameStore interface {
	SaveGame(ctx context.Context, record GameRecord) error
	GetGame(ctx context.Context, id string) (GameRecord, error)
	ListGames(ctx context.Context, pageSize int, pageToken string) (GamePage, error)
	DeleteGame(ctx context.Context, id string) error
}
