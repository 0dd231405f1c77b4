package repository

import (
	"context"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// GameState defines the interface for per-game aggregate persistence.
// One row holds the whole aggregate for an (account, game) pair; every
// mutation rewrites it inside a transaction.
type GameState interface {
	// GetState reads the aggregate without locking. Returns nil when the
	// account has never touched the game.
	GetState(ctx context.Context, accountID string, gameID domain.GameID) (*domain.GameState, error)

	BeginTx(ctx context.Context) (GameStateTx, error)
}

// GameStateTx defines the interface for transactional aggregate access
type GameStateTx interface {
	// GetStateForUpdate reads the aggregate with a row lock held until
	// commit. Returns nil when no row exists yet.
	GetStateForUpdate(ctx context.Context, accountID string, gameID domain.GameID) (*domain.GameState, error)
	UpsertState(ctx context.Context, accountID string, gameID domain.GameID, state *domain.GameState) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
