package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/repository"
)

// GameStateRepository implements the game state repository for PostgreSQL.
// The whole aggregate lives in one JSONB column; mutations hold a row lock
// from read to commit so concurrent actions on the same (account, game)
// serialize at the database even across instances.
type GameStateRepository struct {
	db *pgxpool.Pool
}

// NewGameStateRepository creates a new GameStateRepository
func NewGameStateRepository(db *pgxpool.Pool) *GameStateRepository {
	return &GameStateRepository{db: db}
}

// GetState reads the aggregate without locking
func (r *GameStateRepository) GetState(ctx context.Context, accountID string, gameID domain.GameID) (*domain.GameState, error) {
	return getState(ctx, r.db, accountID, gameID, false)
}

// BeginTx starts a transaction for a locked read-modify-write cycle
func (r *GameStateRepository) BeginTx(ctx context.Context) (repository.GameStateTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &gameStateTx{tx: tx}, nil
}

type gameStateTx struct {
	tx pgx.Tx
}

func (t *gameStateTx) GetStateForUpdate(ctx context.Context, accountID string, gameID domain.GameID) (*domain.GameState, error) {
	return getState(ctx, t.tx, accountID, gameID, true)
}

func (t *gameStateTx) UpsertState(ctx context.Context, accountID string, gameID domain.GameID, state *domain.GameState) error {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return err
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	query := `
		INSERT INTO game_states (account_id, game_id, state_data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (account_id, game_id) DO UPDATE
		SET state_data = EXCLUDED.state_data, updated_at = NOW()
	`
	if _, err := t.tx.Exec(ctx, query, id, string(gameID), stateJSON); err != nil {
		return fmt.Errorf("failed to upsert game state: %w", err)
	}
	return nil
}

func (t *gameStateTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *gameStateTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}

// querier covers both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getState(ctx context.Context, q querier, accountID string, gameID domain.GameID, forUpdate bool) (*domain.GameState, error) {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT state_data
		FROM game_states
		WHERE account_id = $1 AND game_id = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var stateData []byte
	if err := q.QueryRow(ctx, query, id, string(gameID)).Scan(&stateData); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// First touch of this game; the caller seeds a fresh aggregate
			return nil, nil
		}
		op := "get game state"
		if forUpdate {
			op = "get game state for update"
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	var state domain.GameState
	if err := json.Unmarshal(stateData, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &state, nil
}
