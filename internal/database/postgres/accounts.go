package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// AccountRepository implements the account repository for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a new account, or returns the existing one when the
// username is already registered. Registration is idempotent by username.
func (r *AccountRepository) CreateAccount(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (username)
		VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET updated_at = NOW()
		RETURNING account_id, username, created_at
	`
	var acct domain.Account
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, username).Scan(&id, &acct.Username, &acct.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	acct.ID = id.String()
	return &acct, nil
}

// GetAccountByID fetches an account by its ID
func (r *AccountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT account_id, username, created_at
		FROM accounts
		WHERE account_id = $1
	`
	var acct domain.Account
	var scanned uuid.UUID
	err = r.db.QueryRow(ctx, query, id).Scan(&scanned, &acct.Username, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	acct.ID = scanned.String()
	return &acct, nil
}

// GetAccountByUsername fetches an account by its username
func (r *AccountRepository) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT account_id, username, created_at
		FROM accounts
		WHERE username = $1
	`
	var acct domain.Account
	var scanned uuid.UUID
	err := r.db.QueryRow(ctx, query, username).Scan(&scanned, &acct.Username, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}
	acct.ID = scanned.String()
	return &acct, nil
}
