package repository

import (
	"context"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// Account defines the interface for account persistence
type Account interface {
	CreateAccount(ctx context.Context, username string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
}
