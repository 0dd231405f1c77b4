package account

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/logger"
	"github.com/osse101/IdleYard_Go/internal/repository"
)

// Cache sizing
const (
	// DefaultCacheSize is the maximum number of cached accounts
	DefaultCacheSize = 10000

	// DefaultCacheTTL bounds how stale a cached account can get
	DefaultCacheTTL = 5 * time.Minute
)

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, username string) (*domain.Account, error)
	GetByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// service implements the Service interface
type service struct {
	repo  repository.Account
	cache *accountCache
}

// NewService creates a new account service
func NewService(repo repository.Account) Service {
	return &service{
		repo:  repo,
		cache: newAccountCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// Register creates an account, or returns the existing one for the
// username. Safe to call repeatedly from a client that lost its ID.
func (s *service) Register(ctx context.Context, username string) (*domain.Account, error) {
	log := logger.FromContext(ctx)

	acct, err := s.repo.CreateAccount(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.cache.Set(acct.ID, acct)
	log.Info("Account registered", "account_id", acct.ID, "username", acct.Username)
	return acct, nil
}

// GetByID fetches an account, serving repeat lookups from the cache
func (s *service) GetByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if acct, ok := s.cache.Get(accountID); ok {
		return acct, nil
	}

	acct, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(acct.ID, acct)
	return acct, nil
}

// GetByUsername fetches an account by username. Not cached; this is an
// admin/support path, not the hot path.
func (s *service) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.repo.GetAccountByUsername(ctx, username)
}
