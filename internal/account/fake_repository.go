package account

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// fakeRepository is an in-memory account repository for tests
type fakeRepository struct {
	mu         sync.Mutex
	byID       map[string]*domain.Account
	byUsername map[string]*domain.Account
	nextID     int

	createCalls int
	getIDCalls  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:       make(map[string]*domain.Account),
		byUsername: make(map[string]*domain.Account),
	}
}

func (f *fakeRepository) CreateAccount(ctx context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++

	if acct, ok := f.byUsername[username]; ok {
		return acct, nil
	}

	f.nextID++
	acct := &domain.Account{
		ID:       fmt.Sprintf("acct-%d", f.nextID),
		Username: username,
	}
	f.byID[acct.ID] = acct
	f.byUsername[username] = acct
	return acct, nil
}

func (f *fakeRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getIDCalls++

	acct, ok := f.byID[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

func (f *fakeRepository) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acct, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}
