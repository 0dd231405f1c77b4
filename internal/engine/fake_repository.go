package engine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/repository"
)

// fakeAccountRepository is an in-memory account repository for tests
type fakeAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newFakeAccountRepository(ids ...string) *fakeAccountRepository {
	f := &fakeAccountRepository{accounts: make(map[string]*domain.Account)}
	for _, id := range ids {
		f.accounts[id] = &domain.Account{ID: id, Username: id}
	}
	return f
}

func (f *fakeAccountRepository) CreateAccount(ctx context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct := &domain.Account{ID: username, Username: username}
	f.accounts[username] = acct
	return acct, nil
}

func (f *fakeAccountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct, ok := f.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

func (f *fakeAccountRepository) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return f.GetAccountByID(ctx, username)
}

// fakeStateRepository stores aggregates as serialized bytes, the same
// shape the JSONB column holds, so tests can compare stored records
// byte for byte.
type fakeStateRepository struct {
	mu     sync.Mutex
	states map[string][]byte

	failBegin bool
}

func newFakeStateRepository() *fakeStateRepository {
	return &fakeStateRepository{states: make(map[string][]byte)}
}

func stateKey(accountID string, gameID domain.GameID) string {
	return accountID + ":" + string(gameID)
}

// Raw returns the stored bytes for an aggregate
func (f *fakeStateRepository) Raw(accountID string, gameID domain.GameID) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.states[stateKey(accountID, gameID)]...)
}

func (f *fakeStateRepository) GetState(ctx context.Context, accountID string, gameID domain.GameID) (*domain.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decode(accountID, gameID)
}

func (f *fakeStateRepository) decode(accountID string, gameID domain.GameID) (*domain.GameState, error) {
	raw, ok := f.states[stateKey(accountID, gameID)]
	if !ok {
		return nil, nil
	}
	var st domain.GameState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (f *fakeStateRepository) BeginTx(ctx context.Context) (repository.GameStateTx, error) {
	if f.failBegin {
		return nil, errors.New("connection refused")
	}
	return &fakeStateTx{repo: f, staged: make(map[string][]byte)}, nil
}

type fakeStateTx struct {
	repo   *fakeStateRepository
	staged map[string][]byte
	closed bool
}

func (t *fakeStateTx) GetStateForUpdate(ctx context.Context, accountID string, gameID domain.GameID) (*domain.GameState, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	return t.repo.decode(accountID, gameID)
}

func (t *fakeStateTx) UpsertState(ctx context.Context, accountID string, gameID domain.GameID, state *domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	t.staged[stateKey(accountID, gameID)] = raw
	return nil
}

func (t *fakeStateTx) Commit(ctx context.Context) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for k, v := range t.staged {
		t.repo.states[k] = v
	}
	t.closed = true
	return nil
}

func (t *fakeStateTx) Rollback(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.staged = make(map[string][]byte)
	t.closed = true
	return nil
}
