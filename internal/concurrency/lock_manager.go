package concurrency

import (
	"sync"
)

// LockManager hands out named locks. The engine uses one lock per
// (account, game) pair so mutations for one account serialize while
// different accounts proceed independently.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
