// Package ledger holds the balance and stock mutation helpers. Every
// mutation keeps the core invariant: no balance or stock ever goes
// negative.
package ledger

import (
	"fmt"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// CreditBalance adds amount to the named currency
func CreditBalance(s *domain.GameState, currency string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: credit %d", domain.ErrInvalidQuantity, amount)
	}
	if s.Balances == nil {
		s.Balances = make(map[string]int64)
	}
	s.Balances[currency] += amount
	return nil
}

// DebitBalance removes amount from the named currency, rejecting the
// mutation entirely if it would go negative
func DebitBalance(s *domain.GameState, currency string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: debit %d", domain.ErrInvalidQuantity, amount)
	}
	if s.Balances[currency] < amount {
		return fmt.Errorf("%w: need %d %s, have %d", domain.ErrInsufficientFunds, amount, currency, s.Balances[currency])
	}
	s.Balances[currency] -= amount
	return nil
}

// CreditStock adds amount units of a resource kind
func CreditStock(s *domain.GameState, kind string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: credit %d", domain.ErrInvalidQuantity, amount)
	}
	if s.Stocks == nil {
		s.Stocks = make(map[string]int64)
	}
	s.Stocks[kind] += amount
	return nil
}

// DebitStock removes amount units of a resource kind, rejecting the
// mutation entirely if it would go negative
func DebitStock(s *domain.GameState, kind string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: debit %d", domain.ErrInvalidQuantity, amount)
	}
	if s.Stocks[kind] < amount {
		return fmt.Errorf("%w: need %d %s, have %d", domain.ErrInsufficientStock, amount, kind, s.Stocks[kind])
	}
	s.Stocks[kind] -= amount
	if s.Stocks[kind] == 0 {
		delete(s.Stocks, kind)
	}
	return nil
}
