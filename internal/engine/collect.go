package engine

import (
	"fmt"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/ledger"
	"github.com/osse101/IdleYard_Go/internal/producer"
)

// applyCollect moves produced yield into spendable stock.
//
// Continuous games collect the pending pool the catch-up fold filled.
// Cyclic games collect a ready producer's cycle yield, either one slot
// or every ready slot when none is given.
func (s *service) applyCollect(m *mutation, act Action) error {
	if m.game.ContinuousAccrual {
		return m.claimPending()
	}

	if act.Slot >= 0 {
		return m.collectSlot(act.Slot)
	}

	collected := false
	for slot, p := range m.st.Producers {
		if p == nil {
			continue
		}
		rule, ok := m.game.Kind(p.Kind)
		if !ok || rule.SingleMaturation() {
			continue
		}
		if producer.Resolve(p, rule, m.now).State == domain.ProducerReady {
			if err := m.collectSlot(slot); err != nil {
				return err
			}
			collected = true
		}
	}
	if !collected {
		return domain.ErrNothingToCollect
	}
	return nil
}

func (m *mutation) claimPending() error {
	if len(m.st.Pending) == 0 {
		return domain.ErrNothingToCollect
	}
	for resource, amount := range m.st.Pending {
		if err := ledger.CreditStock(m.st, resource, amount); err != nil {
			return err
		}
	}
	m.st.Pending = make(map[string]int64)

	// Feed bonuses last until the next collect; claiming ends them.
	// Single-maturation producers keep theirs for the eventual sale.
	for _, p := range m.st.Producers {
		if p == nil {
			continue
		}
		if rule, ok := m.game.Kind(p.Kind); ok && !rule.SingleMaturation() {
			p.Fed = 0
		}
	}
	return nil
}

func (m *mutation) collectSlot(slot int) error {
	p, err := m.producerAt(slot)
	if err != nil {
		return err
	}
	rule, ok := m.game.Kind(p.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, p.Kind)
	}
	if rule.SingleMaturation() {
		// Grown producers are sold, not collected
		return domain.ErrNotReady
	}

	resolved := producer.Resolve(p, rule, m.now)
	if resolved.State != domain.ProducerReady {
		return domain.ErrNotReady
	}

	if err := ledger.CreditStock(m.st, rule.Resource, resolved.Collectible); err != nil {
		return err
	}
	producer.Collect(p, rule, m.now)
	return nil
}
