package engine

import (
	"fmt"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/producer"
)

// boardSlots validates both indexes of a board action
func (m *mutation) boardSlots(from, to int) error {
	if !m.game.BoardMerge {
		return domain.ErrNoBoard
	}
	if from < 0 || from >= len(m.st.Producers) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, from)
	}
	if to < 0 || to >= len(m.st.Producers) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, to)
	}
	if from == to {
		return fmt.Errorf("%w: same slot %d", domain.ErrSlotOutOfRange, from)
	}
	return nil
}

// applyMoveProducer moves a producer to an empty slot. Its cycle travels
// with it untouched.
func (s *service) applyMoveProducer(m *mutation, act Action) error {
	if err := m.boardSlots(act.FromSlot, act.ToSlot); err != nil {
		return err
	}
	if m.st.Producers[act.FromSlot] == nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, act.FromSlot)
	}
	if m.st.Producers[act.ToSlot] != nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotOccupied, act.ToSlot)
	}

	m.st.Producers[act.ToSlot] = m.st.Producers[act.FromSlot]
	m.st.Producers[act.FromSlot] = nil
	return nil
}

// applySwapProducers exchanges two occupied slots
func (s *service) applySwapProducers(m *mutation, act Action) error {
	if err := m.boardSlots(act.FromSlot, act.ToSlot); err != nil {
		return err
	}
	if m.st.Producers[act.FromSlot] == nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, act.FromSlot)
	}
	if m.st.Producers[act.ToSlot] == nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, act.ToSlot)
	}

	m.st.Producers[act.FromSlot], m.st.Producers[act.ToSlot] = m.st.Producers[act.ToSlot], m.st.Producers[act.FromSlot]
	return nil
}

// applyMergeProducers merges two same-kind same-level producers into one
// of the next level at the destination slot. The merged producer starts
// a fresh cycle; the source slot empties.
func (s *service) applyMergeProducers(m *mutation, act Action) error {
	if err := m.boardSlots(act.FromSlot, act.ToSlot); err != nil {
		return err
	}
	from := m.st.Producers[act.FromSlot]
	to := m.st.Producers[act.ToSlot]
	if from == nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, act.FromSlot)
	}
	if to == nil {
		return fmt.Errorf("%w: %d", domain.ErrSlotEmpty, act.ToSlot)
	}

	if from.Kind != to.Kind || from.Level != to.Level {
		return domain.ErrMergeInvalid
	}
	rule, ok := m.game.Kind(to.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, to.Kind)
	}
	if to.Level >= rule.MaxLevel {
		return fmt.Errorf("%w: level %d is the maximum", domain.ErrMergeInvalid, to.Level)
	}

	merged := producer.New(to.Kind, rule, m.now)
	merged.Level = to.Level + 1
	m.st.Producers[act.ToSlot] = merged
	m.st.Producers[act.FromSlot] = nil
	return nil
}
