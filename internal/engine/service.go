// Package engine is the transaction engine: every status read and every
// action runs as load, catch-up, validate, mutate, persist inside one
// database transaction, serialized per (account, game).
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/IdleYard_Go/internal/catchup"
	"github.com/osse101/IdleYard_Go/internal/concurrency"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/event"
	"github.com/osse101/IdleYard_Go/internal/logger"
	"github.com/osse101/IdleYard_Go/internal/metrics"
	"github.com/osse101/IdleYard_Go/internal/repository"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

// Action names accepted by ApplyAction
const (
	ActionBuyProducer           = "buyProducer"
	ActionCollect               = "collect"
	ActionUpgrade               = "upgrade"
	ActionHireWorker            = "hireWorker"
	ActionMoveProducer          = "moveProducer"
	ActionMergeProducers        = "mergeProducers"
	ActionSwapProducers         = "swapProducers"
	ActionSellProducer          = "sellProducer"
	ActionLoadCargo             = "loadCargo"
	ActionSendVehicle           = "sendVehicle"
	ActionSellCargo             = "sellCargo"
	ActionReleaseCagedProducers = "releaseCagedProducers"
	ActionFeed                  = "feed"
	ActionBuyFood               = "buyFood"
	ActionCollectFreeFood       = "collectFreeFood"
	ActionRedeemCode            = "redeemCode"
)

// Action is one requested mutation. Slot fields use -1 for "not given".
type Action struct {
	Kind         string `json:"kind"`
	ProducerKind string `json:"producer_kind,omitempty"`
	Slot         int    `json:"slot"`
	FromSlot     int    `json:"from_slot"`
	ToSlot       int    `json:"to_slot"`
	Quantity     int64  `json:"quantity,omitempty"`
	Resource     string `json:"resource,omitempty"`
	Direction    string `json:"direction,omitempty"`
	Code         string `json:"code,omitempty"`
}

// Service defines the interface for game state operations
type Service interface {
	// GetStatus returns the authoritative snapshot, folding any accrued
	// yield and persisting the normalized aggregate.
	GetStatus(ctx context.Context, accountID string, gameID domain.GameID) (*domain.Snapshot, error)

	// ApplyAction validates and applies one action atomically. On
	// rejection the aggregate is unchanged beyond catch-up.
	ApplyAction(ctx context.Context, accountID string, gameID domain.GameID, act Action) (*domain.Snapshot, error)
}

// service implements the Service interface
type service struct {
	accounts  repository.Account
	states    repository.GameState
	rules     *rules.Set
	locks     *concurrency.LockManager
	publisher event.Bus
	now       func() time.Time
}

// NewService creates a new engine service
func NewService(accounts repository.Account, states repository.GameState, ruleSet *rules.Set, publisher event.Bus) Service {
	return &service{
		accounts:  accounts,
		states:    states,
		rules:     ruleSet,
		locks:     concurrency.NewLockManager(),
		publisher: publisher,
		now:       time.Now,
	}
}

// mutation carries one in-flight read-modify-write cycle
type mutation struct {
	accountID string
	st        *domain.GameState
	game      *rules.Game
	now       time.Time
	events    []event.Event
}

// GetStatus folds accrued yield, normalizes derived state, persists the
// result and returns the snapshot
func (s *service) GetStatus(ctx context.Context, accountID string, gameID domain.GameID) (*domain.Snapshot, error) {
	return s.run(ctx, accountID, gameID, nil)
}

// ApplyAction applies one action after catch-up. A rejected action
// leaves the aggregate exactly as catch-up left it.
func (s *service) ApplyAction(ctx context.Context, accountID string, gameID domain.GameID, act Action) (*domain.Snapshot, error) {
	return s.run(ctx, accountID, gameID, &act)
}

func (s *service) run(ctx context.Context, accountID string, gameID domain.GameID, act *Action) (*domain.Snapshot, error) {
	log := logger.FromContext(ctx)

	if _, err := s.accounts.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	game, ok := s.rules.Game(gameID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}

	// One mutation in flight per (account, game)
	lock := s.locks.GetLock(accountID + ":" + string(gameID))
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.states.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	now := s.now()

	st, err := tx.GetStateForUpdate(ctx, accountID, gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if st == nil {
		st = domain.NewGameState(game.SlotCount, game.StartingBalances, game.Vehicle != nil, now)
	}

	catchRes := catchup.Apply(st, game, now)

	m := &mutation{accountID: accountID, st: st, game: game, now: now}
	var actErr error
	if act != nil {
		// Mutate a copy so a rejected action cannot leak a partial write
		m.st = st.Clone()
		actErr = s.dispatch(m, *act)
		if actErr != nil {
			metrics.ActionsRejected.WithLabelValues(game.ID, act.Kind, string(domain.ReasonFor(actErr))).Inc()
			m.st = st
			m.events = nil
		}
	}

	if err := tx.UpsertState(ctx, accountID, gameID, m.st); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if len(catchRes.Folded) > 0 {
		s.publish(ctx, event.NewYieldFoldedEvent(accountID, gameID, catchRes.Folded, catchRes.ElapsedSeconds))
	}

	if actErr != nil {
		log.Info("Action rejected",
			"account_id", accountID,
			"game", game.ID,
			"action", act.Kind,
			"reason", string(domain.ReasonFor(actErr)),
			"error", actErr)
		return nil, actErr
	}

	if act != nil {
		metrics.ActionsApplied.WithLabelValues(game.ID, act.Kind).Inc()
		s.publish(ctx, event.NewActionAppliedEvent(accountID, gameID, act.Kind))
		for _, evt := range m.events {
			s.publish(ctx, evt)
		}
		log.Info("Action applied", "account_id", accountID, "game", game.ID, "action", act.Kind)
	}

	return buildSnapshot(accountID, gameID, m.st, game, now), nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", evt.Type, "error", err)
	}
}

// dispatch routes the action to its handler
func (s *service) dispatch(m *mutation, act Action) error {
	switch act.Kind {
	case ActionBuyProducer:
		return s.applyBuyProducer(m, act)
	case ActionCollect:
		return s.applyCollect(m, act)
	case ActionUpgrade:
		return s.applyUpgrade(m, act)
	case ActionHireWorker:
		return s.applyHireWorker(m, act)
	case ActionMoveProducer:
		return s.applyMoveProducer(m, act)
	case ActionMergeProducers:
		return s.applyMergeProducers(m, act)
	case ActionSwapProducers:
		return s.applySwapProducers(m, act)
	case ActionSellProducer:
		return s.applySellProducer(m, act)
	case ActionLoadCargo:
		return s.applyLoadCargo(m, act)
	case ActionSendVehicle:
		return s.applySendVehicle(m, act)
	case ActionSellCargo:
		return s.applySellCargo(m, act)
	case ActionReleaseCagedProducers:
		return s.applyReleaseCagedProducers(m, act)
	case ActionFeed:
		return s.applyFeed(m, act)
	case ActionBuyFood:
		return s.applyBuyFood(m, act)
	case ActionCollectFreeFood:
		return s.applyCollectFreeFood(m, act)
	case ActionRedeemCode:
		return s.applyRedeemCode(m, act)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownAction, act.Kind)
	}
}

// producerAt validates a slot index and returns its occupant
func (m *mutation) producerAt(slot int) (*domain.Producer, error) {
	if slot < 0 || slot >= len(m.st.Producers) {
		return nil, fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, slot)
	}
	p := m.st.Producers[slot]
	if p == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrSlotEmpty, slot)
	}
	return p, nil
}
