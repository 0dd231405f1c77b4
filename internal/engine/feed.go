package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/IdleYard_Go/internal/clock"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/ledger"
	"github.com/osse101/IdleYard_Go/internal/quota"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

// ResourceFood is the stock key the food economy trades in
const ResourceFood = "food"

// applyFeed spends food on one producer, bounded by the feed quota.
// Partial grants are allowed: feeding 5 with 2 quota left feeds 2.
// Fed units boost the producer's yield until its next collect, or for
// single-maturation producers its final sale value.
func (s *service) applyFeed(m *mutation, act Action) error {
	if m.game.FeedQuota == nil {
		return fmt.Errorf("%w: feeding is not part of this game", domain.ErrUnknownAction)
	}
	p, err := m.producerAt(act.Slot)
	if err != nil {
		return err
	}
	rule, ok := m.game.Kind(p.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownKind, p.Kind)
	}
	if rule.FeedYieldBonus == 0 {
		return fmt.Errorf("%w: %s does not eat", domain.ErrUnknownAction, p.Kind)
	}

	granted, err := quota.Consume(&m.st.FeedQuota, m.game.FeedQuota, act.Quantity, m.st.Stocks[ResourceFood], m.now)
	if err != nil {
		return err
	}

	if err := ledger.DebitStock(m.st, ResourceFood, granted); err != nil {
		return err
	}
	p.Fed += granted
	return nil
}

// applyBuyFood converts currency into food stock
func (s *service) applyBuyFood(m *mutation, act Action) error {
	if m.game.Food == nil {
		return fmt.Errorf("%w: food is not part of this game", domain.ErrUnknownAction)
	}
	if act.Quantity <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, act.Quantity)
	}

	cost := act.Quantity * m.game.Food.UnitCost
	if err := ledger.DebitBalance(m.st, m.game.Food.Currency, cost); err != nil {
		return err
	}
	return ledger.CreditStock(m.st, ResourceFood, act.Quantity)
}

// applyCollectFreeFood grants the periodic free food ration
func (s *service) applyCollectFreeFood(m *mutation, act Action) error {
	food := m.game.Food
	if food == nil || food.FreeAmount == 0 {
		return fmt.Errorf("%w: free food is not part of this game", domain.ErrUnknownAction)
	}

	cooldown := time.Duration(food.FreeCooldownSeconds) * time.Second
	if !m.st.LastFreeFoodAt.IsZero() {
		if remaining := clock.Remaining(m.st.LastFreeFoodAt, m.now, cooldown); remaining > 0 {
			return fmt.Errorf("%w: %ds remaining", domain.ErrOnCooldown, remaining)
		}
	}

	if err := ledger.CreditStock(m.st, ResourceFood, food.FreeAmount); err != nil {
		return err
	}
	m.st.LastFreeFoodAt = m.now
	return nil
}

// fedSellValue scales a single-maturation producer's sale value by how
// much it was fed. Derived values round; only yields floor.
func fedSellValue(rule rules.KindRule, fed int64) int64 {
	if rule.FeedYieldBonus <= 0 || fed <= 0 {
		return rule.SellValue
	}
	return int64(math.Round(float64(rule.SellValue) * (1 + rule.FeedYieldBonus*float64(fed))))
}
