// Package catchup implements the offline catch-up engine. On every
// authoritative read or action, the elapsed time since the checkpoint
// is folded into the pending pool and every lazily-derived state
// (producers, vehicle, quotas) is normalized. There is no scheduler;
// this recomputation is the only way time advances.
package catchup

import (
	"math"
	"time"

	"github.com/osse101/IdleYard_Go/internal/clock"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/producer"
	"github.com/osse101/IdleYard_Go/internal/quota"
	"github.com/osse101/IdleYard_Go/internal/rules"
	"github.com/osse101/IdleYard_Go/internal/transport"
)

// Result reports what one catch-up pass did
type Result struct {
	// Folded is the yield added to the pending pool, by resource kind
	Folded map[string]int64
	// ElapsedSeconds is the (capped) interval the fold covered
	ElapsedSeconds int64
}

// Apply advances the aggregate to now. The checkpoint moves together
// with the fold, in the same mutation, so an interval is never counted
// twice: callers persist the whole aggregate or nothing.
//
// The checkpoint never moves backward; a stale or future now is a no-op
// beyond normalization.
func Apply(st *domain.GameState, game *rules.Game, now time.Time) Result {
	res := Result{Folded: map[string]int64{}}

	if now.After(st.LastComputedAt) {
		res.ElapsedSeconds = clock.Elapsed(st.LastComputedAt, now, game.MaxAccrualWindow())

		if game.ContinuousAccrual {
			foldPending(st, game, now, &res)
		}

		st.LastComputedAt = now
	}

	normalize(st, game, now)
	return res
}

// foldPending adds floor(rate * elapsed) per continuous producer to the
// claimable pool. Collection into spendable stock stays an explicit
// action; the pool only accumulates here.
func foldPending(st *domain.GameState, game *rules.Game, now time.Time, res *Result) {
	window := game.MaxAccrualWindow()

	for _, p := range st.Producers {
		if p == nil {
			continue
		}
		rule, ok := game.Kind(p.Kind)
		if !ok || rule.SingleMaturation() || rule.ProduceSeconds != 0 {
			continue
		}

		// A producer bought after the checkpoint accrues from its own
		// start, not from the checkpoint
		ref := st.LastComputedAt
		if p.StateEnteredAt.After(ref) {
			ref = p.StateEnteredAt
		}
		elapsed := clock.Elapsed(ref, now, window)
		if elapsed == 0 {
			continue
		}

		rate := rule.EffectiveRate(p.Level, p.Workers)
		if rule.FeedYieldBonus > 0 && p.Fed > 0 {
			rate *= 1 + rule.FeedYieldBonus*float64(p.Fed)
		}
		yield := int64(math.Floor(rate * float64(elapsed)))
		if yield <= 0 {
			continue
		}

		if st.Pending == nil {
			st.Pending = make(map[string]int64)
		}
		st.Pending[rule.Resource] += yield
		res.Folded[rule.Resource] += yield
	}
}

// normalize persists every lazily-derived transition so stored records
// match what a read derives
func normalize(st *domain.GameState, game *rules.Game, now time.Time) {
	for _, p := range st.Producers {
		if p == nil {
			continue
		}
		if rule, ok := game.Kind(p.Kind); ok {
			producer.Normalize(p, rule, now)
		}
	}

	if st.Vehicle != nil && game.Vehicle != nil {
		transport.Normalize(st.Vehicle, game.Vehicle, now)
	}

	if game.FeedQuota != nil {
		quota.Normalize(&st.FeedQuota, game.FeedQuota, now)
	}
	if game.RedeemQuota != nil {
		quota.Normalize(&st.RedeemQuota, game.RedeemQuota, now)
	}
}
