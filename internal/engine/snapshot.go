package engine

import (
	"time"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/producer"
	"github.com/osse101/IdleYard_Go/internal/quota"
	"github.com/osse101/IdleYard_Go/internal/rules"
	"github.com/osse101/IdleYard_Go/internal/transport"
)

// buildSnapshot resolves every derived state into the client-facing view
func buildSnapshot(accountID string, gameID domain.GameID, st *domain.GameState, game *rules.Game, now time.Time) *domain.Snapshot {
	snap := &domain.Snapshot{
		AccountID:  accountID,
		GameID:     gameID,
		Balances:   copyAmounts(st.Balances),
		Stocks:     copyAmounts(st.Stocks),
		Pending:    copyAmounts(st.Pending),
		Producers:  make([]domain.ProducerView, 0, len(st.Producers)),
		ComputedAt: now,
	}

	for slot, p := range st.Producers {
		if p == nil {
			continue
		}
		view := domain.ProducerView{
			Slot:    slot,
			Kind:    p.Kind,
			Level:   p.Level,
			Workers: p.Workers,
		}
		if rule, ok := game.Kind(p.Kind); ok {
			resolved := producer.Resolve(p, rule, now)
			view.State = resolved.State
			view.SecondsRemaining = resolved.SecondsRemaining
			view.Collectible = resolved.Collectible
		}
		snap.Producers = append(snap.Producers, view)
	}

	if st.Vehicle != nil && game.Vehicle != nil {
		resolved := transport.Resolve(st.Vehicle, game.Vehicle, now)
		snap.Vehicle = &domain.VehicleView{
			Location:         resolved.Location,
			SecondsRemaining: resolved.SecondsRemaining,
			Cargo:            copyAmounts(st.Vehicle.Cargo),
			CargoCapacity:    game.Vehicle.CargoCapacity,
			Cage:             append([]domain.CagedProducer(nil), st.Vehicle.Cage...),
			CageCapacity:     game.Vehicle.CageCapacity,
		}
	}

	if game.FeedQuota != nil {
		snap.FeedQuota = quotaView(&st.FeedQuota, game.FeedQuota, now)
	}
	if game.RedeemQuota != nil {
		snap.RedeemQuota = quotaView(&st.RedeemQuota, game.RedeemQuota, now)
	}

	return snap
}

func quotaView(q *domain.Quota, rule *rules.QuotaRule, now time.Time) *domain.QuotaView {
	resolved := quota.Resolve(q, rule, now)
	return &domain.QuotaView{
		Used:              resolved.Used,
		Limit:             resolved.Limit,
		Remaining:         resolved.Remaining,
		CooldownRemaining: resolved.CooldownRemaining,
	}
}

func copyAmounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
