package catchup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

func continuousGame() *rules.Game {
	return &rules.Game{
		ID:                "birdfarm",
		SlotCount:         4,
		ContinuousAccrual: true,
		MaxAccrualSeconds: 21600, // 6h
		StartingBalances:  map[string]int64{"coins": 100},
		Kinds: map[string]rules.KindRule{
			"hen": {
				Currency:       "coins",
				Resource:       "eggs",
				Rate:           1,
				MaxLevel:       5,
				CostMultiplier: 1.5,
				UpgradeGrowth:  2,
			},
		},
	}
}

func stateWithHen(t0 time.Time) *domain.GameState {
	st := domain.NewGameState(4, map[string]int64{"coins": 100}, false, t0)
	st.Producers[0] = &domain.Producer{
		Kind:           "hen",
		Level:          1,
		State:          domain.ProducerProducing,
		StateEnteredAt: t0,
	}
	return st
}

func TestFoldAccrual(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := continuousGame()

	t.Run("two hours idle", func(t *testing.T) {
		st := stateWithHen(t0)
		res := Apply(st, game, t0.Add(7200*time.Second))
		assert.Equal(t, int64(7200), res.Folded["eggs"])
		assert.Equal(t, int64(7200), st.Pending["eggs"])
	})

	t.Run("accrual capped at the window", func(t *testing.T) {
		st := stateWithHen(t0)
		res := Apply(st, game, t0.Add(30000*time.Second))
		assert.Equal(t, int64(21600), res.Folded["eggs"])
		assert.Equal(t, int64(21600), st.Pending["eggs"])
	})
}

func TestCheckpointFoldsExactlyOnce(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := continuousGame()
	st := stateWithHen(t0)

	now := t0.Add(time.Hour)
	Apply(st, game, now)
	assert.Equal(t, int64(3600), st.Pending["eggs"])
	assert.Equal(t, now, st.LastComputedAt)

	// Re-reading at the same instant adds nothing
	res := Apply(st, game, now)
	assert.Empty(t, res.Folded)
	assert.Equal(t, int64(3600), st.Pending["eggs"])

	// Two consecutive intervals sum to one long one
	Apply(st, game, now.Add(30*time.Minute))
	assert.Equal(t, int64(5400), st.Pending["eggs"])
}

func TestCheckpointNeverMovesBackward(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := continuousGame()
	st := stateWithHen(t0)

	now := t0.Add(time.Hour)
	Apply(st, game, now)

	// A stale clock is a no-op, not a rewind
	res := Apply(st, game, t0.Add(30*time.Minute))
	assert.Empty(t, res.Folded)
	assert.Equal(t, now, st.LastComputedAt)
}

func TestProducerBoughtMidIntervalAccruesFromItsStart(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := continuousGame()
	st := stateWithHen(t0)

	// Second hen appears halfway through the interval
	st.Producers[1] = &domain.Producer{
		Kind:           "hen",
		Level:          1,
		State:          domain.ProducerProducing,
		StateEnteredAt: t0.Add(30 * time.Minute),
	}

	res := Apply(st, game, t0.Add(time.Hour))
	assert.Equal(t, int64(3600+1800), res.Folded["eggs"])
}

func TestNonContinuousGameFoldsNothing(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := continuousGame()
	game.ContinuousAccrual = false
	game.Kinds["hen"] = rules.KindRule{
		Currency:       "coins",
		Resource:       "eggs",
		Rate:           1,
		ProduceSeconds: 3600,
		MaxLevel:       5,
		CostMultiplier: 1.5,
		UpgradeGrowth:  2,
	}
	st := stateWithHen(t0)

	now := t0.Add(2 * time.Hour)
	res := Apply(st, game, now)
	assert.Empty(t, res.Folded)
	assert.Equal(t, now, st.LastComputedAt)

	// But normalization still advanced the producer to ready
	assert.Equal(t, domain.ProducerReady, st.Producers[0].State)
}

func TestNormalizeAdvancesVehicleAndQuota(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := continuousGame()
	game.Vehicle = &rules.VehicleRule{
		TravelSeconds: 7200,
		CargoCapacity: 50,
		Currency:      "coins",
		Prices:        map[string]int64{"eggs": 2},
	}
	game.FeedQuota = &rules.QuotaRule{Limit: 3, CooldownSeconds: 3600}

	st := stateWithHen(t0)
	st.Vehicle = &domain.Vehicle{
		Location:   domain.VehicleTravelingToDestination,
		DepartedAt: t0,
		Cargo:      map[string]int64{},
	}
	st.FeedQuota = domain.Quota{Used: 3, CooldownStartedAt: t0}

	Apply(st, game, t0.Add(2*time.Hour))
	assert.Equal(t, domain.VehicleAtDestination, st.Vehicle.Location)
	assert.Zero(t, st.FeedQuota.Used)
	assert.True(t, st.FeedQuota.CooldownStartedAt.IsZero())
}
