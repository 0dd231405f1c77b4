package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleYard_Go/internal/concurrency"
	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/rules"
)

// testClock is a hand-advanced clock shared with the service under test
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func birdfarmRules() *rules.Game {
	return &rules.Game{
		ID:                "birdfarm",
		SlotCount:         6,
		Contiguous:        true,
		ContinuousAccrual: true,
		MaxAccrualSeconds: 21600,
		StartingBalances:  map[string]int64{"coins": 5000},
		Kinds: map[string]rules.KindRule{
			"hen": {
				BaseCost:       1000,
				CostMultiplier: 1.5,
				Currency:       "coins",
				Resource:       "eggs",
				Rate:           1,
				MaxLevel:       5,
				UpgradeCost:    500,
				UpgradeGrowth:  2,
				LevelRateBonus: 0.25,
				FeedYieldBonus: 0.1,
			},
		},
		Vehicle: &rules.VehicleRule{
			TravelSeconds:     7200,
			CargoCapacity:     100,
			CageCapacity:      4,
			Prices:            map[string]int64{"eggs": 2},
			Currency:          "coins",
			BootstrapFirstBuy: true,
		},
		FeedQuota:   &rules.QuotaRule{Limit: 3, CooldownSeconds: 3600},
		RedeemQuota: &rules.QuotaRule{Limit: 1, CooldownSeconds: 600},
		Food:        &rules.FoodRule{UnitCost: 5, Currency: "coins", FreeAmount: 3, FreeCooldownSeconds: 86400},
		PromoCodes: map[string]map[string]int64{
			"WELCOME": {"coins": 250, "food": 5},
			"BONUS":   {"coins": 100},
		},
	}
}

func gardenRules() *rules.Game {
	return &rules.Game{
		ID:                "garden",
		SlotCount:         4,
		Contiguous:        true,
		MaxAccrualSeconds: 21600,
		StartingBalances:  map[string]int64{"coins": 500},
		Kinds: map[string]rules.KindRule{
			"plot": {
				BaseCost:       100,
				CostMultiplier: 1.3,
				Currency:       "coins",
				Resource:       "carrots",
				Rate:           0.01,
				ProduceSeconds: 3600,
				RestSeconds:    600,
				MaxLevel:       3,
				UpgradeCost:    200,
				UpgradeGrowth:  2,
				LevelRateBonus: 0.5,
			},
		},
	}
}

func chesscatsRules() *rules.Game {
	return &rules.Game{
		ID:                "chesscats",
		SlotCount:         9,
		BoardMerge:        true,
		ContinuousAccrual: true,
		MaxAccrualSeconds: 21600,
		StartingBalances:  map[string]int64{"coins": 1000},
		Kinds: map[string]rules.KindRule{
			"cat": {
				BaseCost:       100,
				CostMultiplier: 1.2,
				Currency:       "coins",
				Resource:       "purrs",
				Rate:           1,
				MaxLevel:       5,
			},
		},
	}
}

func aquariumRules() *rules.Game {
	return &rules.Game{
		ID:                "aquarium",
		SlotCount:         5,
		MaxAccrualSeconds: 21600,
		StartingBalances:  map[string]int64{"coins": 300},
		Kinds: map[string]rules.KindRule{
			"fish": {
				BaseCost:       50,
				CostMultiplier: 1.1,
				Currency:       "coins",
				Resource:       "fish",
				GrowSeconds:    3600,
				SellValue:      200,
				MaxLevel:       1,
				FeedYieldBonus: 0.25,
			},
		},
		FeedQuota: &rules.QuotaRule{Limit: 5, CooldownSeconds: 3600},
		Food:      &rules.FoodRule{UnitCost: 2, Currency: "coins", FreeAmount: 5, FreeCooldownSeconds: 3600},
	}
}

func newTestEngine(t *testing.T) (*service, *fakeStateRepository, *testClock) {
	t.Helper()

	clk := &testClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	states := newFakeStateRepository()
	accounts := newFakeAccountRepository("acct-1", "acct-2")
	set := rules.NewSet([]*rules.Game{birdfarmRules(), gardenRules(), chesscatsRules(), aquariumRules()})

	svc := &service{
		accounts: accounts,
		states:   states,
		rules:    set,
		locks:    concurrency.NewLockManager(),
		now:      clk.Now,
	}
	return svc, states, clk
}

func TestStatusSeedsNewAggregate(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	snap, err := svc.GetStatus(context.Background(), "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), snap.Balances["coins"])
	assert.Empty(t, snap.Producers)
	require.NotNil(t, snap.Vehicle)
	assert.Equal(t, domain.VehicleAtOrigin, snap.Vehicle.Location)
}

func TestUnknownAccountAndGame(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.GetStatus(ctx, "acct-missing", domain.GameBirdFarm)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.GetStatus(ctx, "acct-1", domain.GameID("poker"))
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: "teleport"})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestOfflineAccrualFoldsOnRead(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)

	clk.Advance(7200 * time.Second)
	snap, err := svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), snap.Pending["eggs"])

	// Re-reading at the same instant folds nothing more
	snap, err = svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), snap.Pending["eggs"])
}

func TestOfflineAccrualCapped(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)

	clk.Advance(30000 * time.Second)
	snap, err := svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, int64(21600), snap.Pending["eggs"])
}

func TestCollectClaimsPending(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionCollect, Slot: -1})
	require.NoError(t, err)

	assert.Equal(t, int64(3600), snap.Stocks["eggs"])
	assert.Empty(t, snap.Pending)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionCollect, Slot: -1})
	assert.ErrorIs(t, err, domain.ErrNothingToCollect)
}

func TestCollectEndsFeedBonus(t *testing.T) {
	svc, states, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyFood, Quantity: 10})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionFeed, Slot: 0, Quantity: 3})
	require.NoError(t, err)

	// Fed 3 at a 0.1 bonus per unit: 1.3 eggs/s over the hour
	clk.Advance(time.Hour)
	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionCollect, Slot: -1})
	require.NoError(t, err)
	assert.Equal(t, int64(4680), snap.Stocks["eggs"])

	// Collecting ends the bonus
	var st domain.GameState
	require.NoError(t, json.Unmarshal(states.Raw("acct-1", domain.GameBirdFarm), &st))
	assert.Equal(t, int64(0), st.Producers[0].Fed)

	// The next hour accrues at the base rate again
	clk.Advance(time.Hour)
	snap, err = svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), snap.Pending["eggs"])
}

func TestRejectedActionLeavesStoredBytesUnchanged(t *testing.T) {
	svc, states, _ := newTestEngine(t)
	ctx := context.Background()

	// Garden: 500 coins. Buy four plots to drain the balance below the
	// next escalated price.
	for i := 0; i < 3; i++ {
		_, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: -1})
		require.NoError(t, err)
	}

	before := states.Raw("acct-1", domain.GameGarden)
	require.NotEmpty(t, before)

	// 100 + 130 + 169 spent leaves 101; the fourth plot costs 220
	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: -1})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	after := states.Raw("acct-1", domain.GameGarden)
	assert.True(t, bytes.Equal(before, after), "rejected action must not change the stored aggregate")
}

func TestVehicleRoundTrip(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionCollect, Slot: -1})
	require.NoError(t, err)

	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionLoadCargo, Resource: "eggs", Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Vehicle.Cargo["eggs"])
	assert.Equal(t, int64(3500), snap.Stocks["eggs"])

	// Overloading is rejected
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionLoadCargo, Resource: "eggs", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrCargoCapacity)

	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionSendVehicle, Direction: "to_destination"})
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleTravelingToDestination, snap.Vehicle.Location)

	// Selling mid-transit is rejected
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionSellCargo})
	assert.ErrorIs(t, err, domain.ErrVehicleInTransit)

	clk.Advance(7199 * time.Second)
	snap, err = svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleTravelingToDestination, snap.Vehicle.Location)
	assert.Equal(t, int64(1), snap.Vehicle.SecondsRemaining)

	clk.Advance(time.Second)
	snap, err = svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleAtDestination, snap.Vehicle.Location)

	balanceBefore := snap.Balances["coins"]
	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionSellCargo})
	require.NoError(t, err)
	assert.Equal(t, balanceBefore+200, snap.Balances["coins"])
	assert.Empty(t, snap.Vehicle.Cargo)
}

func TestCagedPurchaseAndRelease(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	// Bootstrap buy lands straight in slot 0
	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)
	require.Len(t, snap.Producers, 1)

	// Second purchase requires a trip
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	assert.ErrorIs(t, err, domain.ErrWrongLocation)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionSendVehicle, Direction: "to_destination"})
	require.NoError(t, err)
	clk.Advance(7200 * time.Second)

	// Price escalated: second hen costs round(1000 * 1.5)
	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)
	require.Len(t, snap.Vehicle.Cage, 1)
	assert.Equal(t, int64(5000-1000-1500), snap.Balances["coins"])

	// Releasing away from the origin is rejected
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionReleaseCagedProducers})
	assert.ErrorIs(t, err, domain.ErrWrongLocation)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionSendVehicle, Direction: "to_origin"})
	require.NoError(t, err)
	clk.Advance(7200 * time.Second)

	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionReleaseCagedProducers})
	require.NoError(t, err)
	assert.Empty(t, snap.Vehicle.Cage)
	assert.Len(t, snap.Producers, 2)
	assert.Equal(t, 1, snap.Producers[1].Slot, "contiguous release fills the next slot")
}

func TestContiguousBuyRejectsOutOfOrderSlot(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: 2})
	assert.ErrorIs(t, err, domain.ErrSlotOrder)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: 0})
	require.NoError(t, err)

	// Slot 1 is now the only valid explicit choice
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: 2})
	assert.ErrorIs(t, err, domain.ErrSlotOrder)

	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: 1})
	require.NoError(t, err)
	require.Len(t, snap.Producers, 2)
	assert.Equal(t, 1, snap.Producers[1].Slot)
}

func TestFeedQuotaCycle(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyFood, Quantity: 10})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionFeed, Slot: 0, Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), snap.FeedQuota.Used)
	}

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionFeed, Slot: 0, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)

	clk.Advance(3600 * time.Second)
	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionFeed, Slot: 0, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.FeedQuota.Used)
}

func TestCyclicCollectAndRest(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: -1})
	require.NoError(t, err)

	// Not ready yet
	clk.Advance(1800 * time.Second)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionCollect, Slot: 0})
	assert.ErrorIs(t, err, domain.ErrNotReady)

	clk.Advance(1800 * time.Second)
	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionCollect, Slot: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(36), snap.Stocks["carrots"])
	assert.Equal(t, domain.ProducerResting, snap.Producers[0].State)

	// Resting chains into the next cycle without another action
	clk.Advance(600 * time.Second)
	snap, err = svc.GetStatus(ctx, "acct-1", domain.GameGarden)
	require.NoError(t, err)
	assert.Equal(t, domain.ProducerProducing, snap.Producers[0].State)
}

func TestUpgradeKeepsCycleTimer(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionBuyProducer, ProducerKind: "plot", Slot: -1})
	require.NoError(t, err)

	clk.Advance(1000 * time.Second)
	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionUpgrade, Slot: 0})
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Producers[0].Level)
	assert.Equal(t, int64(2600), snap.Producers[0].SecondsRemaining, "upgrade must not reset the cycle")
}

func TestBoardMergeMoveSwap(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionBuyProducer, ProducerKind: "cat", Slot: 0})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionBuyProducer, ProducerKind: "cat", Slot: 4})
	require.NoError(t, err)

	// Board actions are rejected outside board games
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameGarden, Action{Kind: ActionMoveProducer, FromSlot: 0, ToSlot: 1})
	assert.ErrorIs(t, err, domain.ErrNoBoard)

	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionMoveProducer, FromSlot: 4, ToSlot: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, snap.Producers[1].Slot)

	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionSwapProducers, FromSlot: 0, ToSlot: 8})
	require.NoError(t, err)
	require.Len(t, snap.Producers, 2)

	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionMergeProducers, FromSlot: 0, ToSlot: 8})
	require.NoError(t, err)
	require.Len(t, snap.Producers, 1)
	assert.Equal(t, 8, snap.Producers[0].Slot)
	assert.Equal(t, 2, snap.Producers[0].Level)

	// Merging different levels is invalid
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionBuyProducer, ProducerKind: "cat", Slot: 0})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameChessCats, Action{Kind: ActionMergeProducers, FromSlot: 0, ToSlot: 8})
	assert.ErrorIs(t, err, domain.ErrMergeInvalid)
}

func TestAquariumLifecycle(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameAquarium, Action{Kind: ActionBuyProducer, ProducerKind: "fish", Slot: -1})
	require.NoError(t, err)
	assert.Equal(t, domain.ProducerGrowing, snap.Producers[0].State)

	// Selling a growing fish is rejected
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameAquarium, Action{Kind: ActionSellProducer, Slot: 0})
	assert.ErrorIs(t, err, domain.ErrNotGrown)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameAquarium, Action{Kind: ActionCollectFreeFood})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameAquarium, Action{Kind: ActionCollectFreeFood})
	assert.ErrorIs(t, err, domain.ErrOnCooldown)

	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameAquarium, Action{Kind: ActionFeed, Slot: 0, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Stocks[ResourceFood])

	clk.Advance(3600 * time.Second)
	snap, err = svc.GetStatus(ctx, "acct-1", domain.GameAquarium)
	require.NoError(t, err)
	assert.Equal(t, domain.ProducerGrown, snap.Producers[0].State)

	// 200 * (1 + 0.25 * 2) = 300
	balanceBefore := snap.Balances["coins"]
	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameAquarium, Action{Kind: ActionSellProducer, Slot: 0})
	require.NoError(t, err)
	assert.Equal(t, balanceBefore+300, snap.Balances["coins"])
	assert.Empty(t, snap.Producers)
}

func TestRedeemCodeOncePerAccount(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "WELCOME"})
	require.NoError(t, err)
	assert.Equal(t, int64(5250), snap.Balances["coins"])
	assert.Equal(t, int64(5), snap.Stocks[ResourceFood])

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "WELCOME"})
	assert.ErrorIs(t, err, domain.ErrCodeRedeemed)

	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "BOGUS"})
	assert.ErrorIs(t, err, domain.ErrCodeUnknown)

	// A different account can still use the code
	_, err = svc.ApplyAction(ctx, "acct-2", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "WELCOME"})
	assert.NoError(t, err)
}

func TestRedeemQuotaCooldown(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	snap, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "WELCOME"})
	require.NoError(t, err)
	require.NotNil(t, snap.RedeemQuota)
	assert.Equal(t, int64(0), snap.RedeemQuota.Remaining)

	// A second code inside the cooldown is rejected
	_, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "BONUS"})
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)

	clk.Advance(600 * time.Second)
	snap, err = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionRedeemCode, Code: "BONUS"})
	require.NoError(t, err)
	assert.Equal(t, int64(5350), snap.Balances["coins"])
	assert.Equal(t, int64(1), snap.RedeemQuota.Used)
}

func TestConcurrentCollectsClaimOnce(t *testing.T) {
	svc, _, clk := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionBuyProducer, ProducerKind: "hen"})
	require.NoError(t, err)
	clk.Advance(time.Hour)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.ApplyAction(ctx, "acct-1", domain.GameBirdFarm, Action{Kind: ActionCollect, Slot: -1})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, domain.ErrNothingToCollect)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent collect claims the pool")

	snap, err := svc.GetStatus(ctx, "acct-1", domain.GameBirdFarm)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), snap.Stocks["eggs"])
}

func TestStorageFailureSurfacesAsTransient(t *testing.T) {
	svc, states, _ := newTestEngine(t)
	states.failBegin = true

	_, err := svc.GetStatus(context.Background(), "acct-1", domain.GameBirdFarm)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, domain.ReasonTransientIO, domain.ReasonFor(err))
}
