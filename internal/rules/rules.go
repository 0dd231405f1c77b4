package rules

import (
	"math"
	"time"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// KindRule is the rate/cost/duration table for one producer kind
type KindRule struct {
	BaseCost        int64   `json:"base_cost" validate:"gte=0"`
	CostMultiplier  float64 `json:"cost_multiplier" validate:"gte=1"`
	Currency        string  `json:"currency" validate:"required"`
	Resource        string  `json:"resource" validate:"required"`
	Rate            float64 `json:"rate" validate:"gte=0"`
	ProduceSeconds  int64   `json:"produce_seconds" validate:"gte=0"`
	RestSeconds     int64   `json:"rest_seconds" validate:"gte=0"`
	GrowSeconds     int64   `json:"grow_seconds" validate:"gte=0"`
	SellValue       int64   `json:"sell_value" validate:"gte=0"`
	MaxLevel        int     `json:"max_level" validate:"gte=1"`
	UpgradeCost     int64   `json:"upgrade_cost" validate:"gte=0"`
	UpgradeGrowth   float64 `json:"upgrade_growth" validate:"gte=1"`
	LevelRateBonus  float64 `json:"level_rate_bonus" validate:"gte=0"`
	MaxWorkers      int     `json:"max_workers" validate:"gte=0"`
	WorkerCost      int64   `json:"worker_cost" validate:"gte=0"`
	WorkerRateBonus float64 `json:"worker_rate_bonus" validate:"gte=0"`
	FeedYieldBonus  float64 `json:"feed_yield_bonus" validate:"gte=0"`
}

// SingleMaturation reports whether this kind grows once and stays grown
// until sold instead of cycling
func (k KindRule) SingleMaturation() bool {
	return k.GrowSeconds > 0
}

// EffectiveRate returns the per-second yield rate for a producer of
// this kind at the given level with the given worker count
func (k KindRule) EffectiveRate(level, workers int) float64 {
	rate := k.Rate
	if level > 1 {
		rate *= 1 + k.LevelRateBonus*float64(level-1)
	}
	if workers > 0 {
		rate *= 1 + k.WorkerRateBonus*float64(workers)
	}
	return rate
}

// PurchaseCost returns the cost of the next producer of this kind given
// how many the account already owns. Derived costs round, yields floor.
func (k KindRule) PurchaseCost(owned int) int64 {
	return int64(math.Round(float64(k.BaseCost) * math.Pow(k.CostMultiplier, float64(owned))))
}

// UpgradeCostAt returns the cost of upgrading from the given level
func (k KindRule) UpgradeCostAt(level int) int64 {
	return int64(math.Round(float64(k.UpgradeCost) * math.Pow(k.UpgradeGrowth, float64(level-1))))
}

// VehicleRule configures the game's transport vehicle
type VehicleRule struct {
	TravelSeconds     int64            `json:"travel_seconds" validate:"gt=0"`
	CargoCapacity     int64            `json:"cargo_capacity" validate:"gt=0"`
	CageCapacity      int              `json:"cage_capacity" validate:"gte=0"`
	Prices            map[string]int64 `json:"prices" validate:"required"`
	Currency          string           `json:"currency" validate:"required"`
	GatePurchases     bool             `json:"gate_purchases"`
	BootstrapFirstBuy bool             `json:"bootstrap_first_buy"`
}

// QuotaRule bounds a consumption counter per cooldown cycle
type QuotaRule struct {
	Limit           int64 `json:"limit" validate:"gt=0"`
	CooldownSeconds int64 `json:"cooldown_seconds" validate:"gt=0"`
}

// FoodRule configures the food economy for feeding games
type FoodRule struct {
	UnitCost            int64  `json:"unit_cost" validate:"gt=0"`
	Currency            string `json:"currency" validate:"required"`
	FreeAmount          int64  `json:"free_amount" validate:"gte=0"`
	FreeCooldownSeconds int64  `json:"free_cooldown_seconds" validate:"gte=0"`
}

// Game is the complete rule table for one game
type Game struct {
	ID                string                      `json:"id" validate:"required"`
	SlotCount         int                         `json:"slot_count" validate:"gt=0"`
	Contiguous        bool                        `json:"contiguous"`
	BoardMerge        bool                        `json:"board_merge"`
	ContinuousAccrual bool                        `json:"continuous_accrual"`
	MaxAccrualSeconds int64                       `json:"max_accrual_seconds" validate:"gt=0"`
	StartingBalances  map[string]int64            `json:"starting_balances" validate:"required"`
	Kinds             map[string]KindRule         `json:"kinds" validate:"required,dive"`
	Vehicle           *VehicleRule                `json:"vehicle,omitempty"`
	FeedQuota         *QuotaRule                  `json:"feed_quota,omitempty"`
	RedeemQuota       *QuotaRule                  `json:"redeem_quota,omitempty"`
	Food              *FoodRule                   `json:"food,omitempty"`
	PromoCodes        map[string]map[string]int64 `json:"promo_codes,omitempty"`
}

// MaxAccrualWindow returns the accrual cap as a duration
func (g *Game) MaxAccrualWindow() time.Duration {
	return time.Duration(g.MaxAccrualSeconds) * time.Second
}

// Kind looks up the rule table for a producer kind
func (g *Game) Kind(name string) (KindRule, bool) {
	k, ok := g.Kinds[name]
	return k, ok
}

// Set holds the rule tables for every configured game
type Set struct {
	games map[domain.GameID]*Game
}

// NewSet builds a Set from loaded games
func NewSet(games []*Game) *Set {
	m := make(map[domain.GameID]*Game, len(games))
	for _, g := range games {
		m[domain.GameID(g.ID)] = g
	}
	return &Set{games: m}
}

// Game returns the rules for the given game ID
func (s *Set) Game(id domain.GameID) (*Game, bool) {
	g, ok := s.games[id]
	return g, ok
}

// IDs returns the configured game IDs
func (s *Set) IDs() []domain.GameID {
	ids := make([]domain.GameID, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids
}
