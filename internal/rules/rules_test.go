package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseCost(t *testing.T) {
	k := KindRule{BaseCost: 100, CostMultiplier: 1.3}

	tests := []struct {
		name  string
		owned int
		want  int64
	}{
		{"first purchase at base cost", 0, 100},
		{"second purchase scaled once", 1, 130},
		{"third purchase rounds", 2, 169},
		{"fourth purchase rounds up", 3, 220},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.PurchaseCost(tt.owned))
		})
	}
}

func TestUpgradeCostAt(t *testing.T) {
	k := KindRule{UpgradeCost: 800, UpgradeGrowth: 1.6}

	assert.Equal(t, int64(800), k.UpgradeCostAt(1))
	assert.Equal(t, int64(1280), k.UpgradeCostAt(2))
	assert.Equal(t, int64(2048), k.UpgradeCostAt(3))
}

func TestEffectiveRate(t *testing.T) {
	k := KindRule{Rate: 1.0, LevelRateBonus: 0.25, WorkerRateBonus: 0.15}

	tests := []struct {
		name    string
		level   int
		workers int
		want    float64
	}{
		{"level one no workers", 1, 0, 1.0},
		{"level three", 3, 0, 1.5},
		{"workers multiply", 1, 2, 1.3},
		{"level and workers stack", 3, 2, 1.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, k.EffectiveRate(tt.level, tt.workers), 1e-9)
		})
	}
}

func TestSingleMaturation(t *testing.T) {
	assert.True(t, KindRule{GrowSeconds: 3600}.SingleMaturation())
	assert.False(t, KindRule{ProduceSeconds: 3600}.SingleMaturation())
}

func TestSetLookup(t *testing.T) {
	set := NewSet([]*Game{{ID: "birdfarm"}, {ID: "garden"}})

	g, ok := set.Game("birdfarm")
	assert.True(t, ok)
	assert.Equal(t, "birdfarm", g.ID)

	_, ok = set.Game("nope")
	assert.False(t, ok)

	assert.Len(t, set.IDs(), 2)
}
