package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const minimalGame = `{
  "id": "testgame",
  "slot_count": 4,
  "max_accrual_seconds": 3600,
  "starting_balances": {"coins": 100},
  "kinds": {
    "thing": {
      "base_cost": 10,
      "cost_multiplier": 1.2,
      "currency": "coins",
      "resource": "stuff",
      "rate": 1,
      "max_level": 3,
      "upgrade_growth": 1.5
    }
  }
}`

func TestLoaderLoad(t *testing.T) {
	t.Run("loads valid rule files", func(t *testing.T) {
		dir := t.TempDir()
		writeRuleFile(t, dir, "testgame.json", minimalGame)

		set, err := NewLoader(dir, 1).Load()

		require.NoError(t, err)
		g, ok := set.Game("testgame")
		require.True(t, ok)
		assert.Equal(t, 4, g.SlotCount)
	})

	t.Run("ignores non-json files", func(t *testing.T) {
		dir := t.TempDir()
		writeRuleFile(t, dir, "testgame.json", minimalGame)
		writeRuleFile(t, dir, "notes.txt", "not rules")

		set, err := NewLoader(dir, 1).Load()

		require.NoError(t, err)
		assert.Len(t, set.IDs(), 1)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		dir := t.TempDir()
		writeRuleFile(t, dir, "bad.json", "{not json")

		_, err := NewLoader(dir, 1).Load()

		assert.Error(t, err)
	})

	t.Run("rejects rules failing validation", func(t *testing.T) {
		dir := t.TempDir()
		// slot_count of zero fails validation
		writeRuleFile(t, dir, "bad.json", `{
		  "id": "bad",
		  "slot_count": 0,
		  "max_accrual_seconds": 3600,
		  "starting_balances": {"coins": 1},
		  "kinds": {}
		}`)

		_, err := NewLoader(dir, 1).Load()

		assert.Error(t, err)
	})

	t.Run("errors on empty directory", func(t *testing.T) {
		_, err := NewLoader(t.TempDir(), 1).Load()

		assert.Error(t, err)
	})
}

func TestLoaderFastMode(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "fast.json", `{
	  "id": "fast",
	  "slot_count": 2,
	  "max_accrual_seconds": 21600,
	  "starting_balances": {"coins": 100},
	  "kinds": {
	    "thing": {
	      "base_cost": 10,
	      "cost_multiplier": 1.2,
	      "currency": "coins",
	      "resource": "stuff",
	      "rate": 1,
	      "produce_seconds": 3600,
	      "rest_seconds": 30,
	      "max_level": 3,
	      "upgrade_growth": 1.5
	    }
	  },
	  "feed_quota": {"limit": 3, "cooldown_seconds": 3600}
	}`)

	set, err := NewLoader(dir, 60).Load()
	require.NoError(t, err)

	g, ok := set.Game("fast")
	require.True(t, ok)

	assert.Equal(t, int64(360), g.MaxAccrualSeconds)
	assert.Equal(t, int64(60), g.Kinds["thing"].ProduceSeconds)
	// Durations never scale below one second
	assert.Equal(t, int64(1), g.Kinds["thing"].RestSeconds)
	assert.Equal(t, int64(60), g.FeedQuota.CooldownSeconds)
}

// Shipped rule files must always parse and validate
func TestLoaderShippedConfigs(t *testing.T) {
	set, err := NewLoader(filepath.Join("..", "..", "configs", "games"), 1).Load()
	require.NoError(t, err)

	for _, id := range []string{"birdfarm", "garden", "mine", "chesscats", "aquarium"} {
		_, ok := set.Game(domain.GameID(id))
		assert.True(t, ok, "missing shipped game %s", id)
	}
}
