package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Loader reads game rule files from a directory. One JSON file per game.
type Loader struct {
	dir      string
	validate *validator.Validate
	// fastFactor divides every duration for testing; 1 leaves them alone
	fastFactor int64
}

// NewLoader creates a rules loader for the given directory
func NewLoader(dir string, fastFactor int64) *Loader {
	if fastFactor < 1 {
		fastFactor = 1
	}
	return &Loader{
		dir:        dir,
		validate:   validator.New(),
		fastFactor: fastFactor,
	}
}

// Load parses and validates every *.json rule file in the directory
func (l *Loader) Load() (*Set, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory: %w", err)
	}

	var games []*Game
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		game, err := l.parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules from %s: %w", entry.Name(), err)
		}
		games = append(games, game)
	}

	if len(games) == 0 {
		return nil, fmt.Errorf("no rule files found in %s", l.dir)
	}

	return NewSet(games), nil
}

func (l *Loader) parseFile(path string) (*Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var game Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := l.validate.Struct(&game); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	if l.fastFactor > 1 {
		applyFastMode(&game, l.fastFactor)
	}

	return &game, nil
}

// applyFastMode divides every configured duration by factor, keeping a
// 1 second floor so phases still take nonzero time
func applyFastMode(g *Game, factor int64) {
	g.MaxAccrualSeconds = scaleDown(g.MaxAccrualSeconds, factor)

	for name, k := range g.Kinds {
		k.ProduceSeconds = scaleDown(k.ProduceSeconds, factor)
		k.RestSeconds = scaleDown(k.RestSeconds, factor)
		k.GrowSeconds = scaleDown(k.GrowSeconds, factor)
		g.Kinds[name] = k
	}

	if g.Vehicle != nil {
		g.Vehicle.TravelSeconds = scaleDown(g.Vehicle.TravelSeconds, factor)
	}
	if g.FeedQuota != nil {
		g.FeedQuota.CooldownSeconds = scaleDown(g.FeedQuota.CooldownSeconds, factor)
	}
	if g.RedeemQuota != nil {
		g.RedeemQuota.CooldownSeconds = scaleDown(g.RedeemQuota.CooldownSeconds, factor)
	}
	if g.Food != nil {
		g.Food.FreeCooldownSeconds = scaleDown(g.Food.FreeCooldownSeconds, factor)
	}
}

func scaleDown(seconds, factor int64) int64 {
	if seconds == 0 {
		return 0
	}
	scaled := seconds / factor
	if scaled < 1 {
		return 1
	}
	return scaled
}
