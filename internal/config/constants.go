package config

const (
	// DefaultRulesDir holds one JSON rule file per game
	DefaultRulesDir = "configs/games"
)
