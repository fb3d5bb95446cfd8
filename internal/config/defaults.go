package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the hardcoded default configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Adventure: AdventureConfig{
			Width:            15,
			Height:           15,
			Coins:            9,
			Obstacles:        20,
			TimeLimitSeconds: 180,
		},
		Solo: SoloConfig{
			TimeLimitSeconds: 180,
		},
		Generator: GeneratorConfig{
			MinSize:     9,
			MaxSize:     51,
			MaxFeatures: 99,
		},
		Scoring: ScoringConfig{
			CoinPoints:       5,
			TimeBonusDivisor: 10,
			LevelBonus:       20,
			LeaderboardSize:  9,
		},
		Paths: PathsConfig{
			DB:     "~/.maze/scores.db",
			Levels: "~/.maze/levels",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
