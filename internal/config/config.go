// Package config provides YAML-based configuration loading and difficulty
// presets for the maze game.
package config

import (
	"fmt"
	"time"
)

// MazeConfig contains all tunable settings of the game.
type MazeConfig struct {
	Adventure AdventureConfig `yaml:"adventure"`
	Solo      SoloConfig      `yaml:"solo"`
	Generator GeneratorConfig `yaml:"generator"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Paths     PathsConfig     `yaml:"paths"`
}

// AdventureConfig defines the mazes generated in adventure mode.
type AdventureConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	Coins            int `yaml:"coins"`
	Obstacles        int `yaml:"obstacles"`
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// TimeLimit returns the run length as a duration.
func (a AdventureConfig) TimeLimit() time.Duration {
	return time.Duration(a.TimeLimitSeconds) * time.Second
}

// SoloConfig defines the timer for single-level play.
type SoloConfig struct {
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// TimeLimit returns the run length as a duration.
func (s SoloConfig) TimeLimit() time.Duration {
	return time.Duration(s.TimeLimitSeconds) * time.Second
}

// GeneratorConfig bounds the values accepted by the level generator.
type GeneratorConfig struct {
	MinSize     int `yaml:"min_size"`
	MaxSize     int `yaml:"max_size"`
	MaxFeatures int `yaml:"max_features"` // Upper bound for coins and for obstacles
}

// ScoringConfig defines the end-of-run score formula:
// coins*CoinPoints + remainingSeconds/TimeBonusDivisor + levels*LevelBonus.
type ScoringConfig struct {
	CoinPoints       int `yaml:"coin_points"`
	TimeBonusDivisor int `yaml:"time_bonus_divisor"`
	LevelBonus       int `yaml:"level_bonus"`
	LeaderboardSize  int `yaml:"leaderboard_size"`
}

// PathsConfig locates on-disk state. A leading "~" means the home directory.
type PathsConfig struct {
	DB     string `yaml:"db"`
	Levels string `yaml:"levels"`
}

// Validate reports the first setting that makes the game unplayable.
func (c MazeConfig) Validate() error {
	g := c.Generator
	if g.MinSize < 1 || g.MaxSize < g.MinSize {
		return fmt.Errorf("config: generator size bounds %d..%d are invalid", g.MinSize, g.MaxSize)
	}
	if g.MaxFeatures < 0 {
		return fmt.Errorf("config: generator max_features must not be negative")
	}
	a := c.Adventure
	if a.Width < g.MinSize || a.Width > g.MaxSize || a.Height < g.MinSize || a.Height > g.MaxSize {
		return fmt.Errorf("config: adventure size %dx%d outside %d..%d", a.Width, a.Height, g.MinSize, g.MaxSize)
	}
	if a.Coins < 0 || a.Obstacles < 0 {
		return fmt.Errorf("config: adventure feature counts must not be negative")
	}
	if a.TimeLimitSeconds <= 0 || c.Solo.TimeLimitSeconds <= 0 {
		return fmt.Errorf("config: time limits must be positive")
	}
	if c.Scoring.TimeBonusDivisor <= 0 {
		return fmt.Errorf("config: scoring time_bonus_divisor must be positive")
	}
	if c.Scoring.LeaderboardSize <= 0 {
		return fmt.Errorf("config: scoring leaderboard_size must be positive")
	}
	return nil
}

// DifficultyPreset represents a named adventure difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard)", s)
	}
}

// ApplyPreset adjusts adventure settings for a difficulty preset.
// Normal keeps the loaded configuration untouched.
func ApplyPreset(cfg *MazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Adventure.Width = 11
		cfg.Adventure.Height = 11
		cfg.Adventure.Coins = 5
		cfg.Adventure.Obstacles = 8
		cfg.Adventure.TimeLimitSeconds = 240
	case DifficultyHard:
		cfg.Adventure.Width = 21
		cfg.Adventure.Height = 21
		cfg.Adventure.Coins = 15
		cfg.Adventure.Obstacles = 40
		cfg.Adventure.TimeLimitSeconds = 150
	}
}
