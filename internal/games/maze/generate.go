package maze

import (
	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

// GenerateOptions describes a level to generate.
type GenerateOptions struct {
	Width     int
	Height    int
	Coins     int
	Obstacles int
	Seed      int64

	// Clamp rounds sizes to valid odd values and trims feature counts to the
	// space the maze has, obstacles first. Without it invalid requests fail.
	Clamp bool
}

// GenerateResult is a generated level plus the counts actually placed.
type GenerateResult struct {
	Maze      *core.Maze
	Width     int
	Height    int
	Coins     int
	Obstacles int
	Clamped   bool
}

// GenerateLevel carves a maze and places obstacles then coins.
func GenerateLevel(opts GenerateOptions) (GenerateResult, error) {
	res := GenerateResult{
		Width:     opts.Width,
		Height:    opts.Height,
		Coins:     opts.Coins,
		Obstacles: opts.Obstacles,
	}

	if opts.Clamp {
		res.Width = core.NormalizeSize(res.Width)
		res.Height = core.NormalizeSize(res.Height)
		res.Coins = max(res.Coins, 0)
		res.Obstacles = max(res.Obstacles, 0)
	}

	m, err := core.Generate(res.Width, res.Height, opts.Seed)
	if err != nil {
		return res, err
	}

	if opts.Clamp && res.Coins+res.Obstacles > m.MaxAdditionalObjects() {
		res.Obstacles = min(res.Obstacles, m.MaxAdditionalObjects())
		res.Coins = max(m.MaxAdditionalObjects()-res.Obstacles, 0)
	}
	res.Clamped = res.Width != opts.Width || res.Height != opts.Height ||
		res.Coins != opts.Coins || res.Obstacles != opts.Obstacles

	if err := m.AddObjects(core.Obstacle, res.Obstacles); err != nil {
		return res, err
	}
	if err := m.AddObjects(core.Coin, res.Coins); err != nil {
		return res, err
	}
	res.Maze = m
	return res, nil
}
