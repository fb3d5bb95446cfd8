package maze

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

func TestGenerateLevelPlacesFeatures(t *testing.T) {
	res, err := GenerateLevel(GenerateOptions{Width: 15, Height: 11, Coins: 5, Obstacles: 7, Seed: 9})
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if res.Clamped {
		t.Error("valid request should not be clamped")
	}
	lvl := res.Maze.Level()
	if lvl.Count(core.Coin) != 5 || lvl.Count(core.Obstacle) != 7 {
		t.Errorf("expected 5 coins and 7 obstacles, got %d and %d", lvl.Count(core.Coin), lvl.Count(core.Obstacle))
	}
	if !core.Solvable(lvl) {
		t.Error("generated level should be solvable")
	}
}

func TestGenerateLevelStrict(t *testing.T) {
	if _, err := GenerateLevel(GenerateOptions{Width: 10, Height: 9}); !errors.Is(err, core.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := GenerateLevel(GenerateOptions{Width: 9, Height: 9, Coins: 99}); !errors.Is(err, core.ErrInsufficientSpace) {
		t.Errorf("expected ErrInsufficientSpace, got %v", err)
	}
}

func TestGenerateLevelClamp(t *testing.T) {
	res, err := GenerateLevel(GenerateOptions{Width: 10, Height: 4, Coins: 50, Obstacles: 20, Seed: 1, Clamp: true})
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if res.Width != 9 || res.Height != core.MinSize {
		t.Errorf("expected 9x%d, got %dx%d", core.MinSize, res.Width, res.Height)
	}
	if !res.Clamped {
		t.Error("expected Clamped to be set")
	}

	// Obstacles keep their count, coins take what is left.
	capacity := res.Maze.MaxAdditionalObjects()
	if res.Obstacles != min(20, capacity) {
		t.Errorf("obstacles = %d, want %d", res.Obstacles, min(20, capacity))
	}
	if res.Coins != capacity-res.Obstacles {
		t.Errorf("coins = %d, want %d", res.Coins, capacity-res.Obstacles)
	}
	if res.Maze.FreeCells() != 0 {
		t.Errorf("expected a full maze, %d cells free", res.Maze.FreeCells())
	}
}

func TestGenerateLevelDeterministic(t *testing.T) {
	opts := GenerateOptions{Width: 21, Height: 21, Coins: 9, Obstacles: 20, Seed: 77}
	a, err := GenerateLevel(opts)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	b, _ := GenerateLevel(opts)
	if a.Maze.Encode() != b.Maze.Encode() {
		t.Error("same seed should produce the same level")
	}
}
