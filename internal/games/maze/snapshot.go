package maze

import (
	"time"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

// GameStateType represents the current session state.
type GameStateType string

const (
	StatePlaying GameStateType = "playing"
	StatePaused  GameStateType = "paused"
	StateTimeUp  GameStateType = "time_up"
	StateWon     GameStateType = "won"
	StateError   GameStateType = "error"
)

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	Tick           uint64
	Mode           Mode
	Level          string
	LevelsCleared  int
	Score          int
	Coins          int
	CoinsRemaining int
	ExitOpen       bool
	PlayerX        int
	PlayerY        int
	Facing         core.Dir
	Remaining      time.Duration
	Map            string // Level in the text format
	State          GameStateType
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.loadErr != nil:
		state = StateError
	case g.won:
		state = StateWon
	case g.gameOver:
		state = StateTimeUp
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:          g.tick,
		Mode:          g.mode,
		Level:         g.levelName,
		LevelsCleared: g.levelsCleared,
		Score:         g.State().Score,
		Remaining:     g.timer.Remaining(),
		State:         state,
	}
	if g.level != nil {
		snap.CoinsRemaining = g.level.CoinsRemaining()
		snap.ExitOpen = g.level.ExitOpen()
		snap.Map = core.Encode(g.level)
	}
	if g.player != nil {
		pos := g.player.Position()
		snap.Coins = g.player.Coins()
		snap.PlayerX = pos.X
		snap.PlayerY = pos.Y
		snap.Facing = g.player.Facing()
	}
	return snap
}
