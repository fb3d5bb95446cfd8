// Package maze provides the playable maze modes: endless generated
// adventure and single-level solo play.
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-maze/internal/config"
	platformcore "github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// Mode selects how levels are supplied and when a run ends.
type Mode string

const (
	ModeAdventure Mode = "adventure" // Generated levels until the timer runs out
	ModeSolo      Mode = "solo"      // One library level, won at its exit
)

// ErrNoLevels is returned when solo play has nothing to load.
var ErrNoLevels = errors.New("maze: no levels available")

// messageTicks is how long a HUD message stays visible (~2s at 60 FPS).
const messageTicks = 120

// Package-level configuration shared by every session.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultMazeConfig()
	library    = levels.NewLoader("")
)

// Configure sets the game settings and level library used by sessions
// created afterwards.
func Configure(cfg config.MazeConfig, loader *levels.Loader) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
	if loader != nil {
		library = loader
	}
}

func currentSettings() (config.MazeConfig, *levels.Loader) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings, library
}

func init() {
	registry.Register(string(ModeAdventure), func() registry.Game {
		return NewAdventure()
	})
	registry.Register(string(ModeSolo), func() registry.Game {
		return NewSolo()
	})
}

// Game is one maze session.
type Game struct {
	mode   Mode
	cfg    config.MazeConfig
	loader *levels.Loader
	rng    *rand.Rand
	rtCfg  platformcore.RuntimeConfig

	// Current level
	selected  string // Solo level requested by SelectLevel
	levelName string
	level     *core.Level
	player    *core.Player
	timer     Timer
	tickDur   time.Duration

	// Status
	tick          uint64
	levelsCleared int
	score         int
	gameOver      bool
	won           bool
	paused        bool
	loadErr       error

	message      string
	messageTicks int

	view tileView
}

// NewAdventure creates an adventure session.
func NewAdventure() *Game {
	return &Game{mode: ModeAdventure}
}

// NewSolo creates a solo session. Call SelectLevel to choose the level;
// otherwise the first level of the library is played.
func NewSolo() *Game {
	return &Game{mode: ModeSolo}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSolo {
		return "Maze: Solo"
	}
	return "Maze: Adventure"
}

// SelectLevel chooses the library level played by a solo session.
func (g *Game) SelectLevel(name string) error {
	if g.mode != ModeSolo {
		return fmt.Errorf("maze: %s mode does not take a level", g.mode)
	}
	_, loader := currentSettings()
	if g.loader != nil {
		loader = g.loader
	}
	if _, err := loader.LoadByName(name); err != nil {
		return err
	}
	g.selected = name
	return nil
}

// Reset starts a new run.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg, g.loader = currentSettings()
	g.rtCfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	g.tick = 0
	g.levelsCleared = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.loadErr = nil
	g.message = ""
	g.messageTicks = 0
	g.level = nil
	g.player = nil

	if g.mode == ModeSolo {
		g.timer = NewTimer(g.cfg.Solo.TimeLimit())
	} else {
		g.timer = NewTimer(g.cfg.Adventure.TimeLimit())
	}

	lvl, name, err := g.nextLevel()
	if err != nil {
		g.loadErr = err
		g.gameOver = true
		return
	}
	g.enter(lvl, name)
}

// restart begins a fresh run with a new seed, keeping the level choice.
func (g *Game) restart() {
	cfg := g.rtCfg
	cfg.Seed = g.rng.Int63()
	g.Reset(cfg)
}

// nextLevel produces the level to play next for the current mode.
func (g *Game) nextLevel() (*core.Level, string, error) {
	if g.mode == ModeSolo {
		return g.loadSolo()
	}

	a := g.cfg.Adventure
	res, err := GenerateLevel(GenerateOptions{
		Width:     a.Width,
		Height:    a.Height,
		Coins:     a.Coins,
		Obstacles: a.Obstacles,
		Seed:      g.rng.Int63(),
		Clamp:     true,
	})
	if err != nil {
		return nil, "", err
	}
	return res.Maze.Level(), "Level " + fmt.Sprint(g.levelsCleared+1), nil
}

func (g *Game) loadSolo() (*core.Level, string, error) {
	if g.selected != "" {
		lvl, err := g.loader.LoadByName(g.selected)
		if err != nil {
			return nil, "", err
		}
		return lvl.Fresh(), lvl.Name, nil
	}

	all, err := g.loader.LoadAll()
	if err != nil {
		return nil, "", err
	}
	if len(all) == 0 {
		return nil, "", ErrNoLevels
	}
	return all[0].Fresh(), all[0].Name, nil
}

// enter places the player on a new level and rebuilds the tile cache.
func (g *Game) enter(lvl *core.Level, name string) {
	g.level = lvl
	g.levelName = name
	if g.player == nil {
		g.player = core.NewPlayer(g.rtCfg.Player, lvl)
	} else {
		g.player.Enter(lvl)
	}
	g.view.reset(lvl)
}

// Step advances the session by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if g.gameOver {
		if in.Has(platformcore.ActionRestart) {
			g.restart()
		}
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
		g.timer = g.timer.WithPaused(g.paused)
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.timer = g.timer.Advance(g.tickDur)
	if g.timer.Expired() {
		g.finish(false)
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)

	return platformcore.StepResult{State: g.State()}
}

var moveActions = []struct {
	action platformcore.Action
	dir    core.Dir
}{
	{platformcore.ActionUp, core.North},
	{platformcore.ActionDown, core.South},
	{platformcore.ActionLeft, core.West},
	{platformcore.ActionRight, core.East},
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	for _, m := range moveActions {
		if !in.Has(m.action) {
			continue
		}
		target := g.player.Position().Step(m.dir)
		err := g.player.Move(g.level, m.dir)
		if errors.Is(err, core.ErrBlocked) && g.level.At(target).IsExit() {
			g.flash(fmt.Sprintf("Exit locked: %d coins left", g.level.CoinsRemaining()))
		}
		break
	}

	if in.Has(platformcore.ActionDestroy) {
		err := g.player.DestroyFacingBlock(g.level)
		if errors.Is(err, core.ErrNotDestructible) || errors.Is(err, core.ErrOutOfBounds) {
			g.flash("Nothing to clear here")
		}
	}

	if g.player.AtOpenExit(g.level) {
		g.exitReached()
	}
}

func (g *Game) exitReached() {
	g.levelsCleared++

	if g.mode == ModeSolo {
		g.finish(true)
		return
	}

	lvl, name, err := g.nextLevel()
	if err != nil {
		g.loadErr = err
		g.finish(false)
		return
	}
	g.enter(lvl, name)
	g.flash("Level " + fmt.Sprint(g.levelsCleared) + " cleared!")
}

func (g *Game) finish(won bool) {
	g.gameOver = true
	g.won = won
	g.score = Score(g.cfg.Scoring, g.player.Coins(), g.timer.RemainingSeconds(), g.levelsCleared)
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// Score computes the end-of-run score. It is never negative.
func Score(s config.ScoringConfig, coins, remainingSeconds, levelsCleared int) int {
	divisor := s.TimeBonusDivisor
	if divisor <= 0 {
		divisor = 1
	}
	score := coins*s.CoinPoints + remainingSeconds/divisor + levelsCleared*s.LevelBonus
	return max(score, 0)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	coins := 0
	if g.player != nil {
		coins = g.player.Coins()
	}
	score := g.score
	if !g.gameOver {
		score = Score(g.cfg.Scoring, coins, 0, g.levelsCleared)
	}
	return platformcore.GameState{
		Score:    score,
		Coins:    coins,
		Levels:   g.levelsCleared,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Mode returns the session mode.
func (g *Game) Mode() Mode { return g.mode }

// LevelName returns the name of the level being played.
func (g *Game) LevelName() string { return g.levelName }

// Timer returns the run timer.
func (g *Game) Timer() Timer { return g.timer }

// Err returns the error that prevented a level from loading, if any.
func (g *Game) Err() error { return g.loadErr }
