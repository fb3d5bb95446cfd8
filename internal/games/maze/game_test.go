package maze

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	mazecore "github.com/vovakirdan/tui-maze/internal/games/maze/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/logging"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

const (
	// Coin next to the start, exit three steps further.
	coinRun = "7,3\n#######\n#PC  E#\n#######\n"
	// Exit locked by a coin the player cannot reach first.
	lockedRun = "6,3\n######\n#P EC#\n######\n"
)

// useLibrary installs a level library for the duration of the test.
func useLibrary(t *testing.T, cfg config.MazeConfig, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte(text), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	prevCfg, prevLib := currentSettings()
	Configure(cfg, &levels.Loader{Root: dir, NoBuiltin: true, Logger: logging.Discard()})
	t.Cleanup(func() { Configure(prevCfg, prevLib) })
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed, Player: "ANNA"}
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"adventure", "solo"} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
		}
	}
	g, err := registry.Create("solo")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, ok := g.(registry.LevelSelector); !ok {
		t.Error("solo mode should accept a level selection")
	}
}

func TestSoloWinAndScore(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"run": coinRun})

	g := NewSolo()
	if err := g.SelectLevel("run"); err != nil {
		t.Fatalf("SelectLevel failed: %v", err)
	}
	g.Reset(runtimeConfig(1))

	if g.LevelName() != "run" {
		t.Fatalf("expected level run, got %q", g.LevelName())
	}

	// Collect the coin; the exit opens.
	press(g, core.ActionRight)
	snap := g.Snapshot()
	if snap.Coins != 1 || !snap.ExitOpen || snap.CoinsRemaining != 0 {
		t.Fatalf("coin not collected: %+v", snap)
	}

	press(g, core.ActionRight)
	press(g, core.ActionRight)
	res := press(g, core.ActionRight)

	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("expected a won run, got %+v", res.State)
	}
	if res.State.Levels != 1 {
		t.Errorf("expected 1 level cleared, got %d", res.State.Levels)
	}

	// 4 ticks used: 179 whole seconds left.
	want := Score(config.DefaultMazeConfig().Scoring, 1, 179, 1)
	if res.State.Score != want {
		t.Errorf("score = %d, want %d", res.State.Score, want)
	}
	if g.Snapshot().State != StateWon {
		t.Errorf("expected state won, got %s", g.Snapshot().State)
	}
}

func TestSoloLockedExitMessage(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"locked": lockedRun})

	g := NewSolo()
	g.Reset(runtimeConfig(1))

	press(g, core.ActionRight)
	press(g, core.ActionRight)

	snap := g.Snapshot()
	if snap.PlayerX != 2 || snap.PlayerY != 1 {
		t.Errorf("player should stop before the locked exit, at (%d,%d)", snap.PlayerX, snap.PlayerY)
	}
	if snap.State != StatePlaying {
		t.Errorf("run should continue, got %s", snap.State)
	}
	if !strings.Contains(g.message, "Exit locked") {
		t.Errorf("expected a locked exit message, got %q", g.message)
	}
}

func TestSoloDefaultsToFirstLevel(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"b_second": coinRun, "a_first": lockedRun})

	g := NewSolo()
	g.Reset(runtimeConfig(1))
	if g.LevelName() != "a_first" {
		t.Errorf("expected the first level by name, got %q", g.LevelName())
	}
}

func TestSoloNoLevels(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), nil)

	g := NewSolo()
	g.Reset(runtimeConfig(1))

	if !errors.Is(g.Err(), ErrNoLevels) {
		t.Fatalf("expected ErrNoLevels, got %v", g.Err())
	}
	if g.Snapshot().State != StateError {
		t.Errorf("expected error state, got %s", g.Snapshot().State)
	}

	// Rendering and stepping must not panic without a level.
	g.Step(core.NewInputFrame())
	g.Render(core.NewScreen(80, 24))
}

func TestSelectLevel(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"run": coinRun})

	if err := NewSolo().SelectLevel("missing"); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := NewAdventure().SelectLevel("run"); err == nil {
		t.Error("adventure should refuse a level selection")
	}
}

func TestTimeUp(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	cfg.Solo.TimeLimitSeconds = 1
	useLibrary(t, cfg, map[string]string{"run": coinRun})

	g := NewSolo()
	g.Reset(runtimeConfig(1))
	press(g, core.ActionRight) // Collect the coin.

	// time.Second/60 truncates, so one second takes 61 ticks.
	var res core.StepResult
	for i := 0; i < 60; i++ {
		res = press(g)
	}
	if !res.State.GameOver {
		t.Fatal("expected the run to end after one second")
	}
	if res.State.Won {
		t.Error("time up is not a win")
	}
	if res.State.Score != cfg.Scoring.CoinPoints {
		t.Errorf("expected only coin points, got %d", res.State.Score)
	}
	if g.Snapshot().State != StateTimeUp {
		t.Errorf("expected time_up, got %s", g.Snapshot().State)
	}

	// Input after the end changes nothing.
	before := g.Snapshot()
	press(g, core.ActionRight)
	if after := g.Snapshot(); after.PlayerX != before.PlayerX {
		t.Error("player moved after the run ended")
	}
}

func TestPauseFreezesTimerAndInput(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"run": coinRun})

	g := NewSolo()
	g.Reset(runtimeConfig(1))

	press(g, core.ActionPause)
	remaining := g.Timer().Remaining()
	for i := 0; i < 120; i++ {
		press(g, core.ActionRight)
	}
	if g.Timer().Remaining() != remaining {
		t.Error("timer advanced while paused")
	}
	if g.Snapshot().Coins != 0 {
		t.Error("player moved while paused")
	}
	if !g.State().Paused {
		t.Error("expected paused state")
	}

	press(g, core.ActionPause)
	press(g, core.ActionRight)
	if g.Snapshot().Coins != 1 {
		t.Error("player should move after unpausing")
	}
}

func TestRestartAfterRunEnds(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"run": coinRun})

	g := NewSolo()
	g.SelectLevel("run")
	g.Reset(runtimeConfig(1))
	for i := 0; i < 4; i++ {
		press(g, core.ActionRight)
	}
	if !g.State().GameOver {
		t.Fatal("expected the run to be over")
	}

	press(g, core.ActionRestart)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Coins != 0 || snap.CoinsRemaining != 1 {
		t.Errorf("restart should load a fresh level: %+v", snap)
	}
	if snap.Level != "run" {
		t.Errorf("restart should keep the selected level, got %q", snap.Level)
	}
}

func TestDestroyObstacle(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), map[string]string{"wall": "5,3\n#####\n#PIE#\n#####\n"})

	g := NewSolo()
	g.Reset(runtimeConfig(1))

	press(g, core.ActionRight) // Turns east, blocked by the obstacle.
	if g.Snapshot().PlayerX != 1 {
		t.Fatal("obstacle should block movement")
	}

	press(g, core.ActionDestroy)
	if !strings.Contains(g.Snapshot().Map, "#P E#") {
		t.Fatalf("obstacle not cleared:\n%s", g.Snapshot().Map)
	}

	press(g, core.ActionDestroy)
	if g.message == "" {
		t.Error("clearing empty floor should show a message")
	}

	press(g, core.ActionRight)
	res := press(g, core.ActionRight)
	if !res.State.Won {
		t.Error("expected to win through the cleared path")
	}
}

// pathTo finds a shortest walk over accessible cells.
func pathTo(lvl *mazecore.Level, from, to mazecore.Coord) []mazecore.Dir {
	type step struct {
		prev mazecore.Coord
		dir  mazecore.Dir
	}
	seen := map[mazecore.Coord]step{from: {}}
	queue := []mazecore.Coord{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == to {
			break
		}
		for _, d := range []mazecore.Dir{mazecore.North, mazecore.East, mazecore.South, mazecore.West} {
			n := c.Step(d)
			if _, ok := seen[n]; ok || !lvl.InBounds(n) || !lvl.At(n).Accessible() {
				continue
			}
			seen[n] = step{prev: c, dir: d}
			queue = append(queue, n)
		}
	}
	if _, ok := seen[to]; !ok {
		return nil
	}
	var dirs []mazecore.Dir
	for c := to; c != from; c = seen[c].prev {
		dirs = append([]mazecore.Dir{seen[c].dir}, dirs...)
	}
	return dirs
}

func dirAction(d mazecore.Dir) core.Action {
	switch d {
	case mazecore.North:
		return core.ActionUp
	case mazecore.South:
		return core.ActionDown
	case mazecore.West:
		return core.ActionLeft
	default:
		return core.ActionRight
	}
}

func TestAdventureAdvancesLevel(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	cfg.Adventure.Coins = 0
	cfg.Adventure.Obstacles = 0
	useLibrary(t, cfg, nil)

	g := NewAdventure()
	g.Reset(runtimeConfig(7))

	first := g.Snapshot().Map
	path := pathTo(g.level, g.player.Position(), g.level.Exit())
	if path == nil {
		t.Fatal("generated exit should be reachable")
	}
	for _, d := range path {
		press(g, dirAction(d))
	}

	snap := g.Snapshot()
	if snap.LevelsCleared != 1 {
		t.Fatalf("expected 1 level cleared, got %d", snap.LevelsCleared)
	}
	if snap.State != StatePlaying {
		t.Errorf("adventure continues after an exit, got %s", snap.State)
	}
	if snap.Map == first {
		t.Error("expected a newly generated level")
	}
	if g.player.Position() != g.level.Start() {
		t.Error("player should start the new level at its start")
	}
	if snap.Level != "Level 2" {
		t.Errorf("expected Level 2, got %q", snap.Level)
	}
}

func TestAdventureCarriesCoins(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	cfg.Adventure.Coins = 1
	cfg.Adventure.Obstacles = 0
	useLibrary(t, cfg, nil)

	g := NewAdventure()
	g.Reset(runtimeConfig(3))

	var coin mazecore.Coord
	for y := 0; y < g.level.Height(); y++ {
		for x := 0; x < g.level.Width(); x++ {
			if g.level.At(mazecore.C(x, y)).Kind == mazecore.Coin {
				coin = mazecore.C(x, y)
			}
		}
	}
	for _, d := range pathTo(g.level, g.player.Position(), coin) {
		press(g, dirAction(d))
	}
	if !g.level.ExitOpen() {
		t.Fatal("collecting the only coin should open the exit")
	}
	for _, d := range pathTo(g.level, g.player.Position(), g.level.Exit()) {
		press(g, dirAction(d))
	}

	st := g.State()
	if st.Levels != 1 || st.Coins != 1 {
		t.Errorf("expected 1 level and 1 coin carried over, got %+v", st)
	}
	if g.level.CoinsRemaining() != 1 {
		t.Error("new level should have its own coin")
	}
}

func TestDeterminism(t *testing.T) {
	useLibrary(t, config.DefaultMazeConfig(), nil)

	g1 := NewAdventure()
	g1.Reset(runtimeConfig(12345))
	g2 := NewAdventure()
	g2.Reset(runtimeConfig(12345))

	script := []core.Action{core.ActionRight, core.ActionDown, core.ActionDestroy, core.ActionLeft, core.ActionUp}
	for i := 0; i < 200; i++ {
		a := script[i%len(script)]
		press(g1, a)
		press(g2, a)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}

	g3 := NewAdventure()
	g3.Reset(runtimeConfig(54321))
	if g3.Snapshot().Map == g1.Snapshot().Map {
		t.Error("different seeds should generate different mazes")
	}
}

func TestScore(t *testing.T) {
	s := config.DefaultMazeConfig().Scoring
	tests := []struct {
		name                      string
		coins, remaining, cleared int
		want                      int
	}{
		{"nothing", 0, 0, 0, 0},
		{"coins only", 3, 0, 0, 3 * s.CoinPoints},
		{"time bonus", 0, 95, 0, 95 / s.TimeBonusDivisor},
		{"levels", 0, 0, 2, 2 * s.LevelBonus},
		{"all", 4, 30, 1, 4*s.CoinPoints + 30/s.TimeBonusDivisor + s.LevelBonus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(s, tt.coins, tt.remaining, tt.cleared); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}

	negative := s
	negative.CoinPoints = -10
	if got := Score(negative, 5, 0, 0); got != 0 {
		t.Errorf("score must not go negative, got %d", got)
	}
}
