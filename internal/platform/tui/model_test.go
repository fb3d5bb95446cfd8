package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/logging"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// scriptedGame ends its run after a fixed number of steps.
type scriptedGame struct {
	steps    int
	endAfter int
	resets   int
	score    int
}

func (g *scriptedGame) ID() string    { return "solo" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over() {
		g.steps = 0
		return core.StepResult{State: g.State()}
	}
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) over() bool { return g.steps >= g.endAfter }

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: g.score, Coins: 3, Levels: 1, GameOver: g.over(), Won: g.over()}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 2, score: 42}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1, Player: "ANNA"}

	m := NewModel(game, store, cfg).WithLogger(logging.Discard())
	m.Init()
	for i := 0; i < 5; i++ {
		m = step(m, TickMsg{})
	}

	if m.saved == nil {
		t.Fatal("expected a saved score")
	}
	scores, err := store.TopScores("solo", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	got := scores[0]
	if got.Player != "ANNA" || got.Score != 42 || got.Coins != 3 || got.Levels != 1 {
		t.Errorf("unexpected entry %+v", got)
	}
	if got.RunID != m.saved.RunID {
		t.Errorf("run id %q, want %q", got.RunID, m.saved.RunID)
	}
}

func TestModelRestartSavesNewRun(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 1, score: 7}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}

	m := NewModel(game, store, cfg).WithLogger(logging.Discard())
	m.Init()
	m = step(m, TickMsg{}) // Run ends, score saved

	m = step(m, runeKey('r'))
	m = step(m, TickMsg{}) // Restart
	if m.gameState.GameOver {
		t.Fatal("expected a fresh run after restart")
	}
	m = step(m, TickMsg{}) // Second run ends

	scores, err := store.TopScores("solo", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
}

func TestModelZeroScoreNotSaved(t *testing.T) {
	store := openStore(t)
	m := NewModel(&scriptedGame{endAfter: 1}, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}).
		WithLogger(logging.Discard())
	m.Init()
	m = step(m, TickMsg{})

	if m.saved != nil {
		t.Error("zero scores should not be stored")
	}
}

func TestModelBackAndResize(t *testing.T) {
	game := &scriptedGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	m.Init()
	m = step(m, TickMsg{})

	m = step(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if game.resets != 1 {
		t.Errorf("resize must keep the run, got %d resets", game.resets)
	}
	if m.config.ScreenW != 60 || m.screen.Width() != 60 {
		t.Errorf("screen not resized: config %d, screen %d", m.config.ScreenW, m.screen.Width())
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.backToMenu || m.quitting {
		t.Errorf("esc should go back to the menu, back=%v quit=%v", m.backToMenu, m.quitting)
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"anna", "ANNA"},
		{"Bob-42", "BOB"},
		{"abcdefgh", "ABCDE"},
		{"", ""},
		{"123", ""},
		{"émile", "MILE"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamePromptRequiresLetters(t *testing.T) {
	m := NewNamePromptModel("", 40, 10)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(NamePromptModel)
	if m.Done() {
		t.Fatal("empty name must not be accepted")
	}

	for _, r := range "zoe" {
		next, _ = m.Update(runeKey(r))
		m = next.(NamePromptModel)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(NamePromptModel)
	if !m.Done() || m.Name() != "ZOE" {
		t.Errorf("expected ZOE, got done=%v name=%q", m.Done(), m.Name())
	}
}
