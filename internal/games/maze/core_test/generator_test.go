package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

func onBoundary(c core.Coord, w, h int) bool {
	return c.X == 0 || c.Y == 0 || c.X == w-1 || c.Y == h-1
}

func TestGenerateRejectsBadSizes(t *testing.T) {
	sizes := [][2]int{{8, 9}, {9, 8}, {7, 9}, {9, 7}, {10, 10}, {0, 0}, {-9, 9}}
	for _, s := range sizes {
		if _, err := core.Generate(s[0], s[1], 1); !errors.Is(err, core.ErrInvalidSize) {
			t.Errorf("Generate(%d, %d): expected ErrInvalidSize, got %v", s[0], s[1], err)
		}
	}
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 9}, {0, 9}, {8, 9}, {9, 9}, {10, 9}, {11, 11}, {50, 49}, {51, 51},
	}
	for _, tt := range tests {
		if got := core.NormalizeSize(tt.in); got != tt.want {
			t.Errorf("NormalizeSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGenerateStartExitOnBoundary(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		m, err := core.Generate(15, 15, seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		start, exit := m.Start(), m.Exit()
		if start == exit {
			t.Errorf("seed %d: start and exit coincide at %v", seed, start)
		}
		if !onBoundary(start, 15, 15) || !onBoundary(exit, 15, 15) {
			t.Errorf("seed %d: start %v / exit %v not on boundary", seed, start, exit)
		}
		occ := m.Occupancy()
		if !occ.Carved(start) || !occ.Carved(exit) {
			t.Errorf("seed %d: start or exit not carved", seed)
		}
		if m.Kind(start) != core.Start || m.Kind(exit) != core.Exit {
			t.Errorf("seed %d: expected start/exit kinds, got %v/%v", seed, m.Kind(start), m.Kind(exit))
		}
	}
}

func TestGenerateConnectivity(t *testing.T) {
	sizes := [][2]int{{9, 9}, {15, 15}, {21, 11}, {51, 51}}
	for _, s := range sizes {
		for seed := int64(0); seed < 10; seed++ {
			m, err := core.Generate(s[0], s[1], seed)
			if err != nil {
				t.Fatalf("%v seed %d: %v", s, seed, err)
			}
			lvl := m.Level()
			seen := core.Reachable(lvl, lvl.Start(), func(b core.Block) bool { return b.Accessible() })

			occ := m.Occupancy()
			if seen.Size() != occ.CarvedCount() {
				t.Errorf("%v seed %d: reached %d of %d carved cells", s, seed, seen.Size(), occ.CarvedCount())
			}
		}
	}
}

func TestGenerateSpanningTree(t *testing.T) {
	// A perfect maze over r rooms carves r rooms plus r-1 joining walls,
	// plus the two entrances.
	m, err := core.Generate(21, 15, 7)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rooms := 10 * 7
	want := rooms + (rooms - 1) + 2
	if got := m.Occupancy().CarvedCount(); got != want {
		t.Errorf("expected %d carved cells, got %d", want, got)
	}
	if got := m.MaxAdditionalObjects(); got != want-2 {
		t.Errorf("MaxAdditionalObjects: expected %d, got %d", want-2, got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	build := func() string {
		m, err := core.Generate(25, 19, 424242)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if err := m.AddObjects(core.Obstacle, 20); err != nil {
			t.Fatalf("AddObjects failed: %v", err)
		}
		if err := m.AddObjects(core.Coin, 9); err != nil {
			t.Fatalf("AddObjects failed: %v", err)
		}
		return m.Encode()
	}

	a, b := build(), build()
	if a != b {
		t.Errorf("same seed produced different mazes:\n%s\n%s", a, b)
	}

	other, err := core.Generate(25, 19, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if other.Occupancy().String() == mustOccupancy(t, 25, 19, 424242) {
		t.Error("different seeds produced identical layouts")
	}
}

func mustOccupancy(t *testing.T, w, h int, seed int64) string {
	t.Helper()
	m, err := core.Generate(w, h, seed)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m.Occupancy().String()
}

func TestAddObjectsFillsExactly(t *testing.T) {
	m, err := core.Generate(9, 9, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	free := m.MaxAdditionalObjects()

	if err := m.AddObjects(core.Coin, free); err != nil {
		t.Fatalf("filling every free cell should succeed: %v", err)
	}
	if m.FreeCells() != 0 {
		t.Errorf("expected no free cells, got %d", m.FreeCells())
	}
	if err := m.AddObjects(core.Obstacle, 0); err != nil {
		t.Errorf("zero objects should always succeed: %v", err)
	}
}

func TestAddObjectsInsufficientSpace(t *testing.T) {
	m, err := core.Generate(9, 9, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	before := m.Encode()

	err = m.AddObjects(core.Obstacle, m.MaxAdditionalObjects()+1)
	if !errors.Is(err, core.ErrInsufficientSpace) {
		t.Fatalf("expected ErrInsufficientSpace, got %v", err)
	}
	if m.Encode() != before {
		t.Error("failed AddObjects must not change the maze")
	}

	if err := m.AddObjects(core.Coin, 5); err != nil {
		t.Fatalf("AddObjects failed: %v", err)
	}
	if err := m.AddObjects(core.Obstacle, m.MaxAdditionalObjects()-4); !errors.Is(err, core.ErrInsufficientSpace) {
		t.Errorf("coins should consume free cells, got %v", err)
	}
}

func TestAddObjectsRejectsBadRequests(t *testing.T) {
	m, err := core.Generate(9, 9, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, k := range []core.Kind{core.Wall, core.Floor, core.Start, core.Exit} {
		if err := m.AddObjects(k, 1); !errors.Is(err, core.ErrInvalidFeature) {
			t.Errorf("AddObjects(%v): expected ErrInvalidFeature, got %v", k, err)
		}
	}
	if err := m.AddObjects(core.Coin, -1); !errors.Is(err, core.ErrInvalidFeature) {
		t.Errorf("negative count: expected ErrInvalidFeature, got %v", err)
	}
}

func TestGeneratedLevelSolvable(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		m, err := core.Generate(15, 15, seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := m.AddObjects(core.Obstacle, 20); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := m.AddObjects(core.Coin, 9); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		lvl := m.Level()
		if !core.Solvable(lvl) {
			t.Errorf("seed %d: level is not solvable", seed)
		}

		seen := core.Reachable(lvl, lvl.Start(), core.Clearable)
		nonWall := lvl.Width()*lvl.Height() - lvl.Count(core.Wall)
		if seen.Size() != nonWall {
			t.Errorf("seed %d: reached %d of %d non-wall cells", seed, seen.Size(), nonWall)
		}
	}
}
