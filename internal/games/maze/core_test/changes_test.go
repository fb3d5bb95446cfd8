package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

func TestChangeTrackerDrainOrder(t *testing.T) {
	tr := core.NewChangeTracker()
	tr.Mark(core.C(3, 2))
	tr.Mark(core.C(0, 1))
	tr.Mark(core.C(5, 0))
	tr.Mark(core.C(1, 1))
	tr.Mark(core.C(3, 2))

	if tr.Len() != 4 {
		t.Errorf("expected 4 pending, got %d", tr.Len())
	}

	got := tr.Drain()
	want := []core.Coord{core.C(5, 0), core.C(0, 1), core.C(1, 1), core.C(3, 2)}
	if len(got) != len(want) {
		t.Fatalf("expected %d coords, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if tr.Len() != 0 || tr.Drain() != nil {
		t.Error("drain should clear the tracker")
	}
}

func TestMoveRecordsChanges(t *testing.T) {
	lvl := mustDecode(t, "7,3\n#######\n#P C E#\n#######\n")
	p := core.NewPlayer("", lvl)

	if err := p.Move(lvl, core.East); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	got := lvl.Changes().Drain()
	if len(got) != 1 || got[0] != core.C(1, 1) {
		t.Errorf("expected vacated start recorded, got %v", got)
	}

	if err := p.Move(lvl, core.East); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	// Coin cell, vacated cell and the newly opened exit.
	got = lvl.Changes().Drain()
	want := []core.Coord{core.C(2, 1), core.C(3, 1), core.C(5, 1)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLevelCloneIndependent(t *testing.T) {
	lvl := mustDecode(t, "5,3\n#####\n#PCE#\n#####\n")
	cp := lvl.Clone()

	if err := lvl.CoinCollectedAt(core.C(2, 1)); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if cp.CoinsRemaining() != 1 || cp.ExitOpen() {
		t.Error("clone should not see mutations of the original")
	}
	if cp.Changes().Len() != 0 {
		t.Error("clone should start with an empty tracker")
	}
}
